package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/twconfig"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// chdirTemp moves the test into a fresh directory and restores the old one afterwards.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
	return dir
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, ".twconfig.yaml")
	settingsContent := `
config: site/tailwind.config.json
verbose: true

validate:
  strict: true
  skip-resolve: true
  max-issues-per-rule: 3

css:
  output: static/prose.css
  class: article
  modifiers:
    - DEFAULT
    - lg
`
	require.NoError(t, os.WriteFile(settingsPath, []byte(settingsContent), 0644))
	require.NoError(t, loadConfigFromPath(settingsPath))

	assert.Equal(t, "site/tailwind.config.json", k.String("config"))
	assert.True(t, k.Bool("verbose"))
	assert.True(t, k.Bool("validate.strict"))
	assert.True(t, k.Bool("validate.skip-resolve"))
	assert.Equal(t, 3, k.Int("validate.max-issues-per-rule"))
	assert.Equal(t, "static/prose.css", k.String("css.output"))
	assert.Equal(t, []string{"DEFAULT", "lg"}, k.Strings("css.modifiers"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent settings, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.twconfig.yaml"))

	config := buildValidateConfig()
	assert.False(t, config.Strict)
	assert.False(t, config.SkipResolve)
	assert.True(t, config.RespectGitIgnore)
	assert.Equal(t, 0, config.MaxIssuesPerRule)
	assert.Equal(t, defaultDocument, documentPath(nil))
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, ".twconfig.yaml")
	settingsContent := `
validate:
  strict: false
css:
  class: from-file
`
	require.NoError(t, os.WriteFile(settingsPath, []byte(settingsContent), 0644))

	t.Setenv("TWCONFIG_VALIDATE_STRICT", "true")
	t.Setenv("TWCONFIG_VALIDATE_SKIP_RESOLVE", "true")
	t.Setenv("TWCONFIG_CSS_CLASS", "from-env")

	require.NoError(t, loadConfigFromPath(settingsPath))

	assert.True(t, k.Bool("validate.strict"))
	assert.True(t, k.Bool("validate.skip-resolve"))
	assert.Equal(t, "from-env", k.String("css.class"))
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"TWCONFIG_VERBOSE", "verbose"},
		{"TWCONFIG_CONFIG", "config"},
		{"TWCONFIG_VALIDATE_STRICT", "validate.strict"},
		{"TWCONFIG_VALIDATE_MAX_SAME_ISSUES", "validate.max-same-issues"},
		{"TWCONFIG_CSS_OUTPUT", "css.output"},
		{"TWCONFIG_SHOW_FORMAT", "show.format"},
		{"TWCONFIG_PRINT_LINES", "print-lines"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.env))
		})
	}
}

func TestBuildGenerateConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildGenerateConfig("tailwind.config.yaml")
	assert.Equal(t, "tailwind.config.yaml", config.Document)
	assert.Empty(t, config.Output)
	assert.Equal(t, "prose", config.ClassName)
	assert.True(t, config.Header)
	assert.Empty(t, config.Modifiers)
}

func TestBuildGenerateConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, ".twconfig.yaml")
	settingsContent := `
css:
  output: out/prose.css
  class: article
  header: false
  modifiers: [lg]
`
	require.NoError(t, os.WriteFile(settingsPath, []byte(settingsContent), 0644))
	require.NoError(t, loadConfigFromPath(settingsPath))

	config := buildGenerateConfig("doc.yaml")
	assert.Equal(t, "out/prose.css", config.Output)
	assert.Equal(t, "article", config.ClassName)
	assert.False(t, config.Header)
	assert.Equal(t, []string{"lg"}, config.Modifiers)
}

func TestBuildReportConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, ".twconfig.yaml")
	settingsContent := `
validate:
  print-lines: false
  max-same-issues: 2
`
	require.NoError(t, os.WriteFile(settingsPath, []byte(settingsContent), 0644))
	require.NoError(t, loadConfigFromPath(settingsPath))

	report := buildReportConfig()
	assert.False(t, report.PrintIssuedLines)
	assert.True(t, report.PrintRuleName)
	assert.Equal(t, 2, buildValidateConfig().MaxSameIssues)
}

func TestInitCommand_CreatesDocument(t *testing.T) {
	chdirTemp(t)

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(defaultDocument)
	require.NoError(t, err)
	assert.Contains(t, string(data), "../templates/*.html")
	assert.Contains(t, string(data), "@tailwindcss/typography")

	// The starter document itself must load cleanly
	doc, err := twconfig.Load(defaultDocument)
	require.NoError(t, err)
	assert.Equal(t, twconfig.DarkModeOff, doc.DarkMode)
	assert.Len(t, doc.Plugins, 3)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile(defaultDocument, []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force=false"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(defaultDocument)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile(defaultDocument, []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(defaultDocument)
	require.NoError(t, err)
	assert.Contains(t, string(data), "darkMode: false")
}

func TestInitCommand_JSONWithSettings(t *testing.T) {
	chdirTemp(t)

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "tailwind.config.json", "--settings-file", "--force=false"})
	require.NoError(t, cmd.Execute())

	doc, err := twconfig.Load("tailwind.config.json")
	require.NoError(t, err)
	assert.Equal(t, twconfig.FormatJSON, doc.Format)
	assert.True(t, doc.HasPlugin(twconfig.PluginTypography))

	resetKoanf()
	require.NoError(t, loadConfigFromPath(defaultSettingsFile))
	assert.Equal(t, "prose", k.String("css.class"))
}

func TestValidateCommand_StarterDocumentPasses(t *testing.T) {
	chdirTemp(t)
	resetKoanf()

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	var out bytes.Buffer
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })

	// ../templates does not exist here, so the target only warns
	cmd.SetArgs([]string{"validate", "--strict=false", defaultDocument})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "matches no files")
}

func TestValidateCommand_FailsOnErrors(t *testing.T) {
	chdirTemp(t)
	resetKoanf()

	require.NoError(t, os.WriteFile("bad.yaml", []byte("darkMode: sometimes\n"), 0644))

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })

	cmd.SetArgs([]string{"validate", "bad.yaml"})
	err := cmd.Execute()
	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out.String(), "dark-mode")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })

	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "twconfig dev\n", out.String())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}
