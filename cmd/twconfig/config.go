package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/twconfig"
)

const (
	defaultSettingsFile = ".twconfig.yaml"
	defaultDocument     = "tailwind.config.yaml"
	envPrefix           = "TWCONFIG_"
)

// settingsSections are the nested tables of the settings file.
// An env var whose first segment names one maps into that table.
var settingsSections = map[string]bool{
	"validate": true,
	"show":     true,
	"resolve":  true,
	"css":      true,
}

var k = koanf.New(".")

// loadConfig loads settings with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve settings file path from flag
	settingsPath, _ := cmd.Flags().GetString("settings")
	if settingsPath == "" {
		settingsPath = defaultSettingsFile
	}

	// Load settings file and env vars
	if err := loadConfigFromPath(settingsPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). Only flags set explicitly are loaded;
	// defaults come from the getters so they never mask the file or env.
	if err := k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, changedOnly(cmd.Flags())), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

func changedOnly(fs *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}
}

// loadConfigFromPath loads settings from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(settingsPath string) error {
	// 1. Settings file (lowest precedence among providers)
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading settings file %s: %w", settingsPath, err)
		}
	}

	// 2. Environment variables (TWCONFIG_* prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an env var to a settings key:
//
//	TWCONFIG_VALIDATE_STRICT        -> validate.strict
//	TWCONFIG_VALIDATE_SKIP_RESOLVE  -> validate.skip-resolve
//	TWCONFIG_VERBOSE                -> verbose
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, rest, found := strings.Cut(s, "_")
	if found && settingsSections[section] {
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(s, "_", "-")
}

// documentPath picks the document from the first argument, then settings
func documentPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return getStringWithFallback("config", "config", defaultDocument)
}

// logWriter is where verbose progress goes: stderr, or nowhere when quiet
func logWriter() io.Writer {
	if getBoolWithFallback("quiet", "quiet", false) {
		return io.Discard
	}
	return os.Stderr
}

// buildValidateConfig constructs the library's ValidateConfig from koanf state.
func buildValidateConfig() twconfig.ValidateConfig {
	return twconfig.ValidateConfig{
		Strict:           getBoolWithFallback("strict", "validate.strict", false),
		SkipResolve:      getBoolWithFallback("skip-resolve", "validate.skip-resolve", false),
		RespectGitIgnore: getBoolWithFallback("gitignore", "validate.gitignore", true),
		Verbose:          getBoolWithFallback("verbose", "verbose", false),
		Log:              logWriter(),
		MaxIssuesPerRule: getIntWithFallback("max-issues-per-rule", "validate.max-issues-per-rule", 0),
		MaxSameIssues:    getIntWithFallback("max-same-issues", "validate.max-same-issues", 0),
	}
}

// buildReportConfig constructs the library's ReportConfig from koanf state.
func buildReportConfig() twconfig.ReportConfig {
	return twconfig.ReportConfig{
		PrintIssuedLines: getBoolWithFallback("print-lines", "validate.print-lines", true),
		PrintRuleName:    getBoolWithFallback("print-rule-name", "validate.print-rule-name", true),
		UseColors:        getBoolWithFallback("color", "color", false),
	}
}

// buildGenerateConfig constructs the library's GenerateConfig from koanf state.
func buildGenerateConfig(document string) twconfig.GenerateConfig {
	config := twconfig.GenerateConfig{
		Document:  document,
		Output:    getStringWithFallback("output", "css.output", ""),
		ClassName: getStringWithFallback("class", "css.class", "prose"),
		Header:    getBoolWithFallback("header", "css.header", true),
		Verbose:   getBoolWithFallback("verbose", "verbose", false),
		Log:       logWriter(),
	}

	// Handle modifiers: check flag key first, then settings key
	if mods := k.Strings("modifier"); len(mods) > 0 {
		config.Modifiers = mods
	} else if mods := k.Strings("css.modifiers"); len(mods) > 0 {
		config.Modifiers = mods
	}

	return config
}

// getStringWithFallback checks the flag key first, then the settings key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the settings key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the settings key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
