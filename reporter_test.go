package twconfig

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "    red: '#f00'",
			column:     5,
			want:       "    ^", // 4 spaces + caret
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t  darkMode: sometimes",
			column:     5,
			want:       "\t\t  ^", // 2 tabs + 2 spaces + caret
		},
		{
			name:       "start of line",
			sourceLine: "darkMode: true",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^", // Pads to line length only
		},
		{
			name:       "multibyte prefix",
			sourceLine: "  « »: x",
			column:     6,
			want:       "     ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column)
			require.Equal(t, tt.want, got)
		})
	}
}

func plainReporter(w *bytes.Buffer, config ReportConfig) *Reporter {
	r := NewReporter(w, config)
	r.useColors = false
	return r
}

func TestPrintIssues(t *testing.T) {
	issues := []Issue{
		{
			FromRule:    RulePlugins,
			Text:        `plugin "x" is not a known first-party plugin`,
			Severity:    SeverityInfo,
			SourceLines: []string{"  - x"},
			Pos:         IssuePos{Filename: "tw.yaml", Line: 9, Column: 5},
		},
		{
			FromRule:    RulePalette,
			Text:        `color "brand": not a recognized color`,
			Severity:    SeverityError,
			SourceLines: []string{"    brand: nope"},
			Pos:         IssuePos{Filename: "tw.yaml", Line: 3, Column: 5},
		},
		{
			FromRule: RuleDarkMode,
			Text:     "no position",
			Severity: SeverityWarning,
			Pos:      IssuePos{Filename: "tw.yaml"},
		},
	}

	var buf bytes.Buffer
	plainReporter(&buf, DefaultReportConfig()).PrintIssues(issues)

	want := `tw.yaml: warning: no position (dark-mode)
tw.yaml:3:5: error: color "brand": not a recognized color (palette)
	    brand: nope
	    ^
tw.yaml:9:5: info: plugin "x" is not a known first-party plugin (plugins)
	  - x
	    ^
`
	assert.Equal(t, want, buf.String())
	assert.Equal(t, RulePlugins, issues[0].FromRule, "input order is left alone")
}

func TestPrintIssues_NoLinesNoRuleName(t *testing.T) {
	issues := []Issue{{
		FromRule:    RulePalette,
		Text:        "bad",
		Severity:    SeverityError,
		SourceLines: []string{"    brand: nope"},
		Pos:         IssuePos{Filename: "tw.yaml", Line: 3, Column: 5},
	}}

	var buf bytes.Buffer
	plainReporter(&buf, ReportConfig{}).PrintIssues(issues)
	assert.Equal(t, "tw.yaml:3:5: error: bad\n", buf.String())
}

func TestPrintSummary(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "clean",
			result: Result{},
			want:   "\n0 issues:\n",
		},
		{
			name: "single severity",
			result: Result{Issues: []Issue{
				{FromRule: RulePlugins, Severity: SeverityWarning},
				{FromRule: RulePlugins, Severity: SeverityWarning},
			}},
			want: "\n2 issues:\n* plugins: 2\n\nHint: Run with --output-format full to see document statistics\n",
		},
		{
			name: "mixed with truncation",
			result: Result{
				Issues: []Issue{
					{FromRule: RulePalette, Severity: SeverityError},
					{FromRule: RuleVariants, Severity: SeverityWarning},
					{FromRule: RulePlugins, Severity: SeverityInfo},
				},
				TruncatedCount: 4,
			},
			want: "\n3 issues (1 error, 1 warning, 1 note; 4 issues truncated):\n* palette: 1\n* plugins: 1\n* variants: 1\n\nHint: Run with --output-format full to see document statistics\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			plainReporter(&buf, DefaultReportConfig()).PrintSummary(tt.result)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestShouldUseColors(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")

	t.Run("explicit flag", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.True(t, shouldUseColors(ReportConfig{UseColors: true}))
	})

	t.Run("NO_COLOR wins over FORCE_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		t.Setenv("FORCE_COLOR", "1")
		assert.False(t, shouldUseColors(ReportConfig{}))
	})

	t.Run("FORCE_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("FORCE_COLOR", "1")
		assert.True(t, shouldUseColors(ReportConfig{}))
	})

	t.Run("GitHub Actions", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("GITHUB_ACTIONS", "true")
		assert.True(t, shouldUseColors(ReportConfig{}))
	})
}

func TestVerboseReporter_Statistics(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "templates/index.html")
	doc := loadDoc(t, dir, "site/tailwind.config.yaml", exampleDocument)

	result, err := Validate(doc, ValidateConfig{})
	require.NoError(t, err)

	var buf bytes.Buffer
	printStatistics(NewVerboseReporter(&buf, false), *result)
	out := buf.String()

	assert.Contains(t, out, "Configuration Statistics\n------------------------\n")
	assert.Contains(t, out, "Dark Mode:            off (false)\n")
	assert.Contains(t, out, "Scan Targets:         1\n")
	assert.Contains(t, out, "Files Matched:        1\n")
	assert.Contains(t, out, "Typography Modifiers: 1\n")
	assert.Contains(t, out, "Declarations:         9\n")
	assert.Contains(t, out, "• ../templates/*.html → 1 file\n")
	assert.Contains(t, out, "] 100.0% of scan targets match files\n")
	assert.Contains(t, out, "Typography:  3\nLayout:      6\n")
	assert.Contains(t, out, "1. @tailwindcss/forms\n2. @tailwindcss/aspect-ratio\n3. @tailwindcss/typography\n")
	assert.Equal(t, 1, strings.Count(out, "████████████████████"))
}
