package twconfig

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{
			name:       "explicit quiet flag",
			formatFlag: "",
			quiet:      true,
			expected:   OutputIssues,
		},
		{
			name:       "explicit issues format",
			formatFlag: "issues",
			expected:   OutputIssues,
		},
		{
			name:       "explicit summary format",
			formatFlag: "summary",
			expected:   OutputSummary,
		},
		{
			name:       "explicit full format",
			formatFlag: "full",
			expected:   OutputFull,
		},
		{
			name:       "explicit json format",
			formatFlag: "json",
			expected:   OutputJSON,
		},
		{
			name:       "unknown format falls back to issues",
			formatFlag: "markdown",
			expected:   OutputIssues,
		},
		{
			name:       "default format is issues",
			formatFlag: "",
			expected:   OutputIssues,
		},
		{
			name:       "quiet overrides format flag",
			formatFlag: "full",
			quiet:      true,
			expected:   OutputIssues,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetermineOutputFormat(tt.formatFlag, tt.quiet)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func sampleResult() *Result {
	return &Result{
		Path:         "front-dev/tailwind.config.yaml",
		DarkMode:     DarkModeOff,
		ScanTargets:  1,
		FilesMatched: 3,
		ErrorCount:   1,
		WarningCount: 1,
		Issues: []Issue{
			{
				FromRule:    RulePalette,
				Text:        `color "brand": not a recognized color`,
				Severity:    SeverityError,
				SourceLines: []string{"    brand: nope"},
				Pos:         IssuePos{Filename: "front-dev/tailwind.config.yaml", Line: 8, Column: 5},
			},
			{
				FromRule: RuleScanTarget,
				Text:     `scan target "../templates/*.html" matches no files`,
				Severity: SeverityWarning,
				Pos:      IssuePos{Filename: "front-dev/tailwind.config.yaml", Line: 2, Column: 5},
			},
		},
		PaletteColors:       224,
		TypographyModifiers: 1,
		Declarations:        9,
		Categories:          map[PropertyCategory]int{CategoryLayout: 6, CategoryTypography: 3},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	// Parse JSON to verify structure
	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.NotEmpty(t, output.Timestamp)
	assert.Equal(t, "front-dev/tailwind.config.yaml", output.Document)

	// Verify summary
	assert.Equal(t, 2, output.Summary.TotalIssues)
	assert.Equal(t, 1, output.Summary.Errors)
	assert.Equal(t, 1, output.Summary.Warnings)
	assert.False(t, output.Summary.Valid)

	// Verify stats
	assert.Equal(t, "false", output.Stats.DarkMode)
	assert.Equal(t, 3, output.Stats.FilesMatched)
	assert.Equal(t, 224, output.Stats.PaletteColors)
	assert.Equal(t, map[string]int{"Layout": 6, "Typography": 3}, output.Stats.Categories)
	assert.NotNil(t, output.Stats.Plugins)

	// Verify issues
	require.Len(t, output.Issues, 2)
	assert.Equal(t, 8, output.Issues[0].Line)
	assert.Equal(t, 5, output.Issues[0].Column)
	assert.Equal(t, "error", output.Issues[0].Severity)
	assert.Equal(t, RulePalette, output.Issues[0].Rule)
	assert.Equal(t, "    brand: nope", output.Issues[0].Source)
	assert.Empty(t, output.Issues[1].Source)
	assert.NotContains(t, buf.String(), `"source": ""`)
}

func TestWriteOutput(t *testing.T) {
	tests := []struct {
		format   OutputFormat
		contains []string
		absent   []string
	}{
		{
			format:   OutputIssues,
			contains: []string{"front-dev/tailwind.config.yaml:8:5: error:", "2 issues (1 error, 1 warning):"},
			absent:   []string{"Configuration Statistics"},
		},
		{
			format:   OutputSummary,
			contains: []string{"Configuration Statistics", "Palette Colors:       224"},
			absent:   []string{"error:"},
		},
		{
			format:   OutputFull,
			contains: []string{"error:", "Configuration Statistics", "Typography Properties"},
		},
		{
			format:   OutputJSON,
			contains: []string{`"total_issues": 2`, `"dark_mode": "false"`},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteOutput(&buf, sampleResult(), tt.format, ReportConfig{PrintIssuedLines: true, PrintRuleName: true}))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}

	var buf bytes.Buffer
	assert.Error(t, WriteOutput(&buf, sampleResult(), OutputFormat("markdown"), DefaultReportConfig()))
}
