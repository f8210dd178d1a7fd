package twconfig

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Document  string      `json:"document"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues int  `json:"total_issues"`
	Errors      int  `json:"errors"`
	Warnings    int  `json:"warnings"`
	Infos       int  `json:"infos"`
	Truncated   int  `json:"truncated"`
	Valid       bool `json:"valid"`
}

// JSONStats contains document statistics
type JSONStats struct {
	DarkMode            string         `json:"dark_mode"`
	ScanTargets         int            `json:"scan_targets"`
	FilesMatched        int            `json:"files_matched"`
	PaletteColors       int            `json:"palette_colors"`
	PaletteOverrides    int            `json:"palette_overrides"`
	TypographyModifiers int            `json:"typography_modifiers"`
	Declarations        int            `json:"declarations"`
	Categories          map[string]int `json:"categories"`
	VariantGroups       int            `json:"variant_groups"`
	Plugins             []string       `json:"plugins"`
}

// JSONIssue represents a single validation issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Rule     string `json:"rule"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the validation result as JSON
func WriteJSON(w io.Writer, result *Result) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts Result to JSONOutput
func buildJSONOutput(result *Result) JSONOutput {
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Rule:     issue.FromRule,
			Source:   source,
		}
	}

	categories := make(map[string]int, len(result.Categories))
	for cat, n := range result.Categories {
		categories[string(cat)] = n
	}

	plugins := result.Plugins
	if plugins == nil {
		plugins = []string{}
	}

	darkMode := string(result.DarkMode)
	if result.DarkMode == DarkModeOff {
		darkMode = "false"
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Document:  result.displayPath(),
		Summary: JSONSummary{
			TotalIssues: len(result.Issues),
			Errors:      result.ErrorCount,
			Warnings:    result.WarningCount,
			Infos:       result.InfoCount,
			Truncated:   result.TruncatedCount,
			Valid:       result.ErrorCount == 0,
		},
		Stats: JSONStats{
			DarkMode:            darkMode,
			ScanTargets:         result.ScanTargets,
			FilesMatched:        result.FilesMatched,
			PaletteColors:       result.PaletteColors,
			PaletteOverrides:    result.PaletteOverrides,
			TypographyModifiers: result.TypographyModifiers,
			Declarations:        result.Declarations,
			Categories:          categories,
			VariantGroups:       result.VariantGroups,
			Plugins:             plugins,
		},
		Issues: jsonIssues,
	}
}
