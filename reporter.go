package twconfig

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
)

// ReportConfig controls how results are printed
type ReportConfig struct {
	PrintIssuedLines bool // Show source lines with issues (default: true)
	PrintRuleName    bool // Show (rule) suffix (default: true)
	UseColors        bool // Force color output
}

// DefaultReportConfig prints source lines and rule names, colors auto-detected
func DefaultReportConfig() ReportConfig {
	return ReportConfig{PrintIssuedLines: true, PrintRuleName: true}
}

// Reporter handles formatting and outputting validation issues
type Reporter struct {
	w             io.Writer
	useColors     bool
	printLines    bool
	printRuleName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config ReportConfig) *Reporter {
	return &Reporter{
		w:             w,
		useColors:     shouldUseColors(config),
		printLines:    config.PrintIssuedLines,
		printRuleName: config.PrintRuleName,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config ReportConfig) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// NO_COLOR disables auto-detection
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// sortIssues orders issues by file, then line, then column
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	sorted := append([]Issue(nil), issues...)
	sortIssues(sorted)

	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: severity: message (rule)
	location := issue.Pos.Filename + ":"
	if issue.Pos.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	}

	ruleSuffix := ""
	if r.printRuleName {
		ruleSuffix = fmt.Sprintf(" (%s)", issue.FromRule)
	}

	fmt.Fprintf(r.w, "%s %s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		RenderStyle(severityStyle(issue.Severity), issue.Severity+":", r.useColors),
		issue.Text,
		RenderStyle(StyleGray, ruleSuffix, r.useColors))

	// Print source lines with caret indicator
	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up under tab-indented text.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// Extract the prefix up to the column (0-based index = column - 1)
	runes := []rune(sourceLine)
	prefixLen := column - 1
	if prefixLen > len(runes) {
		prefixLen = len(runes)
	}

	var padding strings.Builder
	for _, ch := range runes[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result Result) {
	totalIssues := len(result.Issues)
	truncated := result.TruncatedCount

	var errors, warnings, infos int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}

	fmt.Fprintln(r.w, "")

	var parts []string
	if errors > 0 {
		parts = append(parts, pluralizeCount(errors, "error", "errors"))
	}
	if warnings > 0 {
		parts = append(parts, pluralizeCount(warnings, "warning", "warnings"))
	}
	if infos > 0 {
		parts = append(parts, pluralizeCount(infos, "note", "notes"))
	}

	header := pluralizeCount(totalIssues, "issue", "issues")
	detail := ""
	if len(parts) > 1 {
		detail = strings.Join(parts, ", ")
	}
	if truncated > 0 {
		if detail != "" {
			detail += "; "
		}
		detail += pluralizeCount(truncated, "issue", "issues") + " truncated"
	}
	if detail != "" {
		header += " (" + detail + ")"
	}

	style := StyleGreen
	switch {
	case errors > 0:
		style = StyleRed
	case warnings > 0:
		style = StyleYellow
	}
	fmt.Fprintln(r.w, RenderStyle(style, header+":", r.useColors))

	// Group by rule
	ruleCounts := make(map[string]int)
	for _, issue := range result.Issues {
		ruleCounts[issue.FromRule]++
	}
	rules := make([]string, 0, len(ruleCounts))
	for rule := range ruleCounts {
		rules = append(rules, rule)
	}
	sort.Strings(rules)

	for _, rule := range rules {
		fmt.Fprintf(r.w, "* %s: %d\n", rule, ruleCounts[rule])
	}

	if totalIssues > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format full to see document statistics", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
