package twconfig

import (
	"fmt"
	"io"
)

// OutputFormat represents the validation output format
type OutputFormat string

const (
	// OutputIssues shows only issues in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows document statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues + statistics (interactive use)
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from the flag value
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Quiet mode prints nothing; the format is irrelevant
	if quiet {
		return OutputIssues
	}

	switch OutputFormat(formatFlag) {
	case OutputIssues, OutputSummary, OutputFull, OutputJSON:
		return OutputFormat(formatFlag)
	}

	// Unknown or empty: issues only, like golangci-lint
	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns the default output format
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputIssues
}

// WriteOutput writes the validation result in the specified format
func WriteOutput(w io.Writer, result *Result, format OutputFormat, config ReportConfig) error {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

	case OutputSummary:
		verboseReporter := NewVerboseReporter(w, shouldUseColors(config))
		printStatistics(verboseReporter, *result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
		printStatistics(NewVerboseReporter(w, reporter.UseColors()), *result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("write json: %w", err)
		}

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

func printStatistics(r *VerboseReporter, result Result) {
	r.PrintStatistics(result)
	r.PrintScanTargets(result)
	r.PrintCategories(result)
	r.PrintPlugins(result)
}
