package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twconfig"
	"github.com/yacobolo/twconfig/internal/watch"
)

// exitError carries a process exit code without printing anything
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// errValidationFailed is returned when the document has errors (or warnings in strict mode)
var errValidationFailed = &exitError{code: 1}

var validateCmd = &cobra.Command{
	Use:     "validate [document]",
	Aliases: []string{"lint", "check"},
	Short:   "Validate a configuration document",
	Long: `Check the document against the schema: well-formed data, unique palette keys,
valid scan target globs (and that they match files), the dark-mode value,
typography declarations, variants and plugins.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.Bool("strict", false, "Exit 1 on warnings too (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Bool("skip-resolve", false, "Do not check that scan targets match files")
	f.Bool("gitignore", true, "Skip files ignored by the document directory's .gitignore")
	f.Int("max-issues-per-rule", 0, "Max issues to show per rule (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-rule-name", true, "Show (rule) suffix on issues")
	f.BoolP("watch", "w", false, "Re-validate whenever the document changes")
	_ = validateCmd.RegisterFlagCompletionFunc("output-format",
		cobra.FixedCompletions([]string{"issues", "summary", "full", "json"}, cobra.ShellCompDirectiveNoFileComp))
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := documentPath(args)
	out := cmd.OutOrStdout()

	if !getBoolWithFallback("watch", "validate.watch", false) {
		return validateOnce(out, path)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := func() {
		if err := validateOnce(out, path); err != nil && !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	report()
	fmt.Fprintf(logWriter(), "Watching %s for changes (Ctrl+C to stop)\n", path)

	return watch.Run(ctx, watch.Config{Path: path, Log: logWriter()}, func() {
		fmt.Fprintf(out, "\n%s changed, re-validating\n", path)
		report()
	})
}

// validateOnce validates the document and prints the result.
// It returns errValidationFailed when the result should fail the build.
func validateOnce(out io.Writer, path string) error {
	config := buildValidateConfig()

	result, err := twconfig.ValidateFile(path, config)
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "validate.output-format", "")
	format := twconfig.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		if err := twconfig.WriteOutput(out, result, format, buildReportConfig()); err != nil {
			return err
		}
	}

	// Exit code logic: errors always fail, warnings only in strict mode
	if result.Failed(config.Strict) {
		return errValidationFailed
	}
	return nil
}
