package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twconfig"
)

var cssCmd = &cobra.Command{
	Use:     "css [document]",
	Aliases: []string{"generate", "gen"},
	Short:   "Render the prose typography stylesheet",
	Long: `Render theme.typography and theme.extend.typography as CSS:
modifier DEFAULT becomes .prose, any other modifier .prose-<name>.
Writes to stdout unless --output is given; files are replaced atomically.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCSS,
}

func init() {
	f := cssCmd.Flags()
	f.StringP("output", "o", "", "Stylesheet path (default: stdout)")
	f.StringSlice("modifier", nil, "Typography modifiers to render (default: all)")
	f.String("class", "prose", "Base class name")
	f.Bool("header", true, "Emit a generated-file comment")
}

func runCSS(cmd *cobra.Command, args []string) error {
	config := buildGenerateConfig(documentPath(args))
	config.Stdout = cmd.OutOrStdout()

	result, err := twconfig.Generate(config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	// Summary goes to stderr so stdout stays a clean stylesheet
	log := logWriter()
	if result.Output != "" {
		fmt.Fprintf(log, "Generated %s\n", result.Output)
		fmt.Fprintf(log, "  Modifiers: %d\n", len(result.Modifiers))
		fmt.Fprintf(log, "  Rules: %d\n", result.Rules)
		fmt.Fprintf(log, "  Declarations: %d\n", result.Declarations)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(log, "  Warning: %s\n", w)
	}

	return nil
}
