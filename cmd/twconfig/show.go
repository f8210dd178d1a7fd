package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twconfig"
)

var showCmd = &cobra.Command{
	Use:   "show [document]",
	Short: "Print the document as the reader understands it",
	Long: `Decode the document and encode it again, optionally in another format.
Keys keep their authored order (TOML output is sorted by key).`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := twconfig.Load(documentPath(args))
		if err != nil {
			return err
		}

		format := doc.Format
		if name := getStringWithFallback("format", "show.format", ""); name != "" {
			if format, err = twconfig.ParseFormat(name); err != nil {
				return err
			}
		}

		if err := twconfig.Encode(cmd.OutOrStdout(), doc, format); err != nil {
			return fmt.Errorf("show failed: %w", err)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringP("format", "f", "", "Output format: yaml|json|toml (default: the document's own)")
	_ = showCmd.RegisterFlagCompletionFunc("format", formatCompletions)
}
