package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twconfig"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [document]",
	Short: "List the files the scan targets match, or the resolved palette",
	Long: `Expand every scan target against the document's directory and print the
matched files, one per line. With --palette, print the effective color tokens
(after $import and theme.extend.colors) instead.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := twconfig.Load(documentPath(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if getBoolWithFallback("palette", "resolve.palette", false) {
			resolved, err := doc.ResolvePalette()
			if err != nil {
				return fmt.Errorf("resolve palette: %w", err)
			}
			for _, c := range resolved.Colors {
				fmt.Fprintf(out, "%-20s %-14s %s\n", c.Token, c.Value, c.Source)
			}
			return nil
		}

		scan, err := twconfig.ResolveScanTargets(doc, twconfig.ScanOptions{
			RespectGitIgnore: getBoolWithFallback("gitignore", "resolve.gitignore", true),
			Verbose:          getBoolWithFallback("verbose", "verbose", false),
			Log:              logWriter(),
		})
		if err != nil {
			return fmt.Errorf("resolve failed: %w", err)
		}

		for _, t := range scan.Targets {
			if t.Err != nil {
				return fmt.Errorf("scan target %q: %w", t.Target.Pattern, t.Err)
			}
		}
		for _, f := range scan.Files {
			fmt.Fprintln(out, twconfig.GetRelativePath(f))
		}
		return nil
	},
}

func init() {
	f := resolveCmd.Flags()
	f.Bool("palette", false, "Print the resolved color palette instead of files")
	f.Bool("gitignore", true, "Skip files ignored by the document directory's .gitignore")
}
