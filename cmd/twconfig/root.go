package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "twconfig",
	Short: "Validate and render Tailwind-style configuration documents",
	Long: `Reads a Tailwind v2 configuration document (YAML, JSON or TOML), checks
scan targets, dark mode, palette, typography, variants and plugins, and renders
the prose typography stylesheet it describes.`,
	// Default behavior: run validate when no subcommand is given.
	// We must call loadConfig here because PreRunE of validateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runValidate(cmd, args)
	},
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().StringP("config", "c", defaultDocument, "Configuration document path")
	rootCmd.PersistentFlags().String("settings", defaultSettingsFile, "Tool settings file path")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
