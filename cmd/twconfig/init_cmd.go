package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twconfig"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter configuration document",
	Long: `Create a configuration document with the stock setup: templates scanned
from ../templates, dark mode off, the default palette plus transparent and
current, prose typography tweaks and the forms, aspect-ratio and typography
plugins. With --settings-file a .twconfig.yaml is written as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		writeSettings, _ := cmd.Flags().GetBool("settings-file")
		formatName, _ := cmd.Flags().GetString("format")

		path := defaultDocument
		if len(args) > 0 {
			path = args[0]
		}

		data, err := starterDocument(path, formatName)
		if err != nil {
			return err
		}

		if err := createFile(path, data, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)

		if writeSettings {
			if err := createFile(defaultSettingsFile, []byte(defaultSettings), force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultSettingsFile)
		}
		return nil
	},
}

func init() {
	f := initCmd.Flags()
	f.Bool("force", false, "Overwrite existing files")
	f.String("format", "", "Document format: yaml|json|toml (default: from the path's extension)")
	f.Bool("settings-file", false, "Also write a "+defaultSettingsFile+" settings file")
	_ = initCmd.RegisterFlagCompletionFunc("format", formatCompletions)
}

// starterDocument renders the starter document in the requested format.
// An explicit format wins over the extension of path.
func starterDocument(path, formatName string) ([]byte, error) {
	var (
		format twconfig.Format
		err    error
	)
	if formatName != "" {
		format, err = twconfig.ParseFormat(formatName)
	} else {
		format, err = twconfig.FormatFromPath(path)
	}
	if err != nil {
		return nil, err
	}

	if format == twconfig.FormatYAML {
		return []byte(defaultDocumentYAML), nil
	}

	doc, err := twconfig.Decode([]byte(defaultDocumentYAML), twconfig.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("starter document: %w", err)
	}
	var buf bytes.Buffer
	if err := twconfig.Encode(&buf, doc, format); err != nil {
		return nil, fmt.Errorf("starter document: %w", err)
	}
	return buf.Bytes(), nil
}

func createFile(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := twconfig.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

const defaultDocumentYAML = `# Tailwind configuration
purge:
  - ../templates/*.html
darkMode: false # or media or class
theme:
  colors:
    transparent: transparent
    current: currentColor
    $import: tailwindcss/colors
  extend:
    typography:
      DEFAULT:
        css:
          p:
            marginTop: 0.75em
            marginBottom: 0.75em
          pre:
            marginTop: 1em
            marginBottom: 1em
            lineHeight: 1.5
            fontSize: 0.75em
          img:
            marginTop: 1em
            marginBottom: 1em
          h2:
            fontWeight: inherit
variants:
  extend: {}
plugins:
  - "@tailwindcss/forms"
  - "@tailwindcss/aspect-ratio"
  - "@tailwindcss/typography"
`

const defaultSettings = `# twconfig settings
# Precedence: flags > TWCONFIG_* env vars > this file

config: tailwind.config.yaml
verbose: false

validate:
  strict: false
  skip-resolve: false
  gitignore: true
  output-format: issues    # issues | summary | full | json
  max-issues-per-rule: 0   # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-rule-name: true

show:
  format: ""               # yaml | json | toml, empty keeps the document's

resolve:
  gitignore: true

css:
  output: ""               # empty writes to stdout
  class: prose
  header: true
  modifiers: []            # empty renders every modifier
`
