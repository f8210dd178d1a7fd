// Package twconfig reads and checks configuration documents for utility-class
// CSS build tools (the Tailwind v2 configuration schema).
//
// A document is authored as YAML, JSON or TOML and mirrors the keys of a
// tailwind.config.js file:
//
//	purge:
//	  - ../templates/*.html
//	darkMode: false
//	theme:
//	  colors:
//	    transparent: transparent
//	    current: currentColor
//	    $import: tailwindcss/colors
//	plugins:
//	  - "@tailwindcss/forms"
//	  - "@tailwindcss/typography"
//
// # Loading
//
//	doc, err := twconfig.Load("tailwind.config.yaml")
//	names := doc.PluginNames() // declared order
//
// # Validation
//
//	result, err := twconfig.Validate(doc, twconfig.ValidateConfig{})
//	twconfig.WriteOutput(os.Stdout, result, twconfig.OutputIssues, twconfig.ReportConfig{})
//
// # Scan targets
//
// Globs resolve against the directory holding the document:
//
//	scan, err := twconfig.ResolveScanTargets(doc, twconfig.ScanOptions{})
//
// # CLI Tool
//
//	go install github.com/yacobolo/twconfig/cmd/twconfig@latest
package twconfig
