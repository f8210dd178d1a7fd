package twconfig

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// GenerateConfig holds stylesheet generation configuration
type GenerateConfig struct {
	Document  string   // Path to the configuration document
	Output    string   // Stylesheet path, "" or "-" writes to Stdout
	ClassName string   // Base prose class (default: "prose")
	Modifiers []string // Typography modifiers to render, empty renders all
	Header    bool     // Emit the provenance comment
	Verbose   bool
	Log       io.Writer // Verbose progress, nil to discard
	Stdout    io.Writer // Destination when Output is empty
}

// GenerateResult contains generation stats
type GenerateResult struct {
	Output       string // Written path, "" for Stdout
	Modifiers    []string
	Rules        int
	Declarations int
	Warnings     []string
}

// Generate renders the typography stylesheet of a document.
// A file output is replaced atomically, so a failed run leaves the old stylesheet intact.
func Generate(config GenerateConfig) (*GenerateResult, error) {
	logf := func(format string, args ...any) {
		if config.Verbose && config.Log != nil {
			fmt.Fprintf(config.Log, format, args...)
		}
	}

	// 1. Load the document
	doc, err := Load(config.Document)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	logf("Loaded %s\n", config.Document)

	result := &GenerateResult{}
	if len(doc.EffectiveTypography()) == 0 {
		result.Warnings = append(result.Warnings, "document configures no typography; stylesheet is empty")
	}
	if !doc.HasPlugin(PluginTypography) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(IssueTypographyNoPlugin, PluginTypography))
	}

	// 2. Render
	var buf bytes.Buffer
	css, err := RenderTypography(&buf, doc, CSSOptions{
		ClassName: config.ClassName,
		Modifiers: config.Modifiers,
		Header:    config.Header,
	})
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	result.Modifiers = css.Modifiers
	result.Rules = css.Rules
	result.Declarations = css.Declarations
	logf("Rendered %d rules (%d declarations) for %d modifiers\n", css.Rules, css.Declarations, len(css.Modifiers))

	// 3. Write
	if config.Output == "" || config.Output == "-" {
		stdout := config.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
		return result, nil
	}

	if err := WriteFileAtomic(config.Output, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	result.Output = config.Output
	logf("Wrote %s\n", config.Output)

	return result, nil
}

// WriteFileAtomic replaces path with data, creating parent directories.
// Data is synced before the rename so readers never see a partial file.
func WriteFileAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	// Removes the temp file unless it was committed
	defer func() { _ = pendingFile.Cleanup() }()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
