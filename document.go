package twconfig

import (
	"path/filepath"
	"strings"
)

// Format identifies the serialization of a configuration document
type Format string

// Supported document formats
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the document format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", unsupportedFormat(filepath.Ext(path))
}

// ParseFormat validates a format name given on the command line or in settings
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", unsupportedFormat(name)
}

// Pos is a 1-based location inside the source document.
// A zero Pos means the location is unknown (TOML input).
type Pos struct {
	Line   int
	Column int
}

// Document is a parsed configuration document.
// It is read once and never written back.
type Document struct {
	Path   string // Source file, empty when decoded from memory
	Format Format

	Purge     Purge
	DarkMode  DarkMode
	Theme     Theme
	Variants  Variants
	Plugins   []PluginRef
	Prefix    string    // Class prefix, "" for none
	Important Important // important: true | "<selector>"
	Separator string    // Variant separator, "" means ":"

	// Extra holds top-level keys the reader does not interpret.
	// They survive a round trip unchanged.
	Extra map[string]any

	// source keeps the raw document lines for issue context
	source []string
	// notes are non-fatal observations collected while decoding
	notes []Issue
}

// Purge lists the scan targets inspected for class usage
type Purge struct {
	Enabled *bool // nil means enabled; set only by the object form
	Targets []ScanTarget
	// Object records that the document used the {enabled, content} form
	Object bool
	// Extra keeps uninterpreted keys of the object form (options, layers, ...)
	Extra map[string]any
}

// ScanTarget is one path glob, relative to the document directory
type ScanTarget struct {
	Pattern string
	Pos     Pos
}

// IsEnabled reports whether scan targets are used by the build tool
func (p Purge) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// Patterns returns the scan target globs in declared order
func (p Purge) Patterns() []string {
	out := make([]string, len(p.Targets))
	for i, t := range p.Targets {
		out[i] = t.Pattern
	}
	return out
}

// DarkMode selects how alternate-theme styling is activated
type DarkMode string

// Dark mode strategies
const (
	DarkModeOff   DarkMode = "off"   // darkMode: false
	DarkModeMedia DarkMode = "media" // prefers-color-scheme
	DarkModeClass DarkMode = "class" // .dark ancestor
)

// Important controls !important generation
type Important struct {
	Enabled  bool
	Selector string // Non-empty for the selector strategy
}

// Theme holds the palette and typography sections
type Theme struct {
	Colors     Palette
	Typography Typography // Replaces plugin defaults
	Extend     ThemeExtend
	Extra      map[string]any // spacing, screens, fontFamily, ...
	hasColors  bool
}

// HasColors reports whether theme.colors was present, even if empty.
// An empty colors mapping removes every color utility.
func (t Theme) HasColors() bool {
	return t.hasColors || len(t.Colors) > 0
}

// ThemeExtend is merged on top of the theme
type ThemeExtend struct {
	Colors     Palette
	Typography Typography
	Extra      map[string]any
}

// Palette is an ordered color mapping. Later entries override earlier ones.
type Palette []ColorEntry

// ImportKey is the palette key that merges a registered palette in place
const ImportKey = "$import"

// ColorEntry is one palette key: a color, a shade family, or an import
type ColorEntry struct {
	Name    string
	Value   ColorValue
	Imports []string // Set only when Name == ImportKey
	Pos     Pos
}

// IsImport reports whether the entry pulls in a registered palette
func (e ColorEntry) IsImport() bool {
	return e.Name == ImportKey
}

// ColorValue is either a literal color or an ordered set of shades
type ColorValue struct {
	Literal string
	Shades  []Shade
}

// IsFamily reports whether the value is a shade mapping
func (v ColorValue) IsFamily() bool {
	return len(v.Shades) > 0 || v.Literal == ""
}

// Shade is one step of a color family ("500": "#3b82f6")
type Shade struct {
	Name  string
	Value string
	Pos   Pos
}

// Typography maps modifiers (DEFAULT, sm, lg, ...) to prose styles
type Typography []TypographyModifier

// TypographyModifier is one prose size/variant
type TypographyModifier struct {
	Name  string
	Rules []StyleRule
	Pos   Pos
}

// StyleRule is a selector and its declarations, with optional nested rules
type StyleRule struct {
	Selector     string
	Declarations []Declaration
	Rules        []StyleRule
	Pos          Pos
}

// Declaration is a single style property
type Declaration struct {
	Property string // As authored: marginTop or margin-top
	Value    StyleValue
	Pos      Pos
}

// StyleValue keeps the authored scalar text. Numeric values are rendered unquoted.
type StyleValue struct {
	Raw     string
	Numeric bool
}

// String returns the value as written in CSS
func (v StyleValue) String() string {
	return v.Raw
}

// Variants enables state variants per utility group
type Variants struct {
	Groups []VariantGroup // Replaces the defaults for a group
	Extend []VariantGroup // Adds to the defaults
}

// VariantGroup is a utility group and its variants
type VariantGroup struct {
	Group    string
	Variants []string
	Pos      Pos
}

// PluginRef references a plugin module loaded by the build tool.
// Options is set when the plugin is configured ({name, options} form).
type PluginRef struct {
	Name    string
	Options map[string]any
	Pos     Pos
}

// PluginNames returns the plugin references in declared order
func (d *Document) PluginNames() []string {
	out := make([]string, len(d.Plugins))
	for i, p := range d.Plugins {
		out[i] = p.Name
	}
	return out
}

// BaseDir returns the directory scan targets resolve against
func (d *Document) BaseDir() string {
	if d.Path == "" {
		return "."
	}
	return filepath.Dir(d.Path)
}

// HasPlugin reports whether the plugin list contains name
func (d *Document) HasPlugin(name string) bool {
	for _, p := range d.Plugins {
		if p.Name == name {
			return true
		}
	}
	return false
}

// SourceLine returns the 1-based line of the source document, or ""
func (d *Document) SourceLine(line int) string {
	if line <= 0 || line > len(d.source) {
		return ""
	}
	return d.source[line-1]
}
