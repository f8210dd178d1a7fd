package twconfig

// Issue represents a single validation finding in golangci-lint format
type Issue struct {
	FromRule    string     `json:"FromRule"`    // "palette"
	Text        string     `json:"Text"`        // "duplicate color key \"red\""
	Severity    string     `json:"Severity"`    // "error", "warning", "info"
	SourceLines []string   `json:"SourceLines"` // Document lines with the issue
	Pos         IssuePos   `json:"Pos"`         // Location in the document
	LineRange   *LineRange `json:"LineRange"`   // Optional range
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "front-dev/tailwind.config.yaml"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 5 (1-based)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Rule names, one per checked section
const (
	RuleSyntax     = "syntax"
	RuleDarkMode   = "dark-mode"
	RuleScanTarget = "scan-target"
	RulePalette    = "palette"
	RuleTypography = "typography"
	RuleVariants   = "variants"
	RulePlugins    = "plugins"
	RuleSchema     = "schema"
)

// Issue message templates
const (
	IssueInvalidGlob        = "scan target %q is not a valid glob: %v"
	IssueEmptyGlob          = "scan target is empty"
	IssueNoMatches          = "scan target %q matches no files"
	IssuePurgeDisabled      = "purge is disabled; scan targets are not used"
	IssueUnknownImport      = "unknown palette import %q"
	IssueInvalidColor       = "color %q: %v"
	IssueEmptyFamily        = "color family %q has no shades"
	IssueOverriddenColor    = "color %q overrides an earlier definition"
	IssueUnknownProperty    = "unknown CSS property %q"
	IssueInvalidStyleValue  = "invalid value for %q: %v"
	IssueUnknownVariant     = "unknown variant %q in %s"
	IssueDuplicateVariant   = "variant %q listed twice in %s"
	IssueEmptyPlugin        = "plugin reference is empty"
	IssueDuplicatePlugin    = "plugin %q is loaded more than once"
	IssueUnknownPlugin      = "plugin %q is not a known first-party plugin"
	IssueTypographyNoPlugin = "typography is configured but %q is not loaded"
	IssueUnknownKey         = "key %q is not interpreted"
)
