package twconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/twconfig/internal/cssvalue"
	"github.com/yacobolo/twconfig/internal/palette"
)

// ValidateConfig holds validation configuration
type ValidateConfig struct {
	Strict           bool // Warnings fail validation too
	SkipResolve      bool // Do not expand scan targets against the filesystem
	RespectGitIgnore bool // Skip .gitignore'd files when expanding scan targets
	Verbose          bool
	Log              io.Writer // Verbose progress, nil to discard

	// golangci-style limits
	MaxIssuesPerRule int // 0 = unlimited (default)
	MaxSameIssues    int // 0 = unlimited (default)
}

// Result contains validation results
type Result struct {
	Path     string
	Document *Document // nil when the document failed to decode

	// Issues in golangci-lint format
	Issues         []Issue
	IssuesByRule   map[string][]Issue
	ErrorCount     int
	WarningCount   int
	InfoCount      int
	TruncatedCount int // Issues removed due to limits

	// Statistics
	DarkMode            DarkMode
	ScanTargets         int
	FilesMatched        int
	Scan                *ScanResult // nil when resolution was skipped
	PaletteColors       int         // Utility color tokens after resolution
	PaletteOverrides    int
	TypographyModifiers int
	Declarations        int
	Categories          map[PropertyCategory]int
	VariantGroups       int
	Plugins             []string
}

// Failed reports whether the result should fail a build
func (r *Result) Failed(strict bool) bool {
	if r.ErrorCount > 0 {
		return true
	}
	return strict && r.WarningCount > 0
}

// validator collects issues for one document
type validator struct {
	doc    *Document
	issues []Issue
}

func (v *validator) add(rule, severity string, p Pos, format string, args ...any) {
	v.issues = append(v.issues, Issue{
		FromRule: rule,
		Text:     fmt.Sprintf(format, args...),
		Severity: severity,
		Pos:      IssuePos{Filename: v.doc.Path, Line: p.Line, Column: p.Column},
	})
}

// ValidateFile loads and validates the document at path.
// A document that fails to decode yields a single issue instead of an error.
func ValidateFile(path string, config ValidateConfig) (*Result, error) {
	if config.Verbose && config.Log != nil {
		fmt.Fprintf(config.Log, "Validating %s\n", path)
	}

	doc, err := Load(path)
	if err != nil {
		var derr *DecodeError
		if !errors.As(err, &derr) {
			return nil, err
		}
		// #nosec G304 - same path Load just read
		data, _ := os.ReadFile(path)
		return decodeFailure(path, derr, splitLines(data)), nil
	}

	return Validate(doc, config)
}

// decodeFailure reports a decode error in the regular issue format
func decodeFailure(path string, derr *DecodeError, source []string) *Result {
	rule := RuleSyntax
	switch {
	case errors.Is(derr, ErrInvalidDarkMode):
		rule = RuleDarkMode
	case errors.Is(derr, ErrSchema):
		rule = RuleSchema
	}

	issue := Issue{
		FromRule: rule,
		Text:     derr.Err.Error(),
		Severity: SeverityError,
		Pos:      IssuePos{Filename: path, Line: derr.Pos.Line, Column: derr.Pos.Column},
	}
	if line := derr.Pos.Line; line > 0 && line <= len(source) {
		issue.SourceLines = []string{source[line-1]}
	}
	result := &Result{Path: path, Issues: []Issue{issue}}
	result.finish(nil, ValidateConfig{})
	return result
}

// Validate runs every check against doc
func Validate(doc *Document, config ValidateConfig) (*Result, error) {
	v := &validator{doc: doc}
	result := &Result{
		Path:        doc.Path,
		Document:    doc,
		DarkMode:    doc.DarkMode,
		ScanTargets: len(doc.Purge.Targets),
		Plugins:     doc.PluginNames(),
	}

	// Observations made while decoding come first
	v.issues = append(v.issues, doc.notes...)

	v.checkDarkMode()

	scan, err := v.checkScanTargets(config)
	if err != nil {
		return nil, err
	}
	if scan != nil {
		result.Scan = scan
		result.FilesMatched = scan.Stats.FilesMatched
	}

	if resolved, ok := v.checkPalette(); ok {
		result.PaletteColors = len(resolved.Colors)
		result.PaletteOverrides = len(resolved.Overrides)
	}

	v.checkTypography()
	effective := doc.EffectiveTypography()
	result.TypographyModifiers = len(effective)
	result.Categories = make(map[PropertyCategory]int)
	for cat, props := range CategorizeTypography(effective) {
		result.Categories[cat] = len(props)
		result.Declarations += len(props)
	}

	v.checkVariants()
	result.VariantGroups = len(doc.Variants.Groups) + len(doc.Variants.Extend)

	v.checkPlugins()

	result.Issues = v.issues
	result.finish(doc, config)

	if config.Verbose && config.Log != nil {
		fmt.Fprintf(config.Log, "Checked %s: %d errors, %d warnings\n", result.displayPath(), result.ErrorCount, result.WarningCount)
	}

	return result, nil
}

// finish fills source context, counts severities and applies limits.
// Counts cover every issue, including those dropped by the limits.
func (r *Result) finish(doc *Document, config ValidateConfig) {
	for i := range r.Issues {
		issue := &r.Issues[i]
		if issue.Pos.Filename == "" {
			issue.Pos.Filename = r.displayPath()
		}
		if doc != nil && len(issue.SourceLines) == 0 {
			if line := doc.SourceLine(issue.Pos.Line); line != "" {
				issue.SourceLines = []string{line}
			}
		}

		switch issue.Severity {
		case SeverityError:
			r.ErrorCount++
		case SeverityWarning:
			r.WarningCount++
		case SeverityInfo:
			r.InfoCount++
		}
	}

	if config.MaxIssuesPerRule > 0 || config.MaxSameIssues > 0 {
		r.Issues, r.TruncatedCount = limitIssues(r.Issues, config)
	}

	r.IssuesByRule = make(map[string][]Issue)
	for _, issue := range r.Issues {
		r.IssuesByRule[issue.FromRule] = append(r.IssuesByRule[issue.FromRule], issue)
	}
}

func (r *Result) displayPath() string {
	if r.Path == "" {
		return "<input>"
	}
	return r.Path
}

func (v *validator) checkDarkMode() {
	switch v.doc.DarkMode {
	case DarkModeOff, DarkModeMedia, DarkModeClass:
		return
	}
	v.add(RuleDarkMode, SeverityError, Pos{}, "%v %q (want false, \"media\" or \"class\")", ErrInvalidDarkMode, string(v.doc.DarkMode))
}

func (v *validator) checkScanTargets(config ValidateConfig) (*ScanResult, error) {
	purge := v.doc.Purge

	for _, t := range purge.Targets {
		if t.Pattern == "" {
			v.add(RuleScanTarget, SeverityError, t.Pos, IssueEmptyGlob)
			continue
		}
		if err := ValidatePattern(t.Pattern); err != nil {
			v.add(RuleScanTarget, SeverityError, t.Pos, IssueInvalidGlob, t.Pattern, err)
		}
	}

	if !purge.IsEnabled() {
		var p Pos
		if len(purge.Targets) > 0 {
			p = purge.Targets[0].Pos
		}
		v.add(RuleScanTarget, SeverityInfo, p, IssuePurgeDisabled)
		return nil, nil
	}

	if config.SkipResolve || len(purge.Targets) == 0 {
		return nil, nil
	}

	scan, err := ResolveScanTargets(v.doc, ScanOptions{
		RespectGitIgnore: config.RespectGitIgnore,
		Verbose:          config.Verbose,
		Log:              config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve scan targets: %w", err)
	}

	for _, m := range scan.Targets {
		if m.Err == nil && len(m.Files) == 0 {
			v.add(RuleScanTarget, SeverityWarning, m.Target.Pos, IssueNoMatches, m.Target.Pattern)
		}
	}
	return scan, nil
}

// checkPalette validates every color literal and reports overrides.
// ok is false when an unknown import prevents resolution.
func (v *validator) checkPalette() (ResolvedPalette, bool) {
	importsOK := true

	for _, colors := range []Palette{v.doc.Theme.Colors, v.doc.Theme.Extend.Colors} {
		for _, e := range colors {
			switch {
			case e.IsImport():
				for _, ref := range e.Imports {
					if _, ok := palette.Lookup(ref); !ok {
						v.add(RulePalette, SeverityError, e.Pos, IssueUnknownImport, ref)
						importsOK = false
					}
				}
			case e.Value.Literal != "":
				if _, err := palette.ParseColor(e.Value.Literal); err != nil {
					v.add(RulePalette, SeverityError, e.Pos, IssueInvalidColor, e.Name, err)
				}
			case len(e.Value.Shades) == 0:
				v.add(RulePalette, SeverityWarning, e.Pos, IssueEmptyFamily, e.Name)
			default:
				for _, s := range e.Value.Shades {
					if _, err := palette.ParseColor(s.Value); err != nil {
						v.add(RulePalette, SeverityError, s.Pos, IssueInvalidColor, e.Name+"-"+s.Name, err)
					}
				}
			}
		}
	}

	if !importsOK {
		return ResolvedPalette{}, false
	}

	resolved, err := v.doc.ResolvePalette()
	if err != nil {
		return ResolvedPalette{}, false
	}
	for _, o := range resolved.Overrides {
		v.add(RulePalette, SeverityInfo, o.Pos, IssueOverriddenColor, o.Name)
	}
	return resolved, true
}

func (v *validator) checkTypography() {
	theme := v.doc.Theme
	check := func(_ TypographyModifier, _ string, decl Declaration) {
		name := cssvalue.PropertyName(decl.Property)
		if _, known := categorizeProperty(name); !known {
			v.add(RuleTypography, SeverityWarning, decl.Pos, IssueUnknownProperty, name)
		}
		if err := cssvalue.Check(decl.Value.Raw); err != nil {
			v.add(RuleTypography, SeverityError, decl.Pos, IssueInvalidStyleValue, name, err)
		}
	}
	theme.Typography.walk(check)
	theme.Extend.Typography.walk(check)

	configured := append(Typography(nil), theme.Typography...)
	configured = append(configured, theme.Extend.Typography...)
	if len(configured) > 0 && !v.doc.HasPlugin(PluginTypography) {
		v.add(RuleTypography, SeverityWarning, configured[0].Pos, IssueTypographyNoPlugin, PluginTypography)
	}
}
