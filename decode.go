package twconfig

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// knownTopLevel lists keys the build tool understands but this reader passes through
var knownTopLevel = map[string]bool{
	"presets":     true,
	"corePlugins": true,
	"mode":        true,
}

// yamlLinePattern extracts the line from yaml.v3 syntax errors
var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// decimalNumber is the number syntax valid in both CSS and JSON
var decimalNumber = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?$`)

// Load reads and decodes the document at path. The format follows the extension.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from the user's own command line or settings
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	return decode(data, format, path)
}

// Decode parses a document held in memory
func Decode(data []byte, format Format) (*Document, error) {
	return decode(data, format, "")
}

func decode(data []byte, format Format, path string) (*Document, error) {
	root, err := parseRoot(data, format, path)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:   path,
		Format: format,
		source: splitLines(data),
	}

	if root == nil {
		// Empty document: every field takes the build tool's default
		doc.DarkMode = DarkModeOff
		return doc, nil
	}

	d := &decoder{path: path}
	if err := d.document(root, doc); err != nil {
		return nil, err
	}
	doc.notes = d.notes

	return doc, nil
}

// parseRoot turns raw bytes into the top-level mapping node, or nil for an empty document
func parseRoot(data []byte, format Format, path string) (*yaml.Node, error) {
	switch format {
	case FormatYAML, FormatJSON:
		var n yaml.Node
		if err := yaml.Unmarshal(data, &n); err != nil {
			return nil, &DecodeError{Path: path, Pos: yamlErrorPos(err), Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		}
		if n.Kind == 0 || len(n.Content) == 0 {
			return nil, nil
		}
		root := n.Content[0]
		if isNull(root) {
			return nil, nil
		}
		return root, nil

	case FormatTOML:
		m := map[string]any{}
		if err := toml.Unmarshal(data, &m); err != nil {
			derr := &DecodeError{Path: path, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
			var te *toml.DecodeError
			if errors.As(err, &te) {
				row, col := te.Position()
				derr.Pos = Pos{Line: row, Column: col}
			}
			return nil, derr
		}
		if len(m) == 0 {
			return nil, nil
		}
		// TOML has no node API; re-encode as a YAML node so one walker serves all formats.
		// Positions are lost, the TOML parser already rejected duplicate keys.
		var n yaml.Node
		if err := n.Encode(m); err != nil {
			return nil, fmt.Errorf("convert toml document: %w", err)
		}
		return &n, nil
	}

	return nil, unsupportedFormat(string(format))
}

func yamlErrorPos(err error) Pos {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return Pos{}
	}
	line, _ := strconv.Atoi(m[1])
	return Pos{Line: line, Column: 1}
}

func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := strings.Split(string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))), "\n")
	return lines
}

// decoder walks the node tree and fills a Document
type decoder struct {
	path  string
	notes []Issue
}

type pair struct {
	key   *yaml.Node
	value *yaml.Node
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func pos(n *yaml.Node) Pos {
	return Pos{Line: n.Line, Column: n.Column}
}

func (d *decoder) fail(n *yaml.Node, sentinel error, format string, args ...any) error {
	var p Pos
	if n != nil {
		p = pos(n)
	}
	return &DecodeError{Path: d.path, Pos: p, Err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))}
}

func (d *decoder) note(n *yaml.Node, severity, rule, format string, args ...any) {
	d.notes = append(d.notes, Issue{
		FromRule: rule,
		Text:     fmt.Sprintf(format, args...),
		Severity: severity,
		Pos:      IssuePos{Filename: d.path, Line: n.Line, Column: n.Column},
	})
}

// pairs returns the entries of a mapping and rejects repeated keys.
// A null node is an empty mapping.
func (d *decoder) pairs(n *yaml.Node, where string) ([]pair, error) {
	if isNull(n) {
		return nil, nil
	}
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, d.fail(n, ErrSchema, "%s must be a mapping", where)
	}

	seen := make(map[string]*yaml.Node, len(n.Content)/2)
	out := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], resolve(n.Content[i+1])
		if prev, ok := seen[k.Value]; ok {
			return nil, d.fail(k, ErrDuplicateKey, "%q in %s (first defined at line %d)", k.Value, where, prev.Line)
		}
		seen[k.Value] = k
		out = append(out, pair{key: k, value: v})
	}
	return out, nil
}

func (d *decoder) str(n *yaml.Node, where string) (string, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", d.fail(n, ErrSchema, "%s must be a string", where)
	}
	return n.Value, nil
}

func (d *decoder) stringList(n *yaml.Node, where string) ([]string, error) {
	if isNull(n) {
		return nil, nil
	}
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, d.fail(n, ErrSchema, "%s must be a list", where)
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		s, err := d.str(item, where+" entry")
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *decoder) extra(dst *map[string]any, p pair) error {
	var v any
	if err := p.value.Decode(&v); err != nil {
		return d.fail(p.key, ErrSchema, "%s: %v", p.key.Value, err)
	}
	if *dst == nil {
		*dst = make(map[string]any)
	}
	(*dst)[p.key.Value] = v
	return nil
}

func (d *decoder) document(root *yaml.Node, doc *Document) error {
	ps, err := d.pairs(root, "document")
	if err != nil {
		return err
	}

	doc.DarkMode = DarkModeOff
	var purgeKey *yaml.Node

	for _, p := range ps {
		switch p.key.Value {
		case "purge", "content":
			if purgeKey != nil {
				return d.fail(p.key, ErrSchema, "%q and %q both set scan targets (first at line %d)", purgeKey.Value, p.key.Value, purgeKey.Line)
			}
			purgeKey = p.key
			if err := d.purge(p.value, &doc.Purge); err != nil {
				return err
			}
		case "darkMode":
			mode, err := d.darkMode(p.value)
			if err != nil {
				return err
			}
			doc.DarkMode = mode
		case "theme":
			if err := d.theme(p.value, &doc.Theme); err != nil {
				return err
			}
		case "variants":
			if err := d.variants(p.value, &doc.Variants); err != nil {
				return err
			}
		case "plugins":
			plugins, err := d.plugins(p.value)
			if err != nil {
				return err
			}
			doc.Plugins = plugins
		case "prefix":
			if doc.Prefix, err = d.str(p.value, "prefix"); err != nil {
				return err
			}
		case "separator":
			if doc.Separator, err = d.str(p.value, "separator"); err != nil {
				return err
			}
		case "important":
			imp, err := d.important(p.value)
			if err != nil {
				return err
			}
			doc.Important = imp
		default:
			if !knownTopLevel[p.key.Value] {
				d.note(p.key, SeverityWarning, RuleSchema, IssueUnknownKey, p.key.Value)
			}
			if err := d.extra(&doc.Extra, p); err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *decoder) purge(n *yaml.Node, purge *Purge) error {
	n = resolve(n)

	switch {
	case isNull(n):
		return nil
	case n.Kind == yaml.ScalarNode:
		s, err := d.str(n, "purge")
		if err != nil {
			return err
		}
		purge.Targets = []ScanTarget{{Pattern: s, Pos: pos(n)}}
		return nil
	case n.Kind == yaml.SequenceNode:
		targets, err := d.targets(n)
		if err != nil {
			return err
		}
		purge.Targets = targets
		return nil
	}

	ps, err := d.pairs(n, "purge")
	if err != nil {
		return err
	}
	purge.Object = true
	for _, p := range ps {
		switch p.key.Value {
		case "enabled":
			var enabled bool
			if err := p.value.Decode(&enabled); err != nil {
				return d.fail(p.value, ErrSchema, "purge.enabled must be a boolean")
			}
			purge.Enabled = &enabled
		case "content":
			targets, err := d.targets(p.value)
			if err != nil {
				return err
			}
			purge.Targets = targets
		default:
			if err := d.extra(&purge.Extra, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) targets(n *yaml.Node) ([]ScanTarget, error) {
	if isNull(n) {
		return nil, nil
	}
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, d.fail(n, ErrSchema, "scan targets must be a list of globs")
	}
	out := make([]ScanTarget, 0, len(n.Content))
	for _, item := range n.Content {
		s, err := d.str(item, "scan target")
		if err != nil {
			return nil, err
		}
		out = append(out, ScanTarget{Pattern: s, Pos: pos(resolve(item))})
	}
	return out, nil
}

func (d *decoder) darkMode(n *yaml.Node) (DarkMode, error) {
	if isNull(n) {
		return DarkModeOff, nil
	}
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err == nil && !b {
				return DarkModeOff, nil
			}
		case "!!str":
			switch n.Value {
			case "media":
				return DarkModeMedia, nil
			case "class":
				return DarkModeClass, nil
			}
		}
	}
	return "", d.fail(n, ErrInvalidDarkMode, "%q (want false, \"media\" or \"class\")", n.Value)
}

func (d *decoder) important(n *yaml.Node) (Important, error) {
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err == nil {
				return Important{Enabled: b}, nil
			}
		case "!!str":
			if n.Value != "" {
				return Important{Enabled: true, Selector: n.Value}, nil
			}
		}
	}
	return Important{}, d.fail(n, ErrSchema, "important must be a boolean or a selector")
}

func (d *decoder) theme(n *yaml.Node, theme *Theme) error {
	ps, err := d.pairs(n, "theme")
	if err != nil {
		return err
	}
	for _, p := range ps {
		switch p.key.Value {
		case "colors":
			if theme.Colors, err = d.palette(p.value, "theme.colors"); err != nil {
				return err
			}
			theme.hasColors = true
		case "typography":
			if theme.Typography, err = d.typography(p.value, "theme.typography"); err != nil {
				return err
			}
		case "extend":
			if err := d.extend(p.value, &theme.Extend); err != nil {
				return err
			}
		default:
			if err := d.extra(&theme.Extra, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) extend(n *yaml.Node, ext *ThemeExtend) error {
	ps, err := d.pairs(n, "theme.extend")
	if err != nil {
		return err
	}
	for _, p := range ps {
		switch p.key.Value {
		case "colors":
			if ext.Colors, err = d.palette(p.value, "theme.extend.colors"); err != nil {
				return err
			}
		case "typography":
			if ext.Typography, err = d.typography(p.value, "theme.extend.typography"); err != nil {
				return err
			}
		default:
			if err := d.extra(&ext.Extra, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) palette(n *yaml.Node, where string) (Palette, error) {
	ps, err := d.pairs(n, where)
	if err != nil {
		return nil, err
	}

	out := make(Palette, 0, len(ps))
	for _, p := range ps {
		entry := ColorEntry{Name: p.key.Value, Pos: pos(p.key)}

		if entry.IsImport() {
			if resolve(p.value).Kind == yaml.SequenceNode {
				entry.Imports, err = d.stringList(p.value, where+"."+ImportKey)
			} else {
				var ref string
				ref, err = d.str(p.value, where+"."+ImportKey)
				entry.Imports = []string{ref}
			}
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
			continue
		}

		value, err := d.colorValue(p.value, where+"."+p.key.Value)
		if err != nil {
			return nil, err
		}
		entry.Value = value
		out = append(out, entry)
	}
	return out, nil
}

func (d *decoder) colorValue(n *yaml.Node, where string) (ColorValue, error) {
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		s, err := d.str(n, where)
		if err != nil {
			return ColorValue{}, err
		}
		if s == "" {
			return ColorValue{}, d.fail(n, ErrSchema, "%s is an empty color", where)
		}
		return ColorValue{Literal: s}, nil
	}

	ps, err := d.pairs(n, where)
	if err != nil {
		return ColorValue{}, err
	}
	shades := make([]Shade, 0, len(ps))
	for _, p := range ps {
		v := resolve(p.value)
		if v.Kind != yaml.ScalarNode {
			return ColorValue{}, d.fail(v, ErrSchema, "%s.%s: shades must be plain colors", where, p.key.Value)
		}
		s, err := d.str(v, where+"."+p.key.Value)
		if err != nil {
			return ColorValue{}, err
		}
		shades = append(shades, Shade{Name: p.key.Value, Value: s, Pos: pos(p.key)})
	}
	return ColorValue{Shades: shades}, nil
}

func (d *decoder) typography(n *yaml.Node, where string) (Typography, error) {
	ps, err := d.pairs(n, where)
	if err != nil {
		return nil, err
	}

	out := make(Typography, 0, len(ps))
	for _, p := range ps {
		mod := TypographyModifier{Name: p.key.Value, Pos: pos(p.key)}
		modWhere := where + "." + p.key.Value

		mps, err := d.pairs(p.value, modWhere)
		if err != nil {
			return nil, err
		}
		for _, mp := range mps {
			if mp.key.Value != "css" {
				d.note(mp.key, SeverityWarning, RuleTypography, IssueUnknownKey, modWhere+"."+mp.key.Value)
				continue
			}
			rules, err := d.cssBlocks(mp.value, modWhere+".css")
			if err != nil {
				return nil, err
			}
			mod.Rules = append(mod.Rules, rules...)
		}
		out = append(out, mod)
	}
	return out, nil
}

// cssBlocks accepts a selector mapping or a list of them. List items merge in
// order: a selector seen again gains the later declarations, and a property set
// twice keeps the later value, so each selector ends up as exactly one rule.
func (d *decoder) cssBlocks(n *yaml.Node, where string) ([]StyleRule, error) {
	n = resolve(n)
	if n.Kind == yaml.SequenceNode {
		var rules []StyleRule
		for i, item := range n.Content {
			r, err := d.cssBlock(item, fmt.Sprintf("%s[%d]", where, i))
			if err != nil {
				return nil, err
			}
			rules = mergeRules(rules, r)
		}
		return rules, nil
	}
	return d.cssBlock(n, where)
}

// cssBlock decodes one css mapping. Scalar entries style the prose element itself
// and are gathered into a rule with an empty selector.
func (d *decoder) cssBlock(n *yaml.Node, where string) ([]StyleRule, error) {
	ps, err := d.pairs(n, where)
	if err != nil {
		return nil, err
	}

	var rules []StyleRule
	rootIdx := -1
	for _, p := range ps {
		if p.value.Kind == yaml.ScalarNode {
			decl, err := d.declaration(p, where)
			if err != nil {
				return nil, err
			}
			if rootIdx < 0 {
				rootIdx = len(rules)
				rules = append(rules, StyleRule{Pos: pos(p.key)})
			}
			rules[rootIdx].Declarations = append(rules[rootIdx].Declarations, decl)
			continue
		}

		rule, err := d.rule(p, where)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (d *decoder) rule(p pair, where string) (StyleRule, error) {
	rule := StyleRule{Selector: p.key.Value, Pos: pos(p.key)}
	ruleWhere := where + "." + p.key.Value

	ps, err := d.pairs(p.value, ruleWhere)
	if err != nil {
		return StyleRule{}, err
	}
	for _, cp := range ps {
		if cp.value.Kind == yaml.ScalarNode {
			decl, err := d.declaration(cp, ruleWhere)
			if err != nil {
				return StyleRule{}, err
			}
			rule.Declarations = append(rule.Declarations, decl)
			continue
		}
		child, err := d.rule(cp, ruleWhere)
		if err != nil {
			return StyleRule{}, err
		}
		rule.Rules = append(rule.Rules, child)
	}
	return rule, nil
}

func (d *decoder) declaration(p pair, where string) (Declaration, error) {
	decl := Declaration{Property: p.key.Value, Pos: pos(p.key)}
	switch p.value.ShortTag() {
	case "!!str":
		decl.Value = StyleValue{Raw: p.value.Value}
	case "!!int", "!!float":
		raw, err := numericText(p.value.ShortTag(), p.value.Value)
		if err != nil {
			return Declaration{}, d.fail(p.value, ErrSchema, "%s.%s: %v", where, p.key.Value, err)
		}
		decl.Value = StyleValue{Raw: raw, Numeric: true}
	default:
		return Declaration{}, d.fail(p.value, ErrSchema, "%s.%s must be a string or a number", where, p.key.Value)
	}
	return decl, nil
}

// numericText returns a YAML number as decimal text. Decimal numbers keep their
// authored text (1.50 stays 1.50); hex, octal, binary, underscore and signed
// forms become plain decimals. Infinities and NaN have no CSS spelling.
func numericText(tag, raw string) (string, error) {
	if decimalNumber.MatchString(raw) {
		return raw, nil
	}
	plain := strings.ReplaceAll(raw, "_", "")
	if tag == "!!int" {
		if i, err := strconv.ParseInt(plain, 0, 64); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
	}
	f, err := strconv.ParseFloat(plain, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("%s is not a finite decimal number", raw)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func (d *decoder) variants(n *yaml.Node, variants *Variants) error {
	ps, err := d.pairs(n, "variants")
	if err != nil {
		return err
	}
	for _, p := range ps {
		if p.key.Value == "extend" {
			if variants.Extend, err = d.variantGroups(p.value, "variants.extend"); err != nil {
				return err
			}
			continue
		}
		list, err := d.stringList(p.value, "variants."+p.key.Value)
		if err != nil {
			return err
		}
		variants.Groups = append(variants.Groups, VariantGroup{Group: p.key.Value, Variants: list, Pos: pos(p.key)})
	}
	return nil
}

func (d *decoder) variantGroups(n *yaml.Node, where string) ([]VariantGroup, error) {
	ps, err := d.pairs(n, where)
	if err != nil {
		return nil, err
	}
	groups := make([]VariantGroup, 0, len(ps))
	for _, p := range ps {
		list, err := d.stringList(p.value, where+"."+p.key.Value)
		if err != nil {
			return nil, err
		}
		groups = append(groups, VariantGroup{Group: p.key.Value, Variants: list, Pos: pos(p.key)})
	}
	return groups, nil
}

func (d *decoder) plugins(n *yaml.Node) ([]PluginRef, error) {
	if isNull(n) {
		return nil, nil
	}
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, d.fail(n, ErrSchema, "plugins must be a list")
	}

	out := make([]PluginRef, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolve(item)
		if item.Kind == yaml.ScalarNode {
			name, err := d.str(item, "plugin")
			if err != nil {
				return nil, err
			}
			out = append(out, PluginRef{Name: name, Pos: pos(item)})
			continue
		}

		ps, err := d.pairs(item, "plugin")
		if err != nil {
			return nil, err
		}
		ref := PluginRef{Pos: pos(item)}
		for _, p := range ps {
			switch p.key.Value {
			case "name":
				if ref.Name, err = d.str(p.value, "plugin name"); err != nil {
					return nil, err
				}
			case "options":
				var opts map[string]any
				if err := p.value.Decode(&opts); err != nil {
					return nil, d.fail(p.value, ErrSchema, "plugin options must be a mapping")
				}
				ref.Options = opts
			default:
				return nil, d.fail(p.key, ErrSchema, "unexpected plugin key %q (want name, options)", p.key.Value)
			}
		}
		out = append(out, ref)
	}
	return out, nil
}
