package twconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/twconfig/internal/cssvalue"
)

// DefaultModifier is the typography modifier rendered as the bare prose class
const DefaultModifier = "DEFAULT"

// CSSOptions controls typography stylesheet rendering
type CSSOptions struct {
	ClassName string   // Base class, default "prose"
	Modifiers []string // Modifiers to render; empty renders all
	Header    bool     // Emit a provenance comment
}

// CSSResult contains render stats
type CSSResult struct {
	Modifiers    []string
	Rules        int
	Declarations int
}

// EffectiveTypography merges theme.extend.typography over theme.typography.
// Rules with the same selector merge; a repeated property takes the extension's value.
func (d *Document) EffectiveTypography() Typography {
	out := make(Typography, 0, len(d.Theme.Typography)+len(d.Theme.Extend.Typography))
	for _, mod := range d.Theme.Typography {
		out = append(out, TypographyModifier{Name: mod.Name, Rules: cloneRules(mod.Rules), Pos: mod.Pos})
	}

	for _, ext := range d.Theme.Extend.Typography {
		idx := -1
		for i := range out {
			if out[i].Name == ext.Name {
				idx = i
				break
			}
		}
		if idx < 0 {
			out = append(out, TypographyModifier{Name: ext.Name, Rules: cloneRules(ext.Rules), Pos: ext.Pos})
			continue
		}
		out[idx].Rules = mergeRules(out[idx].Rules, ext.Rules)
	}
	return out
}

func cloneRules(rules []StyleRule) []StyleRule {
	out := make([]StyleRule, len(rules))
	for i, r := range rules {
		out[i] = StyleRule{
			Selector:     r.Selector,
			Declarations: append([]Declaration(nil), r.Declarations...),
			Rules:        cloneRules(r.Rules),
			Pos:          r.Pos,
		}
	}
	return out
}

func mergeRules(base, ext []StyleRule) []StyleRule {
	for _, r := range ext {
		idx := -1
		for i := range base {
			if base[i].Selector == r.Selector {
				idx = i
				break
			}
		}
		if idx < 0 {
			base = append(base, cloneRules([]StyleRule{r})...)
			continue
		}
		base[idx].Declarations = mergeDeclarations(base[idx].Declarations, r.Declarations)
		base[idx].Rules = mergeRules(base[idx].Rules, r.Rules)
	}
	return base
}

func mergeDeclarations(base, ext []Declaration) []Declaration {
	for _, decl := range ext {
		name := cssvalue.PropertyName(decl.Property)
		replaced := false
		for i := range base {
			if cssvalue.PropertyName(base[i].Property) == name {
				base[i] = decl
				replaced = true
				break
			}
		}
		if !replaced {
			base = append(base, decl)
		}
	}
	return base
}

// walk visits every declaration with its unscoped selector path
func (t Typography) walk(fn func(mod TypographyModifier, selector string, decl Declaration)) {
	for _, mod := range t {
		walkRules(mod, "", mod.Rules, fn)
	}
}

func walkRules(mod TypographyModifier, parent string, rules []StyleRule, fn func(TypographyModifier, string, Declaration)) {
	for _, r := range rules {
		sel := scopeSelector(parent, r.Selector)
		for _, decl := range r.Declarations {
			fn(mod, sel, decl)
		}
		walkRules(mod, sel, r.Rules, fn)
	}
}

// ModifierClass returns the class a modifier renders under: DEFAULT -> prose, lg -> prose-lg
func ModifierClass(prefix, className, modifier string) string {
	if className == "" {
		className = "prose"
	}
	if modifier == DefaultModifier {
		return prefix + className
	}
	return prefix + className + "-" + modifier
}

// RenderTypography writes the prose stylesheet derived from the document's typography
func RenderTypography(w io.Writer, doc *Document, opts CSSOptions) (*CSSResult, error) {
	result := &CSSResult{}
	typography := doc.EffectiveTypography()

	want := make(map[string]bool, len(opts.Modifiers))
	for _, m := range opts.Modifiers {
		want[m] = true
	}
	for _, m := range opts.Modifiers {
		found := false
		for _, mod := range typography {
			if mod.Name == m {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("typography modifier %q is not configured", m)
		}
	}

	var b strings.Builder
	if opts.Header {
		source := doc.Path
		if source == "" {
			source = "<input>"
		}
		fmt.Fprintf(&b, "/* Code generated by twconfig from %s. DO NOT EDIT. */\n", source)
	}

	for _, mod := range typography {
		if len(want) > 0 && !want[mod.Name] {
			continue
		}
		result.Modifiers = append(result.Modifiers, mod.Name)
		root := "." + ModifierClass(doc.Prefix, opts.ClassName, mod.Name)
		renderRules(&b, root, mod.Rules, result)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return nil, fmt.Errorf("write stylesheet: %w", err)
	}
	return result, nil
}

func renderRules(b *strings.Builder, parent string, rules []StyleRule, result *CSSResult) {
	for _, r := range rules {
		sel := scopeSelector(parent, r.Selector)
		if len(r.Declarations) > 0 {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(b, "%s {\n", sel)
			for _, decl := range r.Declarations {
				fmt.Fprintf(b, "  %s: %s;\n", cssvalue.PropertyName(decl.Property), decl.Value.String())
				result.Declarations++
			}
			b.WriteString("}\n")
			result.Rules++
		}
		renderRules(b, sel, r.Rules, result)
	}
}

// scopeSelector nests selector under parent. "&" refers to the parent;
// otherwise the selector becomes a descendant. Both sides may be comma lists.
func scopeSelector(parent, selector string) string {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return parent
	}
	if parent == "" {
		return selector
	}

	var parts []string
	for _, p := range splitSelectors(parent) {
		for _, s := range splitSelectors(selector) {
			if strings.Contains(s, "&") {
				parts = append(parts, strings.ReplaceAll(s, "&", p))
			} else {
				parts = append(parts, p+" "+s)
			}
		}
	}
	return strings.Join(parts, ", ")
}

// splitSelectors splits a selector list on top-level commas
func splitSelectors(s string) []string {
	var parts []string
	var current strings.Builder
	depth := 0

	for _, r := range s {
		switch r {
		case '(', '[':
			depth++
			current.WriteRune(r)
		case ')', ']':
			depth--
			current.WriteRune(r)
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}
