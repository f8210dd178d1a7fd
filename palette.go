package twconfig

import (
	"errors"
	"fmt"

	"github.com/yacobolo/twconfig/internal/palette"
)

// ErrUnknownPalette is returned when a $import names no registered palette
var ErrUnknownPalette = errors.New("unknown palette")

// Palette sources recorded on resolved colors
const (
	SourceDefault = "default"
	SourceTheme   = "theme.colors"
	SourceExtend  = "theme.extend.colors"
)

// ResolvedColor is one color utility token and its value
type ResolvedColor struct {
	Token  string // "red-500", "current"
	Value  string // "#ef4444", "currentColor"
	Source string // SourceTheme, SourceExtend, or the imported palette name
}

// ColorOverride records a palette key that replaced an earlier definition
type ColorOverride struct {
	Name     string
	Previous string // Source of the replaced definition
	Pos      Pos
}

// ResolvedPalette is the effective palette after imports and extension
type ResolvedPalette struct {
	Colors    []ResolvedColor
	Overrides []ColorOverride
}

// Lookup returns the value of a utility token ("blue-500")
func (p ResolvedPalette) Lookup(token string) (string, bool) {
	for _, c := range p.Colors {
		if c.Token == token {
			return c.Value, true
		}
	}
	return "", false
}

// Tokens lists the utility tokens in resolution order
func (p ResolvedPalette) Tokens() []string {
	out := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.Token
	}
	return out
}

type resolvedFamily struct {
	name    string
	literal string
	shades  []palette.Shade
	source  string
}

// familySet keeps families in first-definition order
type familySet struct {
	order []string
	byKey map[string]*resolvedFamily
}

func newFamilySet() *familySet {
	return &familySet{byKey: make(map[string]*resolvedFamily)}
}

// set replaces a family and reports the source it replaced, if any
func (s *familySet) set(f *resolvedFamily) (string, bool) {
	prev, exists := s.byKey[f.name]
	if !exists {
		s.order = append(s.order, f.name)
	}
	s.byKey[f.name] = f
	if exists {
		return prev.source, true
	}
	return "", false
}

// merge applies an extension: shades merge into an existing family, literals replace
func (s *familySet) merge(f *resolvedFamily) {
	prev, exists := s.byKey[f.name]
	if !exists || prev.literal != "" || f.literal != "" {
		s.set(f)
		return
	}
	for _, shade := range f.shades {
		replaced := false
		for i := range prev.shades {
			if prev.shades[i].Name == shade.Name {
				prev.shades[i] = shade
				replaced = true
				break
			}
		}
		if !replaced {
			prev.shades = append(prev.shades, shade)
		}
	}
}

func (s *familySet) addPalette(p *palette.Palette) {
	for _, fam := range p.Families {
		s.set(&resolvedFamily{
			name:    fam.Name,
			literal: fam.Literal,
			shades:  append([]palette.Shade(nil), fam.Shades...),
			source:  p.Name,
		})
	}
}

func entryFamily(e ColorEntry, source string) *resolvedFamily {
	f := &resolvedFamily{name: e.Name, literal: e.Value.Literal, source: source}
	for _, s := range e.Value.Shades {
		f.shades = append(f.shades, palette.Shade{Name: s.Name, Value: s.Value})
	}
	return f
}

// ResolvePalette computes the effective color palette.
// Entries of theme.colors apply in document order, so a later key (or import)
// replaces an earlier one; theme.extend.colors then merges on top.
// Without theme.colors the default palette applies.
func (d *Document) ResolvePalette() (ResolvedPalette, error) {
	set := newFamilySet()
	var overrides []ColorOverride

	if !d.Theme.HasColors() {
		def, _ := palette.Lookup(palette.DefaultName)
		set.addPalette(def)
		for _, name := range set.order {
			set.byKey[name].source = SourceDefault
		}
	}

	for _, e := range d.Theme.Colors {
		if !e.IsImport() {
			if prev, replaced := set.set(entryFamily(e, SourceTheme)); replaced {
				overrides = append(overrides, ColorOverride{Name: e.Name, Previous: prev, Pos: e.Pos})
			}
			continue
		}

		for _, ref := range e.Imports {
			p, ok := palette.Lookup(ref)
			if !ok {
				return ResolvedPalette{}, fmt.Errorf("%w %q (known: %v)", ErrUnknownPalette, ref, palette.Names())
			}
			for _, fam := range p.Families {
				if prev, ok := set.byKey[fam.Name]; ok {
					overrides = append(overrides, ColorOverride{Name: fam.Name, Previous: prev.source, Pos: e.Pos})
				}
			}
			set.addPalette(p)
		}
	}

	for _, e := range d.Theme.Extend.Colors {
		if e.IsImport() {
			for _, ref := range e.Imports {
				p, ok := palette.Lookup(ref)
				if !ok {
					return ResolvedPalette{}, fmt.Errorf("%w %q (known: %v)", ErrUnknownPalette, ref, palette.Names())
				}
				for _, fam := range p.Families {
					set.merge(&resolvedFamily{name: fam.Name, literal: fam.Literal, shades: append([]palette.Shade(nil), fam.Shades...), source: p.Name})
				}
			}
			continue
		}
		set.merge(entryFamily(e, SourceExtend))
	}

	result := ResolvedPalette{Overrides: overrides}
	for _, name := range set.order {
		f := set.byKey[name]
		if f.literal != "" {
			result.Colors = append(result.Colors, ResolvedColor{Token: name, Value: f.literal, Source: f.source})
			continue
		}
		for _, s := range f.shades {
			token := name + "-" + s.Name
			if s.Name == "DEFAULT" {
				token = name
			}
			result.Colors = append(result.Colors, ResolvedColor{Token: token, Value: s.Value, Source: f.source})
		}
	}
	return result, nil
}
