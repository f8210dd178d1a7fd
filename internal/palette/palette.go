// Package palette holds importable color palettes and color literal checks.
package palette

import (
	"sort"
	"sync"
)

// Shade is one step of a family ("500": "#3b82f6")
type Shade struct {
	Name  string
	Value string
}

// Family is a named color: either a single literal or a set of shades
type Family struct {
	Name    string
	Literal string
	Shades  []Shade
}

// Palette is an ordered set of families that documents can import
type Palette struct {
	Name     string
	Families []Family
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Palette{}
)

// Register makes p importable by name. A later registration replaces an earlier one.
func Register(p *Palette) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p.Name] = p
}

// Lookup returns the palette registered under name
func Lookup(name string) (*Palette, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// Names lists registered palettes, sorted
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(bundledPalette(DefaultName, v2Families))
	Register(bundledPalette(V3Name, v3Families))
}
