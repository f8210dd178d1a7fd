package twconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePalette_Example(t *testing.T) {
	doc := decodeYAML(t, exampleDocument)

	p, err := doc.ResolvePalette()
	require.NoError(t, err)

	tokens := p.Tokens()
	require.GreaterOrEqual(t, len(tokens), 4)
	assert.Equal(t, []string{"transparent", "current", "black", "white"}, tokens[:4])

	v, ok := p.Lookup("current")
	require.True(t, ok)
	assert.Equal(t, "currentColor", v)

	v, ok = p.Lookup("blue-500")
	require.True(t, ok)
	assert.Equal(t, "#3b82f6", v)

	assert.Empty(t, p.Overrides)
	assert.Equal(t, SourceTheme, p.Colors[0].Source)
	assert.Equal(t, "tailwindcss/colors", p.Colors[2].Source)

	v, ok = p.Lookup("coolGray-900")
	require.True(t, ok)
	assert.Equal(t, "#111827", v)
	_, ok = p.Lookup("slate-500")
	assert.False(t, ok, "slate is a v3 name")
}

func TestResolvePalette_V3Import(t *testing.T) {
	doc := decodeYAML(t, "theme:\n  colors:\n    $import: tailwindcss/colors@v3\n")

	p, err := doc.ResolvePalette()
	require.NoError(t, err)

	v, ok := p.Lookup("slate-900")
	require.True(t, ok)
	assert.Equal(t, "#0f172a", v)
	_, ok = p.Lookup("blueGray-900")
	assert.False(t, ok)
}

func TestResolvePalette_WithoutImport(t *testing.T) {
	doc := decodeYAML(t, "theme:\n  colors:\n    transparent: transparent\n    current: currentColor\n")

	p, err := doc.ResolvePalette()
	require.NoError(t, err)
	assert.Equal(t, []string{"transparent", "current"}, p.Tokens())
}

func TestResolvePalette_DefaultWhenNoColors(t *testing.T) {
	doc := decodeYAML(t, "darkMode: media\n")

	p, err := doc.ResolvePalette()
	require.NoError(t, err)

	v, ok := p.Lookup("red-500")
	require.True(t, ok)
	assert.Equal(t, "#ef4444", v)
	assert.Equal(t, SourceDefault, p.Colors[0].Source)
}

func TestResolvePalette_EmptyColorsRemovesEverything(t *testing.T) {
	doc := decodeYAML(t, "theme:\n  colors: {}\n")

	p, err := doc.ResolvePalette()
	require.NoError(t, err)
	assert.Empty(t, p.Colors)
}

func TestResolvePalette_LaterKeyOverrides(t *testing.T) {
	doc := decodeYAML(t, `theme:
  colors:
    $import: tailwindcss/colors
    red: '#ff0000'
`)

	p, err := doc.ResolvePalette()
	require.NoError(t, err)

	v, ok := p.Lookup("red")
	require.True(t, ok)
	assert.Equal(t, "#ff0000", v)
	_, ok = p.Lookup("red-500")
	assert.False(t, ok, "a literal replaces the whole family")

	require.Len(t, p.Overrides, 1)
	assert.Equal(t, ColorOverride{Name: "red", Previous: "tailwindcss/colors", Pos: Pos{Line: 4, Column: 5}}, p.Overrides[0])
}

func TestResolvePalette_ImportAfterKeyOverrides(t *testing.T) {
	doc := decodeYAML(t, `theme:
  colors:
    white: '#fefefe'
    $import: tailwindcss/colors
`)

	p, err := doc.ResolvePalette()
	require.NoError(t, err)

	v, _ := p.Lookup("white")
	assert.Equal(t, "#fff", v)
	require.Len(t, p.Overrides, 1)
	assert.Equal(t, "white", p.Overrides[0].Name)
	assert.Equal(t, SourceTheme, p.Overrides[0].Previous)
}

func TestResolvePalette_ExtendMergesShades(t *testing.T) {
	doc := decodeYAML(t, `theme:
  colors:
    brand:
      500: '#1fb6ff'
      900: '#0b4f6c'
  extend:
    colors:
      brand:
        500: '#009eeb'
        950: '#03283a'
      accent: hotpink
`)

	p, err := doc.ResolvePalette()
	require.NoError(t, err)

	assert.Equal(t, []string{"brand-500", "brand-900", "brand-950", "accent"}, p.Tokens())
	v, _ := p.Lookup("brand-500")
	assert.Equal(t, "#009eeb", v)
	assert.Empty(t, p.Overrides, "extension is not an override")
}

func TestResolvePalette_DefaultShade(t *testing.T) {
	doc := decodeYAML(t, "theme:\n  colors:\n    brand:\n      DEFAULT: '#1fb6ff'\n      dark: '#009eeb'\n")

	p, err := doc.ResolvePalette()
	require.NoError(t, err)
	assert.Equal(t, []string{"brand", "brand-dark"}, p.Tokens())
}

func TestResolvePalette_UnknownImport(t *testing.T) {
	doc := decodeYAML(t, "theme:\n  colors:\n    $import: tailwindcss/colours\n")

	_, err := doc.ResolvePalette()
	require.ErrorIs(t, err, ErrUnknownPalette)
	assert.Contains(t, err.Error(), "tailwindcss/colours")
}
