package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette(t *testing.T) {
	p, ok := Lookup(DefaultName)
	require.True(t, ok)

	assert.Equal(t, "black", p.Families[0].Name)
	assert.Equal(t, "#000", p.Families[0].Literal)
	assert.Len(t, p.Families, 24)

	for _, f := range p.Families[2:] {
		require.Len(t, f.Shades, len(shadeNames), f.Name)
		for _, s := range f.Shades {
			c, err := ParseColor(s.Value)
			require.NoError(t, err, "%s-%s", f.Name, s.Name)
			assert.Equal(t, KindHex, c.Kind)
		}
	}
}

func familyValue(t *testing.T, p *Palette, name, shade string) string {
	t.Helper()
	for _, f := range p.Families {
		if f.Name != name {
			continue
		}
		for _, s := range f.Shades {
			if s.Name == shade {
				return s.Value
			}
		}
	}
	t.Fatalf("%s has no %s-%s", p.Name, name, shade)
	return ""
}

func familyNames(p *Palette) []string {
	names := make([]string, len(p.Families))
	for i, f := range p.Families {
		names[i] = f.Name
	}
	return names
}

func TestDefaultPalette_V2Families(t *testing.T) {
	v2, ok := Lookup(DefaultName)
	require.True(t, ok)
	v3, ok := Lookup(V3Name)
	require.True(t, ok)
	assert.Len(t, v3.Families, 24)

	names := familyNames(v2)
	for _, name := range []string{"blueGray", "coolGray", "trueGray", "warmGray", "lightBlue"} {
		assert.Contains(t, names, name)
	}
	for _, name := range []string{"slate", "zinc", "neutral", "stone", "sky"} {
		assert.NotContains(t, names, name)
		assert.Contains(t, familyNames(v3), name)
	}

	// v3 renamed families keep the v2 values
	tests := []struct {
		v2, v3 string
	}{
		{v2: "blueGray", v3: "slate"},
		{v2: "coolGray", v3: "gray"},
		{v2: "gray", v3: "zinc"},
		{v2: "trueGray", v3: "neutral"},
		{v2: "warmGray", v3: "stone"},
		{v2: "lightBlue", v3: "sky"},
	}
	for _, tt := range tests {
		t.Run(tt.v2, func(t *testing.T) {
			for _, shade := range shadeNames {
				assert.Equal(t, familyValue(t, v3, tt.v3, shade), familyValue(t, v2, tt.v2, shade), shade)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	Register(&Palette{Name: "acme/brand", Families: []Family{{Name: "brand", Literal: "#1fb6ff"}}})

	p, ok := Lookup("acme/brand")
	require.True(t, ok)
	assert.Equal(t, "brand", p.Families[0].Name)
	assert.Contains(t, Names(), "acme/brand")
	assert.Contains(t, Names(), DefaultName)
	assert.Contains(t, Names(), V3Name)

	_, ok = Lookup("acme/missing")
	assert.False(t, ok)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		value    string
		wantKind Kind
		wantHex  string
		wantErr  bool
	}{
		{value: "transparent", wantKind: KindKeyword},
		{value: "currentColor", wantKind: KindKeyword},
		{value: "#3b82f6", wantKind: KindHex, wantHex: "#3b82f6"},
		{value: "#ABC", wantKind: KindHex, wantHex: "#aabbcc"},
		{value: "#3b82f680", wantKind: KindHex, wantHex: "#3b82f6"},
		{value: "#fff8", wantKind: KindHex, wantHex: "#ffffff"},
		{value: "rgb(255, 0, 0)", wantKind: KindFunction, wantHex: "#ff0000"},
		{value: "rgb(100% 0% 0% / 50%)", wantKind: KindFunction, wantHex: "#ff0000"},
		{value: "hsl(120, 100%, 50%)", wantKind: KindFunction, wantHex: "#00ff00"},
		{value: "var(--brand)", wantKind: KindFunction},
		{value: "rgb(var(--r) 0 0)", wantKind: KindFunction},
		{value: "RebeccaPurple", wantKind: KindNamed},
		{value: "", wantErr: true},
		{value: "#12345", wantErr: true},
		{value: "#ggg", wantErr: true},
		{value: "blurple", wantErr: true},
		{value: "url(x.png)", wantErr: true},
		{value: "calc(1px)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			c, err := ParseColor(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, c.Kind, c.Kind.String())
			assert.Equal(t, tt.wantHex, c.Hex)
			assert.Equal(t, tt.value, c.Raw)
		})
	}
}
