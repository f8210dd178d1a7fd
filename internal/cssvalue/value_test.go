package cssvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2/css"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{name: "length", value: "0.75em"},
		{name: "number", value: "1.5"},
		{name: "keyword", value: "inherit"},
		{name: "hex", value: "#333"},
		{name: "function", value: "rgba(0, 0, 0, 0.5)"},
		{name: "nested functions", value: "calc(100% - var(--gap, 1rem))"},
		{name: "quoted string", value: `"\201C"`},
		{name: "font stack", value: `ui-sans-serif, system-ui, "Segoe UI"`},
		{name: "important", value: "1em !important"},
		{name: "empty", value: "  ", wantErr: "empty value"},
		{name: "semicolon", value: "1em; color: red", wantErr: `unexpected ";"`},
		{name: "brace", value: "red }", wantErr: `unexpected "}"`},
		{name: "unclosed paren", value: "calc(1em + 2px", wantErr: "unbalanced parentheses"},
		{name: "extra paren", value: "1em)", wantErr: "unbalanced parentheses"},
		{name: "stray bang", value: "1em !", wantErr: `stray "!"`},
		{name: "bang not important", value: "1em !default", wantErr: `stray "!"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.value)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTokens(t *testing.T) {
	tokens, err := Tokens("1px /* hairline */ solid #e5e7eb")
	require.NoError(t, err)

	types := make([]css.TokenType, len(tokens))
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
		texts[i] = tok.Text
	}
	assert.Equal(t, []css.TokenType{css.DimensionToken, css.IdentToken, css.HashToken}, types)
	assert.Equal(t, []string{"1px", "solid", "#e5e7eb"}, texts)
}

func TestFunction(t *testing.T) {
	name, args, ok := Function("RGB(59, 130, 246)")
	require.True(t, ok)
	assert.Equal(t, "rgb", name)
	assert.Len(t, args, 5) // three numbers and two commas

	_, _, ok = Function("rgb(1, 2, 3) red")
	assert.False(t, ok)
	_, _, ok = Function("red")
	assert.False(t, ok)
	_, _, ok = Function("rgb(1, 2")
	assert.False(t, ok)
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"marginTop", "margin-top"},
		{"fontWeight", "font-weight"},
		{"color", "color"},
		{"margin-top", "margin-top"},
		{"WebkitTransition", "-webkit-transition"},
		{"MozAppearance", "-moz-appearance"},
		{"OTransition", "-o-transition"},
		{"msFlex", "-ms-flex"},
		{"--tw-prose-body", "--tw-prose-body"},
		{"--twProseBody", "--twProseBody"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PropertyName(tt.in))
		})
	}
}
