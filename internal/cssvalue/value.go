// Package cssvalue tokenizes and checks CSS declaration values and property names.
package cssvalue

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Token is one lexed piece of a value
type Token struct {
	Type css.TokenType
	Text string
}

// ErrEmpty is returned for blank values
var ErrEmpty = errors.New("empty value")

// Tokens lexes value, dropping whitespace and comments
func Tokens(value string) ([]Token, error) {
	lexer := css.NewLexer(parse.NewInputString(value))

	var tokens []Token
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			break
		}
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		tokens = append(tokens, Token{Type: tt, Text: string(text)})
	}
	return tokens, nil
}

// Check reports why value cannot be used as a declaration value, or nil
func Check(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmpty
	}

	tokens, err := Tokens(value)
	if err != nil {
		return err
	}

	depth := 0
	for i, tok := range tokens {
		switch tok.Type {
		case css.BadStringToken:
			return fmt.Errorf("unterminated string %s", tok.Text)
		case css.BadURLToken:
			return fmt.Errorf("malformed url %s", tok.Text)
		case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken:
			return fmt.Errorf("unexpected %q", tok.Text)
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth < 0 {
				return errors.New("unbalanced parentheses")
			}
		case css.DelimToken:
			if tok.Text == "!" {
				if i+1 >= len(tokens) || !strings.EqualFold(tokens[i+1].Text, "important") {
					return errors.New("stray \"!\"")
				}
			}
		}
	}
	if depth != 0 {
		return errors.New("unbalanced parentheses")
	}
	return nil
}

// Function splits a single functional value like "rgb(1, 2, 3)" into its
// lowercase name and argument tokens. ok is false for anything else.
func Function(value string) (name string, args []Token, ok bool) {
	tokens, err := Tokens(value)
	if err != nil || len(tokens) < 2 {
		return "", nil, false
	}
	first, last := tokens[0], tokens[len(tokens)-1]
	if first.Type != css.FunctionToken || last.Type != css.RightParenthesisToken {
		return "", nil, false
	}

	inner := tokens[1 : len(tokens)-1]
	depth := 0
	for _, tok := range inner {
		switch tok.Type {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth < 0 {
				return "", nil, false
			}
		}
	}
	if depth != 0 {
		return "", nil, false
	}

	return strings.ToLower(strings.TrimSuffix(first.Text, "(")), inner, true
}

// PropertyName converts a camelCase property to kebab-case.
// Vendor forms map to their dashed prefix: WebkitTransition -> -webkit-transition, msFlex -> -ms-flex.
// Custom properties and already dashed names are returned unchanged.
func PropertyName(name string) string {
	if strings.HasPrefix(name, "--") || !hasUpper(name) {
		return name
	}

	var b strings.Builder
	if strings.HasPrefix(name, "ms") && len(name) > 2 && unicode.IsUpper(rune(name[2])) {
		b.WriteByte('-')
	}
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 || isVendorStart(name) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// isVendorStart reports a capitalized vendor prefix (Webkit, Moz, O)
func isVendorStart(name string) bool {
	for _, p := range []string{"Webkit", "Moz", "O"} {
		if strings.HasPrefix(name, p) && len(name) > len(p) && unicode.IsUpper(rune(name[len(p)])) {
			return true
		}
	}
	return false
}
