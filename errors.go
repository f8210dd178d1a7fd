package twconfig

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by the decoder
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrSyntax            = errors.New("malformed document")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInvalidDarkMode   = errors.New("invalid darkMode")
	ErrSchema            = errors.New("schema violation")
)

// DecodeError carries the position of a decode failure
type DecodeError struct {
	Path string
	Pos  Pos
	Err  error
}

func (e *DecodeError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<input>"
	}
	if e.Pos.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", loc, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func unsupportedFormat(name string) error {
	if name == "" {
		return fmt.Errorf("%w: no extension (want .yaml, .yml, .json or .toml)", ErrUnsupportedFormat)
	}
	return fmt.Errorf("%w: %q (want yaml, json or toml)", ErrUnsupportedFormat, name)
}
