package reader

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax       = errors.New("syntax error")
	ErrTooDeep      = errors.New("document nested too deeply")
	ErrTrailingData = errors.New("unexpected data after document")
)

// ParseError reports why and where parsing stopped. Err is one of the
// package's sentinel errors.
type ParseError struct {
	Offset int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsondoc: %s at offset %d", e.Msg, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

func syntaxError(offset int, msg string) *ParseError {
	return &ParseError{Offset: offset, Msg: msg, Err: ErrSyntax}
}
