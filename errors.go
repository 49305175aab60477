// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonx

import (
	"errors"
	"fmt"
)

// ErrExtraInput is reported (wrapped in a *SyntaxError) when a complete value
// is followed by further tokens that were not expected.
var ErrExtraInput = errors.New("extra input after value")

// LexicalError is the concrete type of errors reported by the Tokenizer for
// malformed input text: invalid symbols, escapes, or numbers, and strings,
// comments, or literals left unterminated.
type LexicalError struct {
	Location LineCol
	Offset   int // byte offset of the error in the input
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *LexicalError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping. Input that ends before a token is complete
// unwraps to io.ErrUnexpectedEOF.
func (e *LexicalError) Unwrap() error { return e.err }

// SyntaxError is the concrete type of errors reported by the parser when the
// token sequence does not match the grammar.
type SyntaxError struct {
	Location LineCol
	Message  string
	Token    *Token // the offending token, or nil

	err error
}

// NewSyntaxError constructs a *SyntaxError for the given token at loc. If err
// is not nil, the resulting error wraps it.
func NewSyntaxError(loc LineCol, tok *Token, err error, msg string, args ...any) *SyntaxError {
	return &SyntaxError{
		Location: loc,
		Message:  fmt.Sprintf(msg, args...),
		Token:    tok,
		err:      err,
	}
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// InternalError reports a violation of the tokenizer's buffer bookkeeping.
// It indicates a bug in this package rather than a problem with the input.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return "jsonx: internal error: " + e.Message }
