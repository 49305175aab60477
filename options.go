// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonx

import (
	"log/slog"

	"github.com/creachadair/jsonx/internal/ring"
)

// TokenizerOptions control the dialect accepted by a Tokenizer.
// A nil or zero TokenizerOptions accepts strict JSON.
type TokenizerOptions struct {
	// Allow "//" line comments and "/* */" block comments, which are
	// discarded like whitespace.
	AllowComments bool

	// Allow strings enclosed in single quotation marks. Within such strings
	// the escape \' denotes a literal single quote.
	AllowSingleQuotedStrings bool

	// Emit bare words that are not literals as Identifier tokens, rather than
	// reporting an error for words that begin like a literal.
	AllowUnquotedKeys bool

	// If non-nil, bare words found in this map are replaced by the
	// corresponding tokens. Names in this map take precedence over the
	// built-in literals, and when it is set all other bare words are emitted
	// as Identifier tokens.
	CustomLiterals map[string]*Token

	// The interner used for tokens. If nil, the process-wide default is used.
	Interner *Interner

	// The capacity of the tokenizer's input buffer in bytes.
	// If zero, a default capacity is used.
	BufferSize int

	// If non-nil, buffer refills are logged at debug level.
	Logger *slog.Logger
}

func (o *TokenizerOptions) interner() *Interner {
	if o == nil || o.Interner == nil {
		return DefaultInterner()
	}
	return o.Interner
}

func (o *TokenizerOptions) bufferSize() int {
	if o == nil || o.BufferSize <= 0 {
		return ring.DefaultCapacity
	}
	return o.BufferSize
}

func (o *TokenizerOptions) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

var discardLogger = slog.New(slog.DiscardHandler)
