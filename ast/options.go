// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"log/slog"

	"github.com/creachadair/jsonx"
)

// DefaultMaxDepth is the nesting depth limit used when Options.MaxDepth is 0.
const DefaultMaxDepth = 10000

// Options control the dialect accepted by the parser. A nil or zero Options
// accepts strict JSON.
type Options struct {
	// Allow "//" line comments and "/* */" block comments.
	AllowComments bool

	// Allow a comma after the last element of an array or the last member of
	// an object.
	AllowTrailingComma bool

	// Allow strings enclosed in single quotation marks.
	AllowSingleQuotedStrings bool

	// Allow object keys written as bare words.
	AllowUnquotedKeys bool

	// If non-nil, bare words found in this map are replaced by the
	// corresponding values. See also NormalizeLiterals.
	CustomLiterals map[string]Value

	// The maximum nesting depth of arrays and objects.
	// If zero, DefaultMaxDepth is used.
	MaxDepth int

	// The capacity of the tokenizer's input buffer in bytes.
	// If zero, a default capacity is used.
	BufferSize int

	// The interner used for tokens. If nil, the process-wide default is used.
	Interner *jsonx.Interner

	// If non-nil, parse results and buffer refills are logged at debug level.
	Logger *slog.Logger
}

// Extended returns options enabling all the JSONX extensions.
func Extended() *Options {
	return &Options{
		AllowComments:            true,
		AllowTrailingComma:       true,
		AllowSingleQuotedStrings: true,
		AllowUnquotedKeys:        true,
	}
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// TokenizerOptions returns tokenizer options corresponding to o.
//
// Custom literals with scalar values become tokens of the corresponding kind.
// An array or object value becomes an identifier token whose text is the
// compact JSON encoding of the value; the parser recognizes these and
// substitutes a copy of the original value.
func (o *Options) TokenizerOptions() *jsonx.TokenizerOptions {
	if o == nil {
		return nil
	}
	topts := &jsonx.TokenizerOptions{
		AllowComments:            o.AllowComments,
		AllowSingleQuotedStrings: o.AllowSingleQuotedStrings,
		AllowUnquotedKeys:        o.AllowUnquotedKeys,
		Interner:                 o.Interner,
		BufferSize:               o.BufferSize,
		Logger:                   o.Logger,
	}
	if o.CustomLiterals != nil {
		topts.CustomLiterals = make(map[string]*jsonx.Token, len(o.CustomLiterals))
		for name, v := range o.CustomLiterals {
			tok := literalToken(v)
			topts.CustomLiterals[name] = &tok
		}
	}
	return topts
}

func literalToken(v Value) jsonx.Token {
	switch t := v.(type) {
	case nil, Null:
		return jsonx.NullToken()
	case Bool:
		return jsonx.BoolToken(bool(t))
	case Number:
		return jsonx.NumberToken(float64(t))
	case String:
		return jsonx.StringToken(string(t))
	default:
		return jsonx.IdentifierToken(v.JSON())
	}
}
