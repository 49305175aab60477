// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonx implements a streaming tokenizer for JSONX, an extended
// dialect of JSON.
//
// JSONX is standard JSON plus the following optional extensions, each
// enabled separately in a TokenizerOptions value:
//
//   - Line (// ...) and block (/* ... */) comments.
//   - Strings enclosed in single quotation marks.
//   - Unquoted object keys written as bare words.
//   - Caller-defined literals, bare words such as NaN or INF that stand for a
//     value.
//
// Trailing commas are handled by the parser in package ast.
//
// # Tokenizing
//
// A Tokenizer consumes input from a Source, which delivers text in chunks.
// Chunks are copied into a fixed-size buffer on demand, so the input need not
// be available all at once:
//
//	tok := jsonx.NewTokenizer(jsonx.ReaderSource(r, 0), nil)
//	for tok.HasMore() {
//	   t, _ := tok.Next()
//	   log.Printf("Next token: %v", t)
//	}
//	if err := tok.Err(); err != nil {
//	   log.Fatalf("Tokenizing failed: %v", err)
//	}
//
// Peek returns the next token without consuming it. At the end of the input,
// Peek and Next return a token of kind EOF.
//
// # Tokens
//
// Tokens are interned: by default, equal strings, numbers, and identifiers
// share a single *Token allocated from a process-wide Interner. Use the
// Interner field of TokenizerOptions to supply a separate interner.
//
// # Errors
//
// Malformed input is reported as a *LexicalError giving the line and column
// of the problem. Input that ends in the middle of a token produces an error
// that wraps io.ErrUnexpectedEOF. Errors reported by the Source are wrapped
// and returned unchanged.
package jsonx
