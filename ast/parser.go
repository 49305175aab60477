// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"log/slog"

	"github.com/creachadair/jsonx"
)

// Parse parses a single JSONX value from r. The input must contain exactly
// one value, optionally surrounded by whitespace (and comments, if enabled).
//
// In case of error, the concrete type of the error is *jsonx.LexicalError for
// malformed input text or *jsonx.SyntaxError for a malformed structure.
// Errors reading r are wrapped and returned.
func Parse(r io.Reader, opts *Options) (Value, error) {
	return ParseSource(jsonx.ReaderSource(r, 0), opts)
}

// ParseString parses a single JSONX value from s, as Parse.
func ParseString(s string, opts *Options) (Value, error) {
	return ParseSource(jsonx.StringSource(s), opts)
}

// ParseBytes parses a single JSONX value from data, as Parse.
func ParseBytes(data []byte, opts *Options) (Value, error) {
	return ParseSource(jsonx.BytesSource(data), opts)
}

// ParseSource parses a single JSONX value from src, as Parse.
func ParseSource(src jsonx.Source, opts *Options) (_ Value, err error) {
	p := newParser(jsonx.NewTokenizer(src, opts.TokenizerOptions()), opts)
	defer func() {
		if err != nil {
			p.log.Debug("parse failed", "tokens", p.ntok, "error", err)
		} else {
			p.log.Debug("parse completed", "tokens", p.ntok)
		}
	}()
	defer p.recoverParseError(&err)

	v := p.parseValue()
	if tok := p.peek(); tok.Kind() != jsonx.EOF {
		p.syntaxError(tok, jsonx.ErrExtraInput, "unexpected %v after value", tok)
	}
	return v, nil
}

// ParseTokenizer parses a single JSONX value from the front of the input to
// tok. Unlike ParseSource, it does not require the value to be followed by
// the end of the input, and tok is left positioned after the value.
//
// The lexical dialect is determined by tok itself. Object keys written as bare
// words are accepted if either tok or opts allows unquoted keys. In addition,
// opts.AllowTrailingComma, opts.MaxDepth, and array or object values in
// opts.CustomLiterals are respected by the parser.
//
// If no tokens remain in the input, ParseTokenizer returns nil, io.EOF.
func ParseTokenizer(tok *jsonx.Tokenizer, opts *Options) (_ Value, err error) {
	p := newParser(tok, opts)
	defer p.recoverParseError(&err)

	if next := p.peek(); next.Kind() == jsonx.EOF {
		return nil, io.EOF
	}
	return p.parseValue(), nil
}

// A parser is a recursive-descent parser over the tokens of a Tokenizer.
// Errors are reported by panicking, and recovered at the entry points.
type parser struct {
	tok       *jsonx.Tokenizer
	tcomma    bool // allow trailing commas
	unquoted  bool // allow unquoted keys
	maxDepth  int
	depth     int
	ntok      int
	composite map[string]Value // array and object custom literals, by JSON text
	log       *slog.Logger
}

func newParser(tok *jsonx.Tokenizer, opts *Options) *parser {
	p := &parser{
		tok:      tok,
		unquoted: tok.Options().AllowUnquotedKeys,
		maxDepth: opts.maxDepth(),
		log:      opts.logger(),
	}
	if opts != nil {
		p.tcomma = opts.AllowTrailingComma
		p.unquoted = p.unquoted || opts.AllowUnquotedKeys
		for _, v := range opts.CustomLiterals {
			switch v.(type) {
			case Array, Object:
				if p.composite == nil {
					p.composite = make(map[string]Value)
				}
				p.composite[v.JSON()] = v
			}
		}
	}
	return p
}

func (p *parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case *jsonx.SyntaxError:
			*errp = err
		case tokenError:
			*errp = err.error
		default:
			panic(perr)
		}
	}
}

// tokenError wraps an error reported by the tokenizer.
type tokenError struct{ error }

func (t tokenError) Unwrap() error { return t.error }

// peek returns the next token without consuming it.
func (p *parser) peek() *jsonx.Token {
	tok, err := p.tok.Peek()
	if err != nil {
		panic(tokenError{err})
	}
	return tok
}

// next consumes and returns the next token.
func (p *parser) next() *jsonx.Token {
	tok, err := p.tok.Next()
	if err != nil {
		panic(tokenError{err})
	}
	if tok.Kind() != jsonx.EOF {
		p.ntok++
	}
	return tok
}

func (p *parser) syntaxError(tok *jsonx.Token, err error, msg string, args ...any) {
	panic(jsonx.NewSyntaxError(p.tok.Location().First, tok, err, msg, args...))
}

// parseValue consumes a single value of any type.
func (p *parser) parseValue() Value {
	tok := p.next()
	switch tok.Kind() {
	case jsonx.Null:
		return Null{}
	case jsonx.Bool:
		return Bool(tok.Bool())
	case jsonx.Number:
		return Number(tok.Number())
	case jsonx.String:
		return String(tok.Text())
	case jsonx.LBrace:
		return p.parseObject()
	case jsonx.LSquare:
		return p.parseArray()
	case jsonx.Identifier:
		if v, ok := p.composite[tok.Text()]; ok {
			return clone(v)
		}
	}
	p.syntaxError(tok, nil, "invalid input: unexpected %v", tok)
	panic("unreachable")
}

func (p *parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.syntaxError(nil, nil, "nesting depth exceeds %d", p.maxDepth)
	}
}

func (p *parser) leave() { p.depth-- }

// parseObject consumes the members of an object.
// Precondition: the "{" has been consumed.
// Postcondition: the "}" has been consumed.
func (p *parser) parseObject() Value {
	p.enter()
	defer p.leave()

	obj := Object{}
	if p.peek().Kind() == jsonx.RBrace {
		p.next()
		return obj
	}
	var index map[string]int // key → position in obj
	for {
		key := p.parseKey()
		if tok := p.next(); tok.Kind() != jsonx.Colon {
			p.syntaxError(tok, nil, "expected colon, got %v", tok)
		}
		val := p.parseValue()

		// Duplicate keys replace the earlier value in its original position.
		if i, ok := index[key]; ok {
			obj[i].Value = val
		} else {
			if index == nil {
				index = make(map[string]int)
			}
			index[key] = len(obj)
			obj = append(obj, &Member{Key: key, Value: val})
		}

		switch tok := p.next(); tok.Kind() {
		case jsonx.RBrace:
			return obj
		case jsonx.Comma:
			if p.tcomma && p.peek().Kind() == jsonx.RBrace {
				p.next()
				return obj // trailing comma
			}
		default:
			p.syntaxError(tok, nil, "expected comma separator, got %v", tok)
		}
	}
}

// parseKey consumes an object key.
func (p *parser) parseKey() string {
	tok := p.next()
	switch tok.Kind() {
	case jsonx.String:
		return tok.Text()
	case jsonx.Identifier:
		if p.unquoted {
			return tok.Text()
		}
	}
	p.syntaxError(tok, nil, "expected string key, got %v", tok)
	panic("unreachable")
}

// parseArray consumes the elements of an array.
// Precondition: the "[" has been consumed.
// Postcondition: the "]" has been consumed.
func (p *parser) parseArray() Value {
	p.enter()
	defer p.leave()

	arr := Array{}
	if p.peek().Kind() == jsonx.RSquare {
		p.next()
		return arr
	}
	for {
		arr = append(arr, p.parseValue())
		switch tok := p.next(); tok.Kind() {
		case jsonx.RSquare:
			return arr
		case jsonx.Comma:
			if p.tcomma && p.peek().Kind() == jsonx.RSquare {
				p.next()
				return arr // trailing comma
			}
		default:
			p.syntaxError(tok, nil, "expected comma separator, got %v", tok)
		}
	}
}

// MustParse parses s as a single JSONX value with the given options, and
// panics if parsing fails. It is intended for use in tests and for
// initializing constant values.
func MustParse(s string, opts *Options) Value {
	v, err := ParseString(s, opts)
	if err != nil {
		panic(err)
	}
	return v
}
