// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonx

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Kind is the type of a lexical token in the JSONX grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	EOF        Kind = iota // end of input
	Null                   // constant: null
	Bool                   // constant: true or false
	Number                 // number
	String                 // quoted string, single or double
	Identifier             // bare word, not a built-in or custom literal
	LBrace                 // left brace "{"
	RBrace                 // right brace "}"
	LSquare                // left square bracket "["
	RSquare                // right square bracket "]"
	Comma                  // comma ","
	Colon                  // colon ":"
)

var kindStr = [...]string{
	EOF:        "end of input",
	Null:       "null",
	Bool:       "boolean",
	Number:     "number",
	String:     "string",
	Identifier: "identifier",
	LBrace:     `"{"`,
	RBrace:     `"}"`,
	LSquare:    `"["`,
	RSquare:    `"]"`,
	Comma:      `","`,
	Colon:      `":"`,
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// IsSymbol reports whether k is one of the structural punctuation kinds.
func (k Kind) IsSymbol() bool { return k >= LBrace && k <= Colon }

// A Token is a classified lexical unit of JSONX input. The zero Token is an
// end-of-input token.
//
// Tokens are compared by kind and value with Equal. Tokens produced by a
// Tokenizer are interned (see Interner), so equal tokens from the same
// interner are also identical pointers.
type Token struct {
	kind Kind
	flag bool    // for Bool
	num  float64 // for Number
	text string  // for String and Identifier
}

// StringToken constructs a string token with the given decoded text.
func StringToken(s string) Token { return Token{kind: String, text: s} }

// NumberToken constructs a number token with the given value.
func NumberToken(v float64) Token { return Token{kind: Number, num: v} }

// BoolToken constructs a boolean token with the given value.
func BoolToken(v bool) Token { return Token{kind: Bool, flag: v} }

// IdentifierToken constructs an identifier token with the given text.
func IdentifierToken(s string) Token { return Token{kind: Identifier, text: s} }

// NullToken constructs a null token.
func NullToken() Token { return Token{kind: Null} }

// SymbolToken constructs a token of kind k, which must be EOF or a symbol.
func SymbolToken(k Kind) Token {
	if k != EOF && !k.IsSymbol() {
		panic(fmt.Sprintf("jsonx: %v is not a symbol kind", k))
	}
	return Token{kind: k}
}

// Kind reports the kind of t.
func (t *Token) Kind() Kind { return t.kind }

// Bool reports the value of a boolean token, or false for other kinds.
func (t *Token) Bool() bool { return t.flag }

// Number reports the value of a number token, or 0 for other kinds.
func (t *Token) Number() float64 { return t.num }

// Text reports the decoded text of a string or identifier token, or "" for
// other kinds.
func (t *Token) Text() string { return t.text }

// Equal reports whether t and u have the same kind and value. Numbers are
// compared by bit pattern, except that all NaN values are equal: thus 0 and
// -0 are not equal, while NaN equals NaN.
func (t *Token) Equal(u *Token) bool {
	if t == u {
		return true
	} else if t == nil || u == nil || t.kind != u.kind {
		return false
	}
	switch t.kind {
	case Bool:
		return t.flag == u.flag
	case Number:
		return numBits(t.num) == numBits(u.num)
	case String, Identifier:
		return t.text == u.text
	default:
		return true
	}
}

// Hash returns a structural hash of the kind and value of t, consistent with
// Equal: tokens that are Equal have the same hash.
func (t *Token) Hash() uint64 {
	var buf [9]byte
	buf[0] = byte(t.kind)
	d := xxhash.New()
	switch t.kind {
	case Bool:
		if t.flag {
			buf[1] = 1
		}
		d.Write(buf[:2])
	case Number:
		binary.LittleEndian.PutUint64(buf[1:], numBits(t.num))
		d.Write(buf[:])
	case String, Identifier:
		d.Write(buf[:1])
		d.WriteString(t.text)
	default:
		d.Write(buf[:1])
	}
	return d.Sum64()
}

// String returns a human-readable description of t, suitable for use in
// error messages.
func (t *Token) String() string {
	switch t.kind {
	case Bool:
		return strconv.FormatBool(t.flag)
	case Number:
		return "number " + strconv.FormatFloat(t.num, 'g', -1, 64)
	case String:
		return "string " + strconv.Quote(t.text)
	case Identifier:
		return "identifier " + t.text
	default:
		return t.kind.String()
	}
}

// numBits returns the bit pattern of v, with all NaN values mapped to a single
// canonical pattern.
func numBits(v float64) uint64 {
	if math.IsNaN(v) {
		return 0x7ff8000000000001
	}
	return math.Float64bits(v)
}
