// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonx

import "sync"

// Fixed token instances shared by all interners.
var (
	eofToken   = &Token{kind: EOF}
	nullToken  = &Token{kind: Null}
	trueToken  = &Token{kind: Bool, flag: true}
	falseToken = &Token{kind: Bool, flag: false}

	symTokens = [...]*Token{
		LBrace:  {kind: LBrace},
		RBrace:  {kind: RBrace},
		LSquare: {kind: LSquare},
		RSquare: {kind: RSquare},
		Comma:   {kind: Comma},
		Colon:   {kind: Colon},
	}
)

// An Interner maps tokens to shared canonical instances, so that equal
// strings, numbers, and identifiers are represented by a single *Token.
// Single-valued tokens (EOF, null, true, false, and the symbols) always map
// to fixed package-level instances.
//
// An Interner is safe for concurrent use by multiple goroutines. The zero
// value is ready for use. Entries are never removed.
type Interner struct {
	mu     sync.Mutex
	tokens map[uint64]*Token
}

// NewInterner constructs a new empty Interner.
func NewInterner() *Interner { return new(Interner) }

var defaultInterner Interner

// DefaultInterner returns the process-wide interner used when no other
// interner is specified.
func DefaultInterner() *Interner { return &defaultInterner }

// Intern returns the canonical instance of t from the default interner.
func Intern(t Token) *Token { return defaultInterner.Intern(t) }

// Intern returns the canonical instance of t in n.
//
// If a previously-interned token has the same hash but a different value, the
// stored token is left in place and Intern returns a new unshared copy of t.
func (n *Interner) Intern(t Token) *Token {
	switch t.kind {
	case EOF:
		return eofToken
	case Null:
		return nullToken
	case Bool:
		if t.flag {
			return trueToken
		}
		return falseToken
	case Number, String, Identifier:
		// handled below
	default:
		if t.kind.IsSymbol() {
			return symTokens[t.kind]
		}
		return &t
	}

	h := t.Hash()
	n.mu.Lock()
	defer n.mu.Unlock()
	if old, ok := n.tokens[h]; ok {
		if old.Equal(&t) {
			return old
		}
		return &t // collision
	}
	if n.tokens == nil {
		n.tokens = make(map[uint64]*Token)
	}
	n.tokens[h] = &t
	return &t
}

// String returns the canonical string token for s.
func (n *Interner) String(s string) *Token { return n.Intern(StringToken(s)) }

// Number returns the canonical number token for v.
func (n *Interner) Number(v float64) *Token { return n.Intern(NumberToken(v)) }

// Identifier returns the canonical identifier token for s.
func (n *Interner) Identifier(s string) *Token { return n.Intern(IdentifierToken(s)) }

// Bool returns the canonical boolean token for v.
func (n *Interner) Bool(v bool) *Token { return n.Intern(BoolToken(v)) }

// Null returns the canonical null token.
func (n *Interner) Null() *Token { return nullToken }

// Symbol returns the canonical token of kind k, which must be EOF or a
// symbol kind.
func (n *Interner) Symbol(k Kind) *Token { return n.Intern(SymbolToken(k)) }

// Len reports the number of dynamic (string, number, identifier) tokens
// stored in n.
func (n *Interner) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.tokens)
}
