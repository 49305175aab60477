// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/creachadair/jsonx/internal/escape"
	"github.com/creachadair/jsonx/internal/ring"
	"go4.org/mem"
)

// maxWordLen is the maximum length in bytes of a bare word.
const maxWordLen = 256

// A Tokenizer reads lexical tokens from a Source with one token of lookahead.
// Input is pulled from the source on demand into a fixed-size buffer, so a
// Tokenizer never holds more than the buffer capacity plus one source chunk.
//
// Once a Tokenizer reports an error, it reports the same error for all
// subsequent calls. A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	src     Source
	buf     *ring.Buffer
	pending []byte // unbuffered remainder of the last source chunk
	srcDone bool   // src has reported io.EOF

	opts   TokenizerOptions
	intern *Interner
	log    *slog.Logger

	pos  position // of the next unread byte
	loc  Location // of the current token
	next *Token   // lookahead, or nil
	err  error    // sticky
	text []byte   // scratch space for decoding
}

// NewTokenizer constructs a Tokenizer that consumes input from src.
// If opts == nil, the tokenizer accepts strict JSON.
func NewTokenizer(src Source, opts *TokenizerOptions) *Tokenizer {
	t := &Tokenizer{
		src:    src,
		buf:    ring.New(opts.bufferSize()),
		intern: opts.interner(),
		log:    opts.logger(),
	}
	if opts != nil {
		t.opts = *opts
	}
	return t
}

// HasMore reports whether any tokens other than EOF remain in the input. It
// returns false if an error has occurred; use Err to distinguish.
func (t *Tokenizer) HasMore() bool {
	tok, err := t.Peek()
	return err == nil && tok.Kind() != EOF
}

// Peek returns the next token of the input without consuming it. Repeated
// calls to Peek without an intervening Next return the same token.
func (t *Tokenizer) Peek() (*Token, error) {
	if t.err != nil {
		return nil, t.err
	} else if t.next == nil {
		tok, err := t.scan()
		if err != nil {
			t.err = err
			return nil, err
		}
		t.next = tok
	}
	return t.next, nil
}

// Next consumes and returns the next token of the input. At the end of the
// input, Next returns an EOF token.
func (t *Tokenizer) Next() (*Token, error) {
	tok, err := t.Peek()
	if err == nil && tok.Kind() != EOF {
		t.next = nil
	}
	return tok, err
}

// Options returns a copy of the options t was constructed with.
func (t *Tokenizer) Options() TokenizerOptions { return t.opts }

// Err returns the error that stopped t, or nil.
func (t *Tokenizer) Err() error { return t.err }

// Location returns the location of the token most recently returned by Peek
// or Next.
func (t *Tokenizer) Location() Location { return t.loc }

// scan reads the next token from the input.
func (t *Tokenizer) scan() (*Token, error) {
	if err := t.skipSpace(); err != nil {
		return nil, err
	}
	start := t.pos.lineCol()
	t.loc = Location{
		Span:  Span{Pos: t.pos.offset, End: t.pos.offset},
		First: start,
		Last:  start,
	}
	c, ok, err := t.peekByte()
	if err != nil {
		return nil, err
	} else if !ok {
		return t.intern.Symbol(EOF), nil
	}

	var tok *Token
	switch {
	case c == '{':
		tok, err = t.symbol(LBrace)
	case c == '}':
		tok, err = t.symbol(RBrace)
	case c == '[':
		tok, err = t.symbol(LSquare)
	case c == ']':
		tok, err = t.symbol(RSquare)
	case c == ',':
		tok, err = t.symbol(Comma)
	case c == ':':
		tok, err = t.symbol(Colon)
	case c == '"':
		tok, err = t.scanString('"')
	case c == '\'':
		if !t.opts.AllowSingleQuotedStrings {
			return nil, t.failf(nil, "unexpected symbol %q", c)
		}
		tok, err = t.scanString('\'')
	case isWordStart(c):
		tok, err = t.scanWord(c)
	case isNumStart(c):
		tok, err = t.scanNumber(c)
	default:
		return nil, t.failf(nil, "invalid symbol %q", t.peekRune())
	}
	if err != nil {
		return nil, err
	}
	t.loc.End = t.pos.offset
	t.loc.Last = t.pos.lineCol()
	return tok, nil
}

func (t *Tokenizer) symbol(k Kind) (*Token, error) {
	t.consume(1)
	return t.intern.Symbol(k), nil
}

// skipSpace discards whitespace and, if enabled, comments.
func (t *Tokenizer) skipSpace() error {
	for {
		c, ok, err := t.peekByte()
		if err != nil || !ok {
			return err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			t.consume(1)
		case '/':
			if !t.opts.AllowComments {
				return t.failf(nil, "unexpected %q (comments are not enabled)", c)
			} else if err := t.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (t *Tokenizer) skipComment() error {
	if ok, err := t.fill(2); err != nil {
		return err
	} else if !ok {
		return t.failf(io.ErrUnexpectedEOF, "incomplete comment")
	}
	w, _ := t.buf.PeekWindow(2, 0)
	switch w.At(1) {
	case '/': // line comment to CR or LF
		t.consume(2)
		for {
			c, ok, err := t.peekByte()
			if err != nil || !ok {
				return err
			}
			t.consume(1)
			if c == '\n' || c == '\r' {
				return nil
			}
		}

	case '*': // block comment
		t.consume(2)
		for {
			c, ok, err := t.peekByte()
			if err != nil {
				return err
			} else if !ok {
				return t.failf(io.ErrUnexpectedEOF, "unterminated block comment")
			}
			if c == '*' {
				if _, err := t.fill(2); err != nil {
					return err
				}
				if w, _ := t.buf.PeekWindow(2, 0); w.Equal("*/") {
					t.consume(2)
					return nil
				}
			}
			t.consume(1)
		}

	default:
		t.consume(1)
		return t.failf(nil, "invalid %q in comment", w.At(1))
	}
}

// scanWord scans a bare word beginning with c, which is a literal, a custom
// literal, or an identifier.
func (t *Tokenizer) scanWord(c byte) (*Token, error) {
	custom := t.opts.CustomLiterals != nil
	if !custom {
		if tok, ok, err := t.matchLiteral(c); err != nil || ok {
			return tok, err
		}
	}

	word, err := t.readWord()
	if err != nil {
		return nil, err
	}
	if lit, ok := t.opts.CustomLiterals[word]; ok {
		if lit == nil {
			return t.intern.Null(), nil
		}
		return t.intern.Intern(*lit), nil
	}
	switch word {
	case "null":
		return t.intern.Null(), nil
	case "true", "false":
		return t.intern.Bool(word == "true"), nil
	}
	if custom || t.opts.AllowUnquotedKeys || !isLiteralStart(c) {
		return t.intern.Identifier(word), nil
	}
	return nil, t.failf(nil, "unexpected %q", word)
}

var literals = [...]struct {
	text string
	tok  *Token
}{
	'n': {"null", nullToken},
	't': {"true", trueToken},
	'f': {"false", falseToken},
}

// matchLiteral reports whether the input begins with the built-in literal
// whose first byte is c, not followed by another word character. If so, the
// literal is consumed.
func (t *Tokenizer) matchLiteral(c byte) (*Token, bool, error) {
	if int(c) >= len(literals) || literals[c].tok == nil {
		return nil, false, nil
	}
	lit := literals[c]
	if _, err := t.fill(len(lit.text) + 1); err != nil {
		return nil, false, err
	}
	w, _ := t.buf.PeekWindow(len(lit.text), 0)
	if !w.Equal(lit.text) {
		return nil, false, nil
	}
	if next, ok := t.buf.PeekWindow(1, len(lit.text)); ok && isWordChar(next.At(0)) {
		return nil, false, nil
	}
	t.consume(len(lit.text))
	return lit.tok, true, nil
}

// readWord consumes and returns a maximal run of word characters.
func (t *Tokenizer) readWord() (string, error) {
	t.text = t.text[:0]
	for {
		c, ok, err := t.peekByte()
		if err != nil {
			return "", err
		} else if !ok || !isWordChar(c) {
			return string(t.text), nil
		} else if len(t.text) == maxWordLen {
			return "", t.failf(nil, "word %q… exceeds %d bytes", t.text[:16], maxWordLen)
		}
		t.text = append(t.text, c)
		t.consume(1)
	}
}

// scanString scans a string enclosed by quote characters.
func (t *Tokenizer) scanString(quote byte) (*Token, error) {
	t.consume(1) // open quote
	t.text = t.text[:0]
	for {
		c, ok, err := t.peekByte()
		if err != nil {
			return nil, err
		} else if !ok {
			return nil, t.failf(io.ErrUnexpectedEOF, "unterminated string")
		}
		switch c {
		case quote:
			t.consume(1)
			return t.intern.String(string(t.text)), nil
		case '\\':
			if err := t.scanEscape(quote); err != nil {
				return nil, err
			}
		default:
			t.text = append(t.text, c)
			t.consume(1)
		}
	}
}

// scanEscape decodes the escape sequence at the head of the buffer and
// appends its value to t.text.
func (t *Tokenizer) scanEscape(quote byte) error {
	if ok, err := t.fill(2); err != nil {
		return err
	} else if !ok {
		return t.failf(io.ErrUnexpectedEOF, "unterminated escape")
	}
	w, _ := t.buf.PeekWindow(2, 0)
	switch e := w.At(1); e {
	case '"', '\\', '/':
		t.text = append(t.text, e)
	case '\'':
		if quote != '\'' {
			return t.failf(nil, "invalid escape %q", `\'`)
		}
		t.text = append(t.text, e)
	case 'b':
		t.text = append(t.text, '\b')
	case 'f':
		t.text = append(t.text, '\f')
	case 'n':
		t.text = append(t.text, '\n')
	case 'r':
		t.text = append(t.text, '\r')
	case 't':
		t.text = append(t.text, '\t')
	case 'u':
		r, err := t.readHex(2)
		if err != nil {
			return err
		}
		t.consume(6)
		if utf16.IsSurrogate(r) {
			if r, err = t.lowSurrogate(r); err != nil {
				return err
			}
		}
		t.text = utf8.AppendRune(t.text, r)
		return nil
	default:
		return t.failf(nil, "invalid escape %q", []byte{'\\', e})
	}
	t.consume(2)
	return nil
}

// lowSurrogate combines hi with an immediately following \u escape for a low
// surrogate, if there is one. Otherwise it returns U+FFFD and the following
// input is not consumed. Only an error from the source is reported.
func (t *Tokenizer) lowSurrogate(hi rune) (rune, error) {
	if ok, err := t.fill(6); err != nil {
		return 0, err
	} else if !ok {
		return utf8.RuneError, nil
	}
	if w, _ := t.buf.PeekWindow(2, 0); !w.Equal(`\u`) {
		return utf8.RuneError, nil
	}
	lo, err := t.parseHex(2)
	if err != nil {
		return utf8.RuneError, nil
	}
	r := utf16.DecodeRune(hi, lo)
	if r != utf8.RuneError {
		t.consume(6)
	}
	return r, nil
}

// readHex decodes four hexadecimal digits beginning at offset, refilling the
// buffer if necessary. It does not consume any input.
func (t *Tokenizer) readHex(offset int) (rune, error) {
	if ok, err := t.fill(offset + 4); err != nil {
		return 0, err
	} else if !ok {
		return 0, t.failf(io.ErrUnexpectedEOF, "unterminated escape")
	}
	r, err := t.parseHex(offset)
	if err != nil {
		return 0, t.failf(nil, "invalid Unicode escape: %v", err)
	}
	return r, nil
}

func (t *Tokenizer) parseHex(offset int) (rune, error) {
	var digits [4]byte
	w, _ := t.buf.PeekWindow(4, offset)
	return escape.ParseHex(mem.B(w.AppendTo(digits[:0])))
}

// scanNumber scans a number beginning with c. A leading "+" is discarded.
func (t *Tokenizer) scanNumber(c byte) (*Token, error) {
	t.text = t.text[:0]
	if c == '+' || c == '-' {
		if c == '-' {
			t.text = append(t.text, c)
		}
		t.consume(1)
		next, ok, err := t.peekByte()
		if err != nil {
			return nil, err
		} else if !ok {
			return nil, t.failf(io.ErrUnexpectedEOF, "incomplete number %q", c)
		} else if !isDigit(next) && next != '.' {
			return nil, t.failf(nil, "invalid number %q", []byte{c, next})
		}
	}

	var dot, exp bool
	for {
		c, ok, err := t.peekByte()
		if err != nil {
			return nil, err
		} else if !ok {
			break
		}
		if isDigit(c) {
			t.text = append(t.text, c)
			t.consume(1)
			continue
		} else if c == '.' {
			if dot || exp {
				return nil, t.failf(nil, "invalid number %q", append(t.text, c))
			}
			dot = true
			t.text = append(t.text, c)
			t.consume(1)
			continue
		} else if c != 'e' && c != 'E' {
			break
		} else if exp {
			return nil, t.failf(nil, "invalid number %q", append(t.text, c))
		}

		// Exponent: an optional sign and at least one digit.
		exp = true
		t.text = append(t.text, c)
		t.consume(1)
		s, ok, err := t.peekByte()
		if err != nil {
			return nil, err
		} else if ok && (s == '+' || s == '-') {
			t.text = append(t.text, s)
			t.consume(1)
			s, ok, err = t.peekByte()
			if err != nil {
				return nil, err
			}
		}
		if !ok {
			return nil, t.failf(io.ErrUnexpectedEOF, "incomplete number %q", t.text)
		} else if !isDigit(s) {
			return nil, t.failf(nil, "invalid number %q", append(t.text, s))
		}
	}

	v, err := strconv.ParseFloat(string(t.text), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, t.failf(nil, "invalid number %q", t.text)
	}
	return t.intern.Number(v), nil
}

// peekByte returns the next byte of input without consuming it. It reports
// false if no input remains.
func (t *Tokenizer) peekByte() (byte, bool, error) {
	if ok, err := t.fill(1); err != nil || !ok {
		return 0, false, err
	}
	c, _ := t.buf.Peek()
	return c, true, nil
}

// peekRune decodes the next rune of input without consuming it.
func (t *Tokenizer) peekRune() rune {
	_, _ = t.fill(utf8.UTFMax)
	var data [utf8.UTFMax]byte
	w, _ := t.buf.PeekWindow(utf8.UTFMax, 0)
	r, _ := utf8.DecodeRune(w.AppendTo(data[:0]))
	return r
}

// consume discards n bytes from the buffer and updates the input position.
func (t *Tokenizer) consume(n int) {
	w, _ := t.buf.PollWindow(n)
	for i := range w.Len() {
		t.pos.advance(w.At(i))
	}
}

// fill ensures that at least n bytes of input are buffered, pulling chunks
// from the source as needed. It reports false if the source ends before n
// bytes are available.
func (t *Tokenizer) fill(n int) (bool, error) {
	if n > t.buf.MaxLen() {
		return false, &InternalError{Message: fmt.Sprintf("lookahead %d exceeds buffer capacity %d", n, t.buf.MaxLen())}
	}
	for t.buf.Len() < n {
		if len(t.pending) == 0 {
			if t.srcDone {
				return false, nil
			}
			chunk, err := t.src.Next()
			if err == io.EOF {
				t.srcDone = true
				return false, nil
			} else if err != nil {
				return false, fmt.Errorf("read source: %w", err)
			}
			t.pending = chunk
			continue
		}
		k := min(len(t.pending), t.buf.Margin())
		if k == 0 || !t.buf.AddAll(t.pending[:k]) {
			return false, &InternalError{Message: fmt.Sprintf("cannot buffer %d bytes (margin %d)", len(t.pending), t.buf.Margin())}
		}
		t.pending = t.pending[k:]
		t.log.Debug("refill", "chunk", k, "buffered", t.buf.Len())
	}
	return true, nil
}

// failf constructs a *LexicalError at the current input position.
func (t *Tokenizer) failf(err error, msg string, args ...any) error {
	return &LexicalError{
		Location: t.pos.lineCol(),
		Offset:   t.pos.offset,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isNumStart(c byte) bool { return c == '+' || c == '-' || c == '.' || isDigit(c) }

func isWordStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c == '$'
}

func isWordChar(c byte) bool { return isWordStart(c) || isDigit(c) || c == '-' }

// isLiteralStart reports whether c begins, possibly with the wrong case, one
// of the built-in literals.
func isLiteralStart(c byte) bool {
	switch c {
	case 'n', 'N', 't', 'T', 'f', 'F':
		return true
	}
	return false
}
