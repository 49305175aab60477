// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSONX strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSONX encoding of a string
// enclosed by quote, which is either '"' or '\''. The input must have the
// enclosing quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A \u escape
// for a UTF-16 high surrogate followed by one for a low surrogate decodes to a
// single rune; unpaired surrogates decode to U+FFFD. Unquote reports an error
// for an incomplete or unknown escape sequence. The escape \' is accepted only
// when quote is a single quotation mark.
func Unquote(src mem.RO, quote byte) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case '\'':
			if quote != '\'' {
				return nil, fmt.Errorf("invalid %q after escape", c)
			}
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			r, err := ParseHex(src.SliceTo(4))
			if err != nil {
				return nil, err
			}
			src = src.SliceFrom(4)
			if utf16.IsSurrogate(r) && src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
				if lo, err := ParseHex(src.Slice(2, 6)); err == nil {
					if p := utf16.DecodeRune(r, lo); p != utf8.RuneError {
						r = p
						src = src.SliceFrom(6)
					}
				}
			}
			dec = utf8.AppendRune(dec, r)
		default:
			return nil, fmt.Errorf("invalid %q after escape", c)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// ParseHex decodes data as a sequence of hexadecimal digits, either case.
func ParseHex(data mem.RO) (rune, error) {
	var v rune
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += rune(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += rune(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += rune(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
