// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var shortEsc = [...]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

var hexDigit = []byte("0123456789ABCDEF")

// IsControl reports whether r is in one of the ISO control ranges
// [0x00, 0x1F] or [0x7F, 0x9F].
func IsControl(r rune) bool { return r <= 0x1f || (r >= 0x7f && r <= 0x9f) }

// Append appends the escaped form of src to buf and returns the updated
// slice. Enclosing quotation marks are not added.
//
// The characters " \ / and the controls \b \f \n \r \t use their short
// escapes. Other control characters are written as \u00XX with uppercase
// hex digits. Invalid UTF-8 is replaced by U+FFFD.
func Append(buf []byte, src mem.RO) []byte {
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		src = src.SliceFrom(n)

		if r < utf8.RuneSelf {
			if int(r) < len(shortEsc) && shortEsc[r] != 0 {
				buf = append(buf, '\\', shortEsc[r])
				continue
			}
		}
		if IsControl(r) {
			buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			continue
		}
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}

// Quote returns a copy of src escaped as by Append and enclosed in double
// quotation marks.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	buf = Append(buf, src)
	return append(buf, '"')
}
