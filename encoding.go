// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonx

import (
	"errors"

	"github.com/creachadair/jsonx/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSONX string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a JSONX string value enclosed in either double or single
// quotation marks. The quotation marks are removed, and escape sequences are
// replaced with their unescaped equivalents.
//
// Unquote reports an error for an incomplete or unknown escape sequence. As in
// the Tokenizer, the escape \' is valid only in single-quoted strings.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || (src[0] != '"' && src[0] != '\'') || src[len(src)-1] != src[0] {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1:len(src)-1]), src[0])
}
