// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jsonx/internal/escape"
	"go4.org/mem"
)

// Build renders v as JSON text. If indent ≤ 0 the output is compact, with no
// whitespace. Otherwise each array element and object member is written on
// its own line, indented by indent spaces per level of nesting, and object
// keys are followed by ": ". Empty arrays and objects are written as [] and
// {} in either case. A nil Value is rendered as null.
//
// Non-finite numbers are rendered as NaN, Infinity, and -Infinity, which are
// not valid JSON but can be read back using custom literals. Negative zero is
// rendered as -0, so that it reads back with its sign.
func Build(v Value, indent int) string {
	return string(appendValue(nil, v, max(indent, 0), 0))
}

// Encode writes the rendering of v to w, as Build. No trailing newline is
// added.
func Encode(w io.Writer, v Value, indent int) error {
	_, err := w.Write(appendValue(nil, v, max(indent, 0), 0))
	return err
}

func appendValue(buf []byte, v Value, indent, depth int) []byte {
	switch t := v.(type) {
	case nil, Null:
		return append(buf, "null"...)
	case Bool:
		return strconv.AppendBool(buf, bool(t))
	case Number:
		return appendNumber(buf, float64(t))
	case String:
		return appendString(buf, string(t))
	case Array:
		if len(t) == 0 {
			return append(buf, "[]"...)
		}
		buf = append(buf, '[')
		for i, elt := range t {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendBreak(buf, indent, depth+1)
			buf = appendValue(buf, elt, indent, depth+1)
		}
		buf = appendBreak(buf, indent, depth)
		return append(buf, ']')
	case Object:
		if len(t) == 0 {
			return append(buf, "{}"...)
		}
		buf = append(buf, '{')
		for i, m := range t {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendBreak(buf, indent, depth+1)
			buf = appendString(buf, m.Key)
			buf = append(buf, ':')
			if indent > 0 {
				buf = append(buf, ' ')
			}
			buf = appendValue(buf, m.Value, indent, depth+1)
		}
		buf = appendBreak(buf, indent, depth)
		return append(buf, '}')
	default:
		panic(fmt.Sprintf("ast: unknown value type %T", v))
	}
}

// appendBreak appends a line break and indentation for the given depth, if
// indent > 0.
func appendBreak(buf []byte, indent, depth int) []byte {
	if indent <= 0 {
		return buf
	}
	buf = append(buf, '\n')
	for range indent * depth {
		buf = append(buf, ' ')
	}
	return buf
}

func appendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	buf = escape.Append(buf, mem.S(s))
	return append(buf, '"')
}

// appendNumber appends the shortest decimal representation of v that reads
// back as the same value. Magnitudes outside [1e-6, 1e21) use exponential
// notation.
func appendNumber(buf []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(buf, "NaN"...)
	case math.IsInf(v, 1):
		return append(buf, "Infinity"...)
	case math.IsInf(v, -1):
		return append(buf, "-Infinity"...)
	}
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	buf = strconv.AppendFloat(buf, v, format, -1, 64)
	if format == 'e' {
		// Clean up e-09 to e-9.
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	return buf
}
