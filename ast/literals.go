// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeLiterals converts a map from bare words to Go values into a map
// suitable for Options.CustomLiterals.
//
// The strings "NaN", "Infinity", and "-Infinity" are converted to the
// corresponding numbers, as is any other string that parses as a number.
// Other strings, and values of other types, are converted with ToValue.
// It reports an error if a name is not a valid bare word, or if a value has
// a type not supported by ToValue.
func NormalizeLiterals(m map[string]any) (map[string]Value, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]Value, len(m))
	for name, v := range m {
		if !isWord(name) {
			return nil, fmt.Errorf("literal name %q is not a bare word", name)
		}
		if s, ok := v.(string); ok {
			out[name] = normalizeString(s)
			continue
		}
		nv, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("literal %q: %w", name, err)
		}
		out[name] = nv
	}
	return out, nil
}

// ParseLiterals parses s, which must be a JSONX object, as a map of custom
// literals. String values are normalized as by NormalizeLiterals. If a name
// occurs more than once, the last value wins.
func ParseLiterals(s string) (map[string]Value, error) {
	v, err := ParseString(s, Extended())
	if err != nil {
		return nil, fmt.Errorf("parse literals: %w", err)
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, fmt.Errorf("literals must be an object, got %s", v.JSON())
	}
	out := make(map[string]Value, len(obj))
	for _, m := range obj {
		if !isWord(m.Key) {
			return nil, fmt.Errorf("literal name %q is not a bare word", m.Key)
		}
		if s, ok := m.Value.(String); ok {
			out[m.Key] = normalizeString(string(s))
		} else {
			out[m.Key] = m.Value
		}
	}
	return out, nil
}

func normalizeString(s string) Value {
	switch s {
	case "NaN":
		return Number(math.NaN())
	case "Infinity":
		return Number(math.Inf(1))
	case "-Infinity":
		return Number(math.Inf(-1))
	}
	// Only decimal spellings count as numeric; ParseFloat also accepts "inf",
	// "nan", and hexadecimal forms.
	if t := strings.TrimSpace(s); t != "" && !strings.ContainsAny(t, "iInNxXpP") {
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return Number(f)
		}
	}
	return String(s)
}

// isWord reports whether s is a bare word as recognized by the tokenizer.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', c == '_', c == '$':
		case i > 0 && (('0' <= c && c <= '9') || c == '-'):
		default:
			return false
		}
	}
	return true
}
