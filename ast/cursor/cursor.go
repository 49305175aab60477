// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements navigation into the structure of a parsed JSONX
// value.
package cursor

import (
	"fmt"

	"github.com/creachadair/jsonx/ast"
)

// Path follows path from v, as documented for Cursor.Down, and returns the
// value it reaches. It reports an error if the path cannot be followed or if
// the value reached does not have type T.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	var zero T
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("value at %s is %T, not %T", c.Location(), c.Value(), zero)
	}
	return out, nil
}

// A Cursor records a position in the structure of a value. Each step taken
// from the origin is kept, so the cursor can retrace its path with Up.
type Cursor struct {
	origin ast.Value
	steps  []step
	err    error
}

type step struct {
	label string // key or index, for Location
	value ast.Value
}

// New constructs a Cursor positioned at origin.
func New(origin ast.Value) *Cursor { return &Cursor{origin: origin} }

// Origin returns the value at which c was created.
func (c *Cursor) Origin() ast.Value { return c.origin }

// AtOrigin reports whether c is positioned at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.steps) == 0 }

// Value returns the value at the current position of c.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.origin
	}
	return c.steps[len(c.steps)-1].value
}

// Path returns the values visited from the origin to the current position,
// inclusive.
func (c *Cursor) Path() []ast.Value {
	out := make([]ast.Value, len(c.steps)+1)
	out[0] = c.origin
	for i, s := range c.steps {
		out[i+1] = s.value
	}
	return out
}

// Location renders the current position of c as a dotted path of keys and
// bracketed indices, for example $.list[1].x.
func (c *Cursor) Location() string {
	loc := "$"
	for _, s := range c.steps {
		loc += s.label
	}
	return loc
}

// Err returns the error from the most recent call to Down, or nil.
func (c *Cursor) Err() error { return c.err }

// Up moves c one step toward its origin, if it is not already there.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.steps); n > 0 {
		c.steps = c.steps[:n-1]
	}
	return c
}

// Reset moves c back to its origin and clears its error.
func (c *Cursor) Reset() *Cursor { c.steps = c.steps[:0]; c.err = nil; return c }

// Down moves c along path from its current position. Each element of path
// must be one of:
//
//   - A string, which selects the value of the member of an object with that
//     key.
//   - An int, which selects an element of an array or the value of a member
//     of an object by position. Negative offsets count backward from the end,
//     so -1 is the last element.
//   - A function with signature func(ast.Value) (ast.Value, error), whose
//     result becomes the next position.
//
// If an element cannot be followed, c stops at the last position reached
// and records an error, which Err reports. Down returns c to permit
// chaining.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	for _, elt := range path {
		cur := c.Value()
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(ast.Object)
			if !ok {
				return c.failf("cannot select key %q from %T", t, cur)
			}
			m := obj.Find(t)
			if m == nil {
				return c.failf("key %q not found", t)
			}
			c.push(keyLabel(t), m.Value)

		case int:
			switch e := cur.(type) {
			case ast.Array:
				i, ok := fixBound(len(e), t)
				if !ok {
					return c.failf("array index %d out of bounds (n=%d)", t, len(e))
				}
				c.push(fmt.Sprintf("[%d]", i), e[i])
			case ast.Object:
				i, ok := fixBound(len(e), t)
				if !ok {
					return c.failf("object index %d out of bounds (n=%d)", t, len(e))
				}
				c.push(keyLabel(e[i].Key), e[i].Value)
			default:
				return c.failf("cannot select index %d from %T", t, cur)
			}

		case func(ast.Value) (ast.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = fmt.Errorf("at %s: %w", c.Location(), err)
				return c
			}
			c.push("()", next)

		default:
			return c.failf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(label string, v ast.Value) {
	c.steps = append(c.steps, step{label: label, value: v})
}

func (c *Cursor) failf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf("at %s: %s", c.Location(), fmt.Sprintf(msg, args...))
	return c
}

func keyLabel(key string) string {
	if isSimpleKey(key) {
		return "." + key
	}
	return "[" + ast.String(key).JSON() + "]"
}

func isSimpleKey(key string) bool {
	if key == "" {
		return false
	}
	for i, c := range key {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', c == '_', c == '$':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return true
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
