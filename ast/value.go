// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an in-memory value tree for JSONX values, a parser
// that constructs trees from JSONX source, and a builder that renders trees
// back to JSON text.
package ast

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// A Value is an arbitrary JSONX value. The concrete type of a Value is one of
// Null, Bool, Number, String, Array, or Object.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string

	isValue()
}

// Null represents the null constant.
type Null struct{}

// A Bool is a Boolean constant, true or false.
type Bool bool

// A Number is a floating-point value.
type Number float64

// A String is a decoded string value.
type String string

// An Array is a sequence of values.
type Array []Value

// An Object is a collection of key-value members. Keys are unique after
// parsing, and members retain the order in which their keys first appeared.
type Object []*Member

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

func (v Null) JSON() string   { return Build(v, 0) }
func (v Bool) JSON() string   { return Build(v, 0) }
func (v Number) JSON() string { return Build(v, 0) }
func (v String) JSON() string { return Build(v, 0) }
func (v Array) JSON() string  { return Build(v, 0) }
func (v Object) JSON() string { return Build(v, 0) }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	if i := o.index(key); i >= 0 {
		return o[i]
	}
	return nil
}

func (o Object) index(key string) int {
	return slices.IndexFunc(o, func(m *Member) bool { return m.Key == key })
}

// Set sets the value of key in o to ToValue(value), and returns the updated
// object. If o already has a member with that key its value is replaced in
// place, otherwise a new member is added at the end.
func (o Object) Set(key string, value any) Object {
	if i := o.index(key); i >= 0 {
		o[i].Value = ToValue(value)
		return o
	}
	return append(o, Field(key, value))
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

func (m Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// Field constructs an object member with the given key and value.
// The value must be a type accepted by ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// ToValue converts a Go value into a Value. It accepts nil, a Value, a
// string, a bool, any integer or floating-point type, a []any, a []Value, a
// map[string]any, or a *Member (yielding a single-member Object). Map keys are
// added in sorted order. ToValue panics if v or any element of v does not
// have one of those types.
func ToValue(v any) Value {
	out, err := toValue(v)
	if err != nil {
		panic(err)
	}
	return out
}

func toValue(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Number(t), nil
	case int8:
		return Number(t), nil
	case int16:
		return Number(t), nil
	case int32:
		return Number(t), nil
	case int64:
		return Number(t), nil
	case uint:
		return Number(t), nil
	case uint8:
		return Number(t), nil
	case uint16:
		return Number(t), nil
	case uint32:
		return Number(t), nil
	case uint64:
		return Number(t), nil
	case float32:
		return Number(t), nil
	case float64:
		return Number(t), nil
	case []Value:
		return Array(t), nil
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			ev, err := toValue(elt)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := make(Object, len(keys))
		for i, key := range keys {
			ev, err := toValue(t[key])
			if err != nil {
				return nil, err
			}
			out[i] = &Member{Key: key, Value: ev}
		}
		return out, nil
	case *Member:
		return Object{t}, nil
	default:
		return nil, fmt.Errorf("ast: unsupported value type %T", v)
	}
}

// Equal reports whether a and b are structurally equal. Objects are equal if
// they have equal members in the same order. Number values compare as
// floating-point values, except that NaN is equal to NaN. A nil Value is
// equal to Null.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && (x == y || (math.IsNaN(float64(x)) && math.IsNaN(float64(y))))
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		return ok && slices.EqualFunc(x, y, Equal)
	case Object:
		y, ok := b.(Object)
		return ok && slices.EqualFunc(x, y, func(p, q *Member) bool {
			return p.Key == q.Key && Equal(p.Value, q.Value)
		})
	default:
		panic(fmt.Sprintf("ast: unknown value type %T", a))
	}
}

// clone returns a deep copy of v.
func clone(v Value) Value {
	switch t := v.(type) {
	case Array:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = clone(elt)
		}
		return out
	case Object:
		out := make(Object, len(t))
		for i, m := range t {
			out[i] = &Member{Key: m.Key, Value: clone(m.Value)}
		}
		return out
	default:
		return v
	}
}
