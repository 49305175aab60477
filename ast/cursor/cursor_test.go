// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jsonx/ast"
	"github.com/creachadair/jsonx/ast/cursor"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  // Comments are allowed in the test input.
  list: [
    {x: 1},
    {x: 2},
  ],
  y: {hello: "there"},
  o: ["hi", "yourself"],
  xyz: {p: true, d: true, q: false},
  "a b": null,
}`

func TestCursor(t *testing.T) {
	v, err := ast.ParseString(testJSON, ast.Extended())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := v.(ast.Object)

	tests := []struct {
		name string
		path []any
		want ast.Value
		loc  string
		fail bool
	}{
		{"NilInput", nil, v, "$", false},
		{"NoMatch", []any{"nonesuch"}, v, "$", true},
		{"WrongType", []any{11}, v, "$", true},
		{"BadElement", []any{1.5}, v, "$", true},

		{"ArrayPos", []any{"list", 1}, root.Find("list").Value.(ast.Array)[1], "$.list[1]", false},
		{"ArrayNeg", []any{"list", -1}, root.Find("list").Value.(ast.Array)[1], "$.list[1]", false},
		{"ArrayRange", []any{"o", 25}, root.Find("o").Value, "$.o", true},
		{"ObjPath", []any{"xyz", "d"}, ast.Bool(true), "$.xyz.d", false},
		{"ObjIndex", []any{"xyz", -1}, ast.Bool(false), "$.xyz.q", false},
		{"QuotedKey", []any{"a b"}, ast.Null{}, `$["a b"]`, false},
		{"Deep", []any{"list", 0, "x"}, ast.Number(1), "$.list[0].x", false},
		{"KeyOfArray", []any{"o", "hi"}, root.Find("o").Value, "$.o", true},

		{"FuncArray", []any{"o", testPathFunc}, ast.Number(2), "$.o()", false},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.Number(3), "$.xyz()", false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, ast.Bool(true), "$.xyz.d", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Errorf("Down %+v: got %s, want error", tc.path, c.Value().JSON())
			}
			if got := c.Value(); !ast.Equal(tc.want, got) {
				t.Errorf("Down %+v: got %s, want %s", tc.path, got.JSON(), tc.want.JSON())
			}
			if got := c.Location(); got != tc.loc {
				t.Errorf("Location: got %q, want %q", got, tc.loc)
			}
		})
	}
}

func TestCursor_navigate(t *testing.T) {
	v := ast.MustParse(`{"a": [10, 20, {"b": "c"}]}`, nil)
	c := cursor.New(v).Down("a", 2, "b")
	if err := c.Err(); err != nil {
		t.Fatalf("Down: unexpected error: %v", err)
	}
	var got []string
	for _, p := range c.Path() {
		got = append(got, p.JSON())
	}
	want := []string{`{"a":[10,20,{"b":"c"}]}`, `[10,20,{"b":"c"}]`, `{"b":"c"}`, `"c"`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Path (-want, +got):\n%s", diff)
	}

	if got := c.Up().Up().Down(0).Value(); !ast.Equal(got, ast.Number(10)) {
		t.Errorf("Up, Up, Down(0): got %s, want 10", got.JSON())
	}
	if c.Reset(); !c.AtOrigin() || !ast.Equal(c.Value(), c.Origin()) {
		t.Error("Reset did not return to the origin")
	}
	if c.Up(); !c.AtOrigin() {
		t.Error("Up at the origin moved the cursor")
	}
}

func TestPath(t *testing.T) {
	v := ast.MustParse(`{"name": "x", "tags": ["a", "b"], "n": 5}`, nil)

	if tags, err := cursor.Path[ast.Array](v, "tags"); err != nil {
		t.Errorf("Path tags: unexpected error: %v", err)
	} else if tags.Len() != 2 {
		t.Errorf("Path tags: got %s, want 2 elements", tags.JSON())
	}
	if s, err := cursor.Path[ast.String](v, "tags", -1); err != nil || s != "b" {
		t.Errorf("Path tags[-1]: got %q, %v; want b", s, err)
	}
	if _, err := cursor.Path[ast.String](v, "n"); err == nil {
		t.Error("Path n as String: got nil error")
	} else {
		t.Logf("Got expected error: %v", err)
	}
	if _, err := cursor.Path[ast.Value](v, "missing"); err == nil {
		t.Error("Path missing: got nil error")
	}
}

func testPathFunc(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Array:
		return ast.Number(len(t)), nil
	case ast.Object:
		return ast.Number(len(t)), nil
	default:
		return nil, errors.New("not a thing with length")
	}
}
