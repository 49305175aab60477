// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jsonx/ast"
	"github.com/creachadair/jsonx/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

func TestString(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  string
	}{
		{nil, "null"},
		{ast.Null{}, "null"},

		{ast.Bool(false), "false"},
		{ast.Bool(true), "true"},

		{ast.String(""), `""`},
		{ast.String("a \t b"), `"a \t b"`},
		{ast.String(`say "hi" a/b c\d`), `"say \"hi\" a\/b c\\d"`},
		{ast.String("\b\f\n\r\t"), `"\b\f\n\r\t"`},
		{ast.String("\x00\x1f\x7f\u0085\u009f"), `"\u0000\u001F\u007F\u0085\u009F"`},
		{ast.String("é ü 世界 😀"), `"é ü 世界 😀"`},

		{ast.Number(0), `0`},
		{ast.Number(15), `15`},
		{ast.Number(-25), `-25`},
		{ast.Number(-0.00239), `-0.00239`},
		{ast.Number(math.Copysign(0, -1)), `-0`},

		{ast.Array{}, `[]`},
		{ast.Array{
			ast.Bool(false),
		}, `[false]`},
		{ast.Array{
			ast.Bool(true),
			ast.Number(199),
		}, `[true,199]`},
		{ast.Array{
			ast.String("free"),
			ast.String("your"),
			ast.String("mind"),
		}, `["free","your","mind"]`},
		{ast.Array{nil, ast.Array{}, ast.Object{}}, `[null,[],{}]`},

		{ast.Object{}, `{}`},
		{ast.Object{
			ast.Field("xs", nil),
		}, `{"xs":null}`},
		{ast.Object{
			ast.Field("name", "Dennis"),
			ast.Field("age", 37),
			ast.Field("isOld", false),
		}, `{"name":"Dennis","age":37,"isOld":false}`},

		{ast.Object{
			ast.Field("values", []any{5, 10, true}),
			ast.Field("page", ast.Object{
				ast.Field("token", "xyz-pdq-zvm"),
				ast.Field("count", 100),
			}),
		}, `{"values":[5,10,true],"page":{"token":"xyz-pdq-zvm","count":100}}`},
		{ast.Object{ast.Field("a\nb", "")}, `{"a\nb":""}`},
	}
	for _, test := range tests {
		if got := ast.Build(test.input, 0); got != test.want {
			t.Errorf("Input: %+v\nGot:  %s\nWant: %s", test.input, got, test.want)
		}
	}
}

func TestBuild_numbers(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{1, "1"},
		{0.1, "0.1"},
		{-12.5e-3, "-0.0125"},
		{123456789, "123456789"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{-2.5e-10, "-2.5e-10"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{5e-324, "5e-324"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tc := range tests {
		if got := ast.Number(tc.input).JSON(); got != tc.want {
			t.Errorf("Number(%v): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestBuild_indent(t *testing.T) {
	v := ast.MustParse(`{"a":[1,2],"b":{"c":true}}`, nil)

	tests := []struct {
		indent int
		want   string
	}{
		{-1, `{"a":[1,2],"b":{"c":true}}`},
		{0, `{"a":[1,2],"b":{"c":true}}`},
		{2, "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {\n    \"c\": true\n  }\n}"},
		{4, "{\n    \"a\": [\n        1,\n        2\n    ],\n    \"b\": {\n        \"c\": true\n    }\n}"},
	}
	for _, tc := range tests {
		got := ast.Build(v, tc.indent)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Build indent=%d (-want, +got):\n%s", tc.indent, diff)
		}

		var sb strings.Builder
		if err := ast.Encode(&sb, v, tc.indent); err != nil {
			t.Errorf("Encode indent=%d: unexpected error: %v", tc.indent, err)
		} else if diff := cmp.Diff(got, sb.String()); diff != "" {
			t.Errorf("Encode indent=%d (-want, +got):\n%s", tc.indent, diff)
		}
	}

	t.Run("Empty", func(t *testing.T) {
		const want = "[\n  [],\n  {},\n  {\n    \"x\": []\n  }\n]"
		got := ast.Build(ast.MustParse(`[[], {}, {"x": []}]`, nil), 2)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Build (-want, +got):\n%s", diff)
		}
	})
}

// Builder output for finite values is valid JSON that other decoders agree
// with.
func TestBuild_gjson(t *testing.T) {
	rng := testutil.NewRand(7)
	for i := range 200 {
		v := testutil.RandomValue(rng, 3)
		for _, indent := range []int{0, 2} {
			text := ast.Build(v, indent)
			if !gjson.Valid(text) {
				t.Fatalf("Value %d: output is not valid JSON: %s", i, text)
			}
			checkGJSON(t, v, gjson.Parse(text))
		}
	}

	obj := ast.Object{
		ast.Field("name", "café \"quoted\"\n"),
		ast.Field("list", []any{1, 2.5, "three"}),
		ast.Field("nested", ast.Object{ast.Field("ok", true)}),
	}
	text := obj.JSON()
	for path, want := range map[string]string{
		"name":      "café \"quoted\"\n",
		"list.1":    "2.5",
		"list.2":    "three",
		"list.#":    "3",
		"nested.ok": "true",
	} {
		if got := gjson.Get(text, path).String(); got != want {
			t.Errorf("Get %q: got %q, want %q", path, got, want)
		}
	}
}

func checkGJSON(t *testing.T, want ast.Value, got gjson.Result) {
	t.Helper()
	switch v := want.(type) {
	case ast.Null:
		if got.Type != gjson.Null {
			t.Errorf("Got %v, want null", got.Type)
		}
	case ast.Bool:
		if got.Type != gjson.True && got.Type != gjson.False || got.Bool() != bool(v) {
			t.Errorf("Got %s, want %v", got.Raw, v)
		}
	case ast.Number:
		if got.Type != gjson.Number || got.Float() != float64(v) {
			t.Errorf("Got %s, want %v", got.Raw, float64(v))
		}
	case ast.String:
		if got.Type != gjson.String || got.String() != string(v) {
			t.Errorf("Got %q, want %q", got.String(), string(v))
		}
	case ast.Array:
		elts := got.Array()
		if !got.IsArray() || len(elts) != len(v) {
			t.Fatalf("Got %s, want array of %d", got.Raw, len(v))
		}
		for i, elt := range v {
			checkGJSON(t, elt, elts[i])
		}
	case ast.Object:
		if !got.IsObject() {
			t.Fatalf("Got %s, want object", got.Raw)
		}
		var keys []string
		got.ForEach(func(key, val gjson.Result) bool {
			keys = append(keys, key.String())
			if m := v.Find(key.String()); m != nil {
				checkGJSON(t, m.Value, val)
			}
			return true
		})
		if diff := cmp.Diff(v.Keys(), keys); diff != "" {
			t.Errorf("Object keys (-want, +got):\n%s", diff)
		}
	}
}
