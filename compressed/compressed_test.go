// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package compressed_test

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jsonx/ast"
	"github.com/creachadair/jsonx/compressed"
	"github.com/creachadair/jsonx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formats = []compressed.Format{compressed.None, compressed.Gzip, compressed.Zstd, compressed.LZ4}

func compress(t *testing.T, f compressed.Format, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := compressed.NewWriter(&buf, f)
	require.NoError(t, err)
	_, err = io.WriteString(w, text)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	const text = `{"hello": "world"}`
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			data := compress(t, f, text)
			br := bufio.NewReader(bytes.NewReader(data))

			got, err := compressed.Detect(br)
			require.NoError(t, err)
			assert.Equal(t, f, got)

			// Detection does not consume input.
			assert.Equal(t, len(data), br.Buffered())
		})
	}

	for _, input := range []string{"", "{", "\x1f", "[1, 2, 3]"} {
		got, err := compressed.Detect(bufio.NewReader(strings.NewReader(input)))
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, compressed.None, got, "input %q", input)
	}
}

func TestOpen(t *testing.T) {
	text := strings.Repeat(`{"key": [1, 2.5, "three", null, true]}`+"\n", 500)
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			rc, got, err := compressed.Open(bytes.NewReader(compress(t, f, text)))
			require.NoError(t, err)
			defer rc.Close()
			assert.Equal(t, f, got)

			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, text, string(data))
		})
	}
}

func TestNewSource(t *testing.T) {
	rng := testutil.NewRand(3)
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			for range 20 {
				want := testutil.RandomValue(rng, 4)
				data := compress(t, f, ast.Build(want, 2))

				got, err := ast.ParseSource(compressed.NewSource(bytes.NewReader(data), 64), nil)
				require.NoError(t, err)
				assert.True(t, ast.Equal(want, got), "got %s, want %s", got.JSON(), want.JSON())
			}
		})
	}
}

func TestErrors(t *testing.T) {
	t.Run("Corrupt", func(t *testing.T) {
		data := compress(t, compressed.Gzip, `{"a": 1}`)
		data = data[:len(data)/2]
		_, err := ast.ParseSource(compressed.NewSource(bytes.NewReader(data), 0), nil)
		assert.Error(t, err)
	})
	t.Run("BadHeader", func(t *testing.T) {
		src := compressed.NewSource(strings.NewReader("\x1f\x8b not really gzip"), 0)
		_, err := src.Next()
		require.Error(t, err)

		// The error is sticky.
		_, err2 := src.Next()
		assert.Equal(t, err, err2)
	})
	t.Run("Format", func(t *testing.T) {
		_, err := compressed.NewReader(strings.NewReader(""), compressed.Format(99))
		assert.Error(t, err)
		_, err = compressed.NewWriter(io.Discard, compressed.Format(99))
		assert.Error(t, err)
		assert.Equal(t, "Format(99)", compressed.Format(99).String())
	})
	t.Run("ParseFormat", func(t *testing.T) {
		for _, f := range formats {
			got, err := compressed.ParseFormat(f.String())
			require.NoError(t, err)
			assert.Equal(t, f, got)
		}
		_, err := compressed.ParseFormat("brotli")
		assert.Error(t, err)
	})
}
