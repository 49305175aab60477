package jsonx_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jsonx"
	jsoniter "github.com/json-iterator/go"
)

// benchInput returns a JSON array of n small records.
func benchInput(n int) []byte {
	var sb strings.Builder
	sb.WriteString("[\n")
	for i := range n {
		if i > 0 {
			sb.WriteString(",\n")
		}
		fmt.Fprintf(&sb, `  {"id": %d, "name": "item \"%d\"", "score": %g, "tags": ["a", "b\tc"], "ok": %v, "next": null}`,
			i, i, float64(i)*1.25e-3, i%2 == 0)
	}
	sb.WriteString("\n]\n")
	return []byte(sb.String())
}

func BenchmarkTokenizer(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Iterator", func(b *testing.B) {
		for b.Loop() {
			it := jsoniter.ParseBytes(jsoniter.ConfigDefault, input)
			it.Skip()
			if it.Error != nil && it.Error != io.EOF {
				b.Fatalf("Unexpected error: %v", it.Error)
			}
		}
	})

	b.Run("Tokenizer", func(b *testing.B) {
		for b.Loop() {
			tok := jsonx.NewTokenizer(jsonx.BytesSource(input), nil)
			for tok.HasMore() {
				tok.Next()
			}
			if err := tok.Err(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("TokenizerReader", func(b *testing.B) {
		for b.Loop() {
			tok := jsonx.NewTokenizer(jsonx.ReaderSource(bytes.NewReader(input), 512), nil)
			for tok.HasMore() {
				tok.Next()
			}
			if err := tok.Err(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
