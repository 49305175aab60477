// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/creachadair/jsonx/ast"
)

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

// RandomValue returns a random value nested at most depth levels deep. All
// numbers in the result are finite, and all object keys are unique.
func RandomValue(rng *rand.Rand, depth int) ast.Value {
	n := 4
	if depth > 0 {
		n = 6
	}
	switch rng.IntN(n) {
	case 0:
		return ast.Null{}
	case 1:
		return ast.Bool(rng.IntN(2) == 1)
	case 2:
		return ast.Number(RandomNumber(rng))
	case 3:
		return ast.String(RandomString(rng, 12))
	case 4:
		arr := make(ast.Array, rng.IntN(5))
		for i := range arr {
			arr[i] = RandomValue(rng, depth-1)
		}
		return arr
	default:
		obj := ast.Object{}
		seen := make(map[string]bool)
		for range rng.IntN(5) {
			key := RandomString(rng, 6)
			if seen[key] {
				continue
			}
			seen[key] = true
			obj = append(obj, &ast.Member{Key: key, Value: RandomValue(rng, depth-1)})
		}
		return obj
	}
}

// RandomNumber returns a random finite number, drawn from a mixture of
// integers, fractions, and very small and very large magnitudes.
func RandomNumber(rng *rand.Rand) float64 {
	switch rng.IntN(5) {
	case 0:
		return float64(rng.IntN(2001) - 1000)
	case 1:
		return rng.NormFloat64() * 1000
	case 2:
		return rng.Float64() * math.Pow10(-rng.IntN(12)-6)
	case 3:
		return -rng.Float64() * math.Pow10(rng.IntN(30)+15)
	default:
		return float64(rng.Int64())
	}
}

// Runes from which random strings are drawn: ASCII punctuation that needs
// escaping, control characters in both ISO ranges, and non-ASCII text.
var specialRunes = []rune("\"\\/'\b\f\n\r\t\x00\x01\x1f\x7f\u0080\u0085\u009féü世界😀 ")

// RandomString returns a random valid UTF-8 string of at most n runes.
func RandomString(rng *rand.Rand, n int) string {
	var sb strings.Builder
	for range rng.IntN(n + 1) {
		if rng.IntN(4) == 0 {
			sb.WriteRune(specialRunes[rng.IntN(len(specialRunes))])
		} else {
			sb.WriteByte(byte('a' + rng.IntN(26)))
		}
	}
	return sb.String()
}

// Describe returns a short summary of v for test logs.
func Describe(v ast.Value) string {
	s := v.JSON()
	if len(s) > 60 {
		return fmt.Sprintf("%s... (%d bytes)", s[:60], len(s))
	}
	return s
}
