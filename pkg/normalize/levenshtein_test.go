package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinBasic(t *testing.T) {
	tests := []struct {
		a, b string
		max  int
		want int
		ok   bool
	}{
		{a: "kitten", b: "sitting", max: 5, want: 3, ok: true},
		{a: "same", b: "same", max: 0, want: 0, ok: true},
		{a: "", b: "abc", max: 3, want: 3, ok: true},
	}
	for _, tt := range tests {
		dist, ok := Levenshtein(tt.a, tt.b, tt.max)
		assert.Equal(t, tt.ok, ok)
		if ok {
			assert.Equal(t, tt.want, dist)
		}
	}
}

func TestLevenshteinShortCircuitsOnLengthDelta(t *testing.T) {
	_, ok := Levenshtein("abc", strings.Repeat("x", 10), 3)
	assert.False(t, ok, "length delta of 7 exceeds max of 3, must short-circuit")
}
