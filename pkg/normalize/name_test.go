package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "expands LLC", raw: "PIONEER NATURAL RES LLC", want: "Pioneer Natural Resources LLC"},
		{name: "expands OPER and CO", raw: "OXY OPER CO", want: "Oxy Operating Co"},
		{name: "short tokens stay upper", raw: "XTO US OPER", want: "Xto US Operating"},
		{name: "title cases plain words", raw: "DEVON ENERGY CORPORATION", want: "Devon Energy Corporation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalName(tt.raw))
		})
	}
}

func TestNormalizeForMatching(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "drops inc suffix", raw: "Pioneer Natural Resources Inc", want: "pioneernaturalresources"},
		{name: "matches across casing and suffix", raw: "PIONEER NATURAL RESOURCES INC", want: "pioneernaturalresources"},
		{name: "strips punctuation", raw: "Oxy USA, Inc.", want: "oxyusa"},
		{name: "collapses whitespace", raw: "  XTO   Energy   ", want: "xtoenergy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeForMatching(tt.raw))
		})
	}
}

func TestNormalizeForMatchingIsIdempotent(t *testing.T) {
	inputs := []string{"Pioneer Natural Resources Inc", "OXY USA - ANDREWS UNIT #12H", ""}
	for _, in := range inputs {
		once := NormalizeForMatching(in)
		twice := NormalizeForMatching(once)
		assert.Equal(t, once, twice, "NormalizeForMatching must be idempotent for %q", in)
	}
}

func TestCrossSourceOperatorNamesNormalizeEqual(t *testing.T) {
	a := NormalizeForMatching("Pioneer Natural Resources")
	b := NormalizeForMatching("PIONEER NATURAL RESOURCES INC")
	assert.Equal(t, a, b)
}
