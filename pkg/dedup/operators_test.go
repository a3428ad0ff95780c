package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestMatchOperatorsExact(t *testing.T) {
	a := &types.Operator{LegalName: "Permian Resources LLC"}
	b := &types.Operator{LegalName: "Permian Resources, LLC"}

	strategy, ok := matchOperators(a, b, 3)
	assert.True(t, ok)
	assert.Equal(t, "exact", strategy)
}

func TestMatchOperatorsFuzzy(t *testing.T) {
	a := &types.Operator{LegalName: "Pioneer Natural Resources"}
	b := &types.Operator{LegalName: "Pionear Natural Resources"}

	strategy, ok := matchOperators(a, b, 3)
	assert.True(t, ok)
	assert.Equal(t, "fuzzy", strategy)
}

func TestMatchOperatorsFuzzyRejectsLargeLengthDelta(t *testing.T) {
	a := &types.Operator{LegalName: "Oil Co"}
	b := &types.Operator{LegalName: "Oil Company Enterprises International"}

	_, ok := matchOperators(a, b, 3)
	assert.False(t, ok)
}

func TestMatchOperatorsAlias(t *testing.T) {
	a := &types.Operator{LegalName: "Acme Oil & Gas", Aliases: []string{"Acme Energy Holdings"}}
	b := &types.Operator{LegalName: "Acme Energy Holdings"}

	strategy, ok := matchOperators(a, b, 3)
	assert.True(t, ok)
	assert.Equal(t, "alias", strategy)
}

func TestMatchOperatorsNoMatch(t *testing.T) {
	a := &types.Operator{LegalName: "Alpha Drilling"}
	b := &types.Operator{LegalName: "Zeta Minerals"}

	_, ok := matchOperators(a, b, 3)
	assert.False(t, ok)
}

func TestVariantSetIncludesAliases(t *testing.T) {
	op := &types.Operator{LegalName: "Acme Oil Co", Aliases: []string{"Acme Oil Company", "Acme O&G"}}
	variants := variantSet(op)
	assert.Len(t, variants, 2)
}
