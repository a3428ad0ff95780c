package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestSegmentsSplitsOnAllSeparators(t *testing.T) {
	assert.Equal(t, []string{"Acme Oil", "Well 12"}, segments("Acme Oil - Well 12"))
	assert.Equal(t, []string{"Acme Oil", "Well 12"}, segments("Acme Oil – Well 12"))
	assert.Equal(t, []string{"Acme Oil", "Well 12"}, segments("Acme Oil — Well 12"))
	assert.Equal(t, []string{"Acme Oil", "Well 12"}, segments("Acme Oil #Well 12"))
}

func TestSegmentsDropsEmptyPieces(t *testing.T) {
	assert.Equal(t, []string{"Acme Oil", "Well 12"}, segments("Acme Oil -- Well 12"))
}

func TestBuildNameIndexIndexesLegalNameAndAliases(t *testing.T) {
	state := "TX"
	ops := []*types.Operator{
		{ID: "op1", LegalName: "Acme Oil Co", Aliases: []string{"Acme O&G"}, HQState: &state},
	}
	idx := buildNameIndex(ops)

	op, ok := idx.lookup("Acme Oil Co - Well 4")
	assert.True(t, ok)
	assert.Equal(t, "op1", op.ID)

	op, ok = idx.lookup("Acme O&G #Lease 9")
	assert.True(t, ok)
	assert.Equal(t, "op1", op.ID)
}

func TestNameIndexLookupNoMatch(t *testing.T) {
	idx := buildNameIndex([]*types.Operator{{ID: "op1", LegalName: "Acme Oil Co"}})
	_, ok := idx.lookup("Zeta Minerals - Well 1")
	assert.False(t, ok)
}
