package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestBuildOperatorUpsertPlaceholderCount(t *testing.T) {
	ops := []*types.Operator{
		{ID: "a", LegalName: "Alpha Resources"},
		{ID: "b", LegalName: "Beta Oil"},
	}

	sql, args := buildOperatorUpsert(ops)

	assert.Len(t, args, 2*8)
	assert.Contains(t, sql, "$1")
	assert.Contains(t, sql, "$16")
	assert.Contains(t, sql, "ON CONFLICT (id) DO UPDATE")
	assert.Contains(t, sql, "array_agg(DISTINCT a)")
}

func TestValuesWithTimestampsAppendsNow(t *testing.T) {
	got := valuesWithTimestamps([]string{"($1,$2)", "($3,$4)"})
	assert.Equal(t, "($1,$2,now(),now()),($3,$4,now(),now())", got)
}
