package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestSortedAssetsIsDeterministic(t *testing.T) {
	m := map[string]*types.Asset{
		"b": {ID: "b"},
		"a": {ID: "a"},
		"c": {ID: "c"},
	}

	got := sortedAssets(m)

	assert.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestSortedAssetsEmpty(t *testing.T) {
	got := sortedAssets(map[string]*types.Asset{})
	assert.Empty(t, got)
}

func TestNotesEmptyWhenNoErrors(t *testing.T) {
	r := &types.LoadResult{}
	assert.Equal(t, "", notes(r))
}

func TestNotesSingleError(t *testing.T) {
	r := &types.LoadResult{Errors: []error{errors.New("boom")}}
	assert.Equal(t, "boom", notes(r))
}

func TestNotesMultipleErrorsTruncated(t *testing.T) {
	r := &types.LoadResult{Errors: []error{errors.New("first"), errors.New("second")}}
	assert.Equal(t, "first (and more)", notes(r))
}

func TestLoadResultStatusPartialWhenErrorsAndProgress(t *testing.T) {
	r := types.LoadResult{AssetsUpserted: 5, Errors: []error{errors.New("row 3 bad")}}
	assert.Equal(t, types.ProvenancePartial, r.Status(false))
}

func TestLoadResultStatusFailedWhenFatal(t *testing.T) {
	r := types.LoadResult{AssetsUpserted: 5}
	assert.Equal(t, types.ProvenanceFailed, r.Status(true))
}

func TestLoadResultStatusSuccessWhenClean(t *testing.T) {
	r := types.LoadResult{AssetsUpserted: 5}
	assert.Equal(t, types.ProvenanceSuccess, r.Status(false))
}
