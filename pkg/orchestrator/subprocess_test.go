package orchestrator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestStatusesFromOutcomesMixedResults(t *testing.T) {
	outcomes := []SourceRunOutcome{
		{Tag: "tx_rrc", Err: nil},
		{Tag: "ok_occ", Err: errors.New("timed out")},
	}

	statuses := StatusesFromOutcomes(outcomes)
	assert.Equal(t, types.SourceRunSuccess, statuses["tx_rrc"])
	assert.Equal(t, types.SourceRunFailed, statuses["ok_occ"])
}

func TestErrorFromOutcomesNilWhenAllSucceed(t *testing.T) {
	outcomes := []SourceRunOutcome{
		{Tag: "tx_rrc", Err: nil},
		{Tag: "ok_occ", Err: nil},
	}
	assert.NoError(t, ErrorFromOutcomes(outcomes))
}

func TestErrorFromOutcomesJoinsFailures(t *testing.T) {
	outcomes := []SourceRunOutcome{
		{Tag: "tx_rrc", Err: nil},
		{Tag: "ok_occ", Err: errors.New("timed out")},
		{Tag: "nd_ndic", Err: errors.New("401")},
	}

	err := ErrorFromOutcomes(outcomes)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ok_occ")
	assert.Contains(t, err.Error(), "nd_ndic")
	assert.NotContains(t, err.Error(), "tx_rrc")
}
