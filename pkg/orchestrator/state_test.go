package orchestrator

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestStateFileLoadMissingIsEmpty(t *testing.T) {
	sf := NewStateFile(filepath.Join(t.TempDir(), "state.json"))
	states, err := sf.Load()
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestStateFileUpdateRoundTrips(t *testing.T) {
	sf := NewStateFile(filepath.Join(t.TempDir(), "nested", "state.json"))
	runAt := time.Date(2026, 7, 26, 2, 0, 0, 0, time.UTC)

	require.NoError(t, sf.Update("tx_rrc", types.SourceRunSuccess, runAt))

	states, err := sf.Load()
	require.NoError(t, err)
	require.Contains(t, states, "tx_rrc")
	assert.Equal(t, types.SourceRunSuccess, states["tx_rrc"].LastStatus)
	assert.True(t, runAt.Equal(states["tx_rrc"].LastRun))
}

func TestStateFileUpdatePreservesOtherSources(t *testing.T) {
	sf := NewStateFile(filepath.Join(t.TempDir(), "state.json"))
	runAt := time.Now()

	require.NoError(t, sf.Update("tx_rrc", types.SourceRunSuccess, runAt))
	require.NoError(t, sf.Update("ok_occ", types.SourceRunFailed, runAt))

	states, err := sf.Load()
	require.NoError(t, err)
	assert.Len(t, states, 2)
	assert.Equal(t, types.SourceRunFailed, states["ok_occ"].LastStatus)
}
