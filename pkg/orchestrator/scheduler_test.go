package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func noopDispatch(ctx context.Context) (map[string]types.SourceRunStatus, error) {
	return nil, nil
}

func TestNewSchedulerParsesDefaultExpr(t *testing.T) {
	s, err := NewScheduler(DefaultCronExpr, noopDispatch, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, s.schedule)
}

func TestNewSchedulerRejectsInvalidExpr(t *testing.T) {
	_, err := NewScheduler("not a cron expr", noopDispatch, nil, nil)
	assert.Error(t, err)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	s, err := NewScheduler(DefaultCronExpr, noopDispatch, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Run(ctx)
	assert.NoError(t, err)
}

// TestFireRecordsPerTagStatus covers the case a dispatch reports one
// tag failed and another succeeded: each tag's own status must land in
// the state file, not one blanket verdict derived from dispatch's
// combined error.
func TestFireRecordsPerTagStatus(t *testing.T) {
	dispatch := func(ctx context.Context) (map[string]types.SourceRunStatus, error) {
		statuses := map[string]types.SourceRunStatus{
			"tx_rrc": types.SourceRunSuccess,
			"ok_occ": types.SourceRunFailed,
		}
		return statuses, errors.New("source \"ok_occ\": boom")
	}

	state := NewStateFile(filepath.Join(t.TempDir(), "state.json"))
	s, err := NewScheduler(DefaultCronExpr, dispatch, state, []string{"tx_rrc", "ok_occ"})
	require.NoError(t, err)

	s.fire(context.Background())

	states, err := state.Load()
	require.NoError(t, err)
	assert.Equal(t, types.SourceRunSuccess, states["tx_rrc"].LastStatus)
	assert.Equal(t, types.SourceRunFailed, states["ok_occ"].LastStatus)
}

// TestFireFallsBackWhenDispatchReportsNoStatuses covers a dispatch
// that fails before any per-tag status is known (e.g. a dedup/link
// failure that aborts the pass) — every tag falls back to the overall
// pass result instead of being left unrecorded.
func TestFireFallsBackWhenDispatchReportsNoStatuses(t *testing.T) {
	dispatch := func(ctx context.Context) (map[string]types.SourceRunStatus, error) {
		return nil, errors.New("dedup failed")
	}

	state := NewStateFile(filepath.Join(t.TempDir(), "state.json"))
	s, err := NewScheduler(DefaultCronExpr, dispatch, state, []string{"tx_rrc"})
	require.NoError(t, err)

	s.fire(context.Background())

	states, err := state.Load()
	require.NoError(t, err)
	assert.Equal(t, types.SourceRunFailed, states["tx_rrc"].LastStatus)
}
