package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/metrics"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

// DefaultCronExpr fires weekly, Sunday 02:00 local.
const DefaultCronExpr = "0 2 * * 0"

// Dispatch runs one full pass: every source, then dedup, then link.
// The scheduler calls this once per cron fire; a non-scheduled
// cmd/wildcatter invocation runs RunSequence directly instead. It returns the status
// each source tag observed this pass, so the scheduler can persist one
// source's failure without clobbering another's last-known status, and
// a combined error if any step failed.
type Dispatch func(ctx context.Context) (map[string]types.SourceRunStatus, error)

// Scheduler drives Dispatch on a cron schedule, persisting per-source
// run status between fires. It blocks until its context is cancelled,
// mirroring a ticker-driven reconciliation loop but keyed off
// cron.Schedule.Next instead of a fixed interval.
type Scheduler struct {
	schedule cron.Schedule
	dispatch Dispatch
	state    *StateFile
	tags     []string
}

// NewScheduler parses cronExpr (standard 5-field) and binds dispatch,
// the state file, and the source tags it should record state for.
func NewScheduler(cronExpr string, dispatch Dispatch, state *StateFile, tags []string) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cron expression %q: %w", cronExpr, err)
	}
	return &Scheduler{schedule: schedule, dispatch: dispatch, state: state, tags: tags}, nil
}

// Run blocks, firing Dispatch on every cron match, until ctx is
// cancelled. Returns nil on a clean cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := log.WithComponent("scheduler")

	for {
		next := s.schedule.Next(time.Now())
		wait := time.Until(next)
		logger.Info().Time("next_run", next).Msg("scheduler waiting for next fire")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info().Msg("scheduler shutting down")
			return nil
		case <-timer.C:
			s.fire(ctx)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	logger := log.WithComponent("scheduler")
	runAt := time.Now()

	statuses, err := s.dispatch(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("scheduled dispatch failed")
	}

	// fallback is only used for a tag dispatch never reported a status
	// for (e.g. a dedup/link failure that aborted the pass before every
	// source tag's own status was known); a tag with its own recorded
	// status always keeps it, even when the overall pass errored.
	fallback := types.SourceRunSuccess
	if err != nil {
		fallback = types.SourceRunFailed
	}

	for _, tag := range s.tags {
		metrics.SchedulerLastRunTimestamp.WithLabelValues(tag).Set(float64(runAt.Unix()))

		status, ok := statuses[tag]
		if !ok {
			status = fallback
		}

		if s.state == nil {
			continue
		}
		if updateErr := s.state.Update(tag, status, runAt); updateErr != nil {
			logger.Error().Err(updateErr).Str("source_tag", tag).Msg("failed to persist scheduler state")
		}
	}
}
