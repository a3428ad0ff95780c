package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

// SourceTimeout is the per-source subprocess hard timeout.
const SourceTimeout = 30 * time.Minute

// SingleSourceFlag is the hidden flag the orchestrator passes when
// re-invoking the binary to run exactly one source in its own process.
const SingleSourceFlag = "--run-source"

// RunSequence runs every tag in order as its own subprocess
// (execPath re-invoked with SingleSourceFlag=tag plus extraArgs),
// sequentially, so that a crash or resource leak in one source's
// adapter cannot corrupt the process state of another. One tag
// failing does not stop the rest from running.
func RunSequence(ctx context.Context, execPath string, tags []string, extraArgs []string) []SourceRunOutcome {
	outcomes := make([]SourceRunOutcome, 0, len(tags))

	for _, tag := range tags {
		outcomes = append(outcomes, runOne(ctx, execPath, tag, extraArgs))
	}

	return outcomes
}

// SourceRunOutcome is one subprocess's exit status, folded into the
// scheduler's persisted per-source state.
type SourceRunOutcome struct {
	Tag     string
	Err     error
	Elapsed time.Duration
}

// StatusesFromOutcomes derives each tag's own run status from
// RunSequence's outcomes, so a caller can persist one source's failure
// without overwriting the others' last-known status with a single
// blanket verdict.
func StatusesFromOutcomes(outcomes []SourceRunOutcome) map[string]types.SourceRunStatus {
	statuses := make(map[string]types.SourceRunStatus, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			statuses[o.Tag] = types.SourceRunFailed
		} else {
			statuses[o.Tag] = types.SourceRunSuccess
		}
	}
	return statuses
}

// ErrorFromOutcomes joins every failed outcome's error into one error,
// or returns nil if every source succeeded, so a caller can propagate
// "at least one source failed" up to a process exit code.
func ErrorFromOutcomes(outcomes []SourceRunOutcome) error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("source %q: %w", o.Tag, o.Err))
		}
	}
	return errors.Join(errs...)
}

func runOne(ctx context.Context, execPath, tag string, extraArgs []string) SourceRunOutcome {
	logger := log.WithSource(tag)
	start := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, SourceTimeout)
	defer cancel()

	args := append([]string{fmt.Sprintf("%s=%s", SingleSourceFlag, tag)}, extraArgs...)
	cmd := exec.CommandContext(runCtx, execPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("source subprocess failed")
	} else {
		logger.Info().Dur("elapsed", elapsed).Msg("source subprocess completed")
	}

	return SourceRunOutcome{Tag: tag, Err: err, Elapsed: elapsed}
}
