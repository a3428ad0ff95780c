package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

// StateFile persists {last_run, last_status} per source between
// scheduler fires, so operators can observe schedule health without
// re-running anything.
type StateFile struct {
	path string
}

// NewStateFile binds a StateFile to path; the file is created on first
// Save if it doesn't already exist.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Load reads the persisted state, keyed by source tag. A missing file
// is not an error — it means no source has ever run yet.
func (s *StateFile) Load() (map[string]types.SourceState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]types.SourceState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", s.path, err)
	}

	var states map[string]types.SourceState
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", s.path, err)
	}
	return states, nil
}

// Save replaces the state file with states, creating parent
// directories as needed. It writes a temp file and renames it over the
// old one, so a crash mid-write never leaves a truncated file.
func (s *StateFile) Save(states map[string]types.SourceState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state dir for %s: %w", s.path, err)
	}

	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file %s: %w", s.path, err)
	}
	return nil
}

// Update records one source's latest run outcome, stamped at runAt, and
// persists it immediately.
func (s *StateFile) Update(tag string, status types.SourceRunStatus, runAt time.Time) error {
	states, err := s.Load()
	if err != nil {
		return err
	}
	states[tag] = types.SourceState{SourceTag: tag, LastRun: runAt, LastStatus: status}
	return s.Save(states)
}
