package store

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/store/migrations"
)

// ApplyMigrations runs every embedded *.sql file in migrations.FS that
// hasn't already been recorded in schema_migrations, in lexical
// filename order, each inside its own transaction. This is the only
// entry point cmd/wildcatter-migrate calls.
func ApplyMigrations(ctx context.Context, s *Store) (int, error) {
	if _, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	filename   text PRIMARY KEY,
	applied_at timestamptz NOT NULL DEFAULT now()
)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	entries, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return 0, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(entries)

	applied := 0
	for _, name := range entries {
		var already bool
		if err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`, name).Scan(&already); err != nil {
			return applied, fmt.Errorf("failed to check migration state for %s: %w", name, err)
		}
		if already {
			continue
		}

		body, err := migrations.FS.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		err = s.WithTx(ctx, func(ctx context.Context, q Querier) error {
			if _, err := q.Exec(ctx, string(body)); err != nil {
				return fmt.Errorf("failed to apply %s: %w", name, err)
			}
			if _, err := q.Exec(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		log.WithComponent("migrate").Info().Str("file", name).Msg("applied migration")
		applied++
	}

	return applied, nil
}
