package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackthreadai/wildcatter/pkg/log"
)

// isNoRows reports whether err is pgx's sentinel for a QueryRow that
// matched nothing, so callers that treat "absent" as a valid outcome
// don't have to import pgx themselves.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every
// function in this package can run standalone or inside a transaction
// without duplicating logic.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store owns the connection pool. Every package that touches the
// database takes a Store (or a bare Querier, for code that must also
// run inside someone else's transaction).
type Store struct {
	pool *pgxpool.Pool
}

// New opens a pool against dsn. It does not apply migrations — that is
// cmd/wildcatter-migrate's job, run once ahead of any ingestion.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach store: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool. Safe to call once, during orchestrator
// shutdown.
func (s *Store) Close() {
	s.pool.Close()
}

// Pool exposes the raw Querier for call sites that must run outside any
// transaction (e.g. the Loader's provenance write, which has to survive
// a rolled-back load).
func (s *Store) Pool() Querier {
	return s.pool
}

// WithTx runs fn inside a single BEGIN/COMMIT. Any error returned by fn
// rolls the transaction back; a nil error commits. This is the one
// transaction boundary spec.md calls for per source load, per dedup
// run, and per linker run.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.WithComponent("store").Error().Err(rbErr).Msg("rollback failed after fatal error")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// WithDryRunTx behaves like WithTx but always rolls back, regardless of
// whether fn returned an error — used by the Deduplicator's dry-run
// mode so callers can observe DetailEvents without mutating the store.
func (s *Store) WithDryRunTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	return fn(ctx, tx)
}
