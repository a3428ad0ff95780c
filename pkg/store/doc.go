// Package store is the relational schema contract shared by the
// Loader, the Deduplicator, the Linker, and (outside this core) the
// read-side API. It wraps a Postgres connection pool (pgx/v5) behind a
// small Querier interface so every operation can run either directly
// against the pool or inside a caller-managed transaction via WithTx.
//
// Table shape and invariants are documented in SPEC_FULL.md §6; the
// authoritative DDL lives in pkg/store/migrations, applied by
// cmd/wildcatter-migrate.
package store
