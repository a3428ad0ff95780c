/*
Package types defines the canonical domain model shared by every other
package in wildcatter: the entities the Source Adapters produce, the
Loader writes, the Deduplicator merges, and the Linker rebinds.

# Core Types

Canonical entities:
  - Asset: a well or production lease, with a deterministic, never-mutating ID.
  - Operator: the legal entity responsible for one or more assets.
  - ProductionRecord: one asset's reported volumes for one month.
  - FinancialEstimate: read-only from the core's perspective, remapped on asset merge.
  - DataProvenance: one audit row per ingestion run.

Pipeline types:
  - Batch: what a Source Adapter hands the Loader after one download/parse/map pass.
  - StagedProduction: a production row pending a spatial join to its asset.
  - LoadResult, DedupResult, LinkResult: per-stage outcome summaries.
  - SourceState: the orchestrator's per-source schedule bookkeeping.

# Identity

Asset and Operator IDs are content-addressed (see
pkg/normalize.DeterministicID) from (source, natural key), so
re-ingesting the same source never mints a second identity for the same
real-world thing. Everything else — provenance rows, dedup events — uses
random UUIDs or auto-incrementing keys, since they don't need to survive
a re-run unchanged.

# Integration Points

This package is imported by pkg/store (persists these types), pkg/loader
(fills Batch and writes LoadResult), pkg/dedup and pkg/linker (read and
rewrite Asset/Operator, emit *Result), and pkg/orchestrator (reads and
writes SourceState).
*/
package types
