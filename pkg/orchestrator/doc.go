// Package orchestrator sequences the full ingestion pipeline: each
// registered source adapter runs as an independent subprocess, then
// (once every source has completed its own transaction) the
// Deduplicator and Linker each run once, in one transaction apiece.
// Scheduler wraps that sequence in a cron loop for the --schedule
// long-running mode.
package orchestrator
