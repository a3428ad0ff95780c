// Package dedup finds and merges duplicate operators (exact, fuzzy,
// and alias matching) and duplicate assets (same operator, within a
// proximity window), inside a single transaction per run. DryRun rolls
// the transaction back after computing what it would have done.
package dedup
