// Package normalize holds the pure, I/O-free primitives every Source
// Adapter and the Deduplicator build on: display-name canonicalization,
// the lossy matching-key form used only for equality/fuzzy comparison,
// tolerant date parsing, deterministic ID construction, and the
// source-specific county/basin lookup tables.
//
// Nothing here touches the network, the filesystem, or the store — it
// is safe to call from any goroutine, any number of times, with no
// setup.
package normalize
