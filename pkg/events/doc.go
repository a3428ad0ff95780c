// Package events provides a small in-memory pub/sub broker used to
// report dedup merges, operator-link decisions, and source run outcomes
// to an orchestrator-attached subscriber (e.g. a progress logger) while
// the underlying pass runs, without coupling pkg/dedup or pkg/linker to
// any particular reporting mechanism.
package events
