// Package source defines the contract every ingestion source
// implements (a Tag and a single Run) and the registry the
// orchestrator walks by source tag. Transport- and format-specific
// machinery shared across adapters lives in the sibling packages
// (httpx, stage, arcgis, jsonapi, htmlform, mft, bulkcsv, fixedwidth);
// per-source wiring lives in pkg/source/<tag>.
package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

// Config carries the knobs every adapter needs, resolved once by the
// orchestrator from flags and environment variables.
type Config struct {
	DataDir    string
	Download   bool // false reuses the latest staged directory instead of fetching
	Credential Credential
}

// Credential holds the email/password pair an authenticated source
// reads from <SRC>_API_EMAIL / <SRC>_API_PASSWORD.
type Credential struct {
	Email    string
	Password string
}

// Adapter is the contract one source implements. It has only Tag and
// Run: downloading (or reusing) the staged payload, parsing it and
// mapping it into a canonical Batch all happen inside Run. The
// interface has no separate Download, Parse or Map methods.
type Adapter interface {
	// Tag is the source_tag this adapter is registered under.
	Tag() string
	// Run performs Download, Parse and Map in sequence and returns the
	// canonical batch the Loader will upsert. A non-nil error here
	// means the source is abandoned entirely; row-level parse errors
	// are counted on the returned Batch, not returned as errors.
	Run(ctx context.Context, cfg Config) (*types.Batch, error)
}

// Registry is an ordered set of adapters keyed by tag, built once at
// process start in cmd/wildcatter.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry returns an empty registry ready for Register calls.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its own Tag(). Registering the same
// tag twice is a programming error and panics, since it only ever
// happens at init time in cmd/wildcatter's wiring.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[a.Tag()]; exists {
		panic(fmt.Sprintf("source: adapter %q already registered", a.Tag()))
	}
	r.adapters[a.Tag()] = a
}

// Get returns the adapter for tag, or false if none is registered.
func (r *Registry) Get(tag string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[tag]
	return a, ok
}

// Tags returns every registered tag, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.adapters))
	for tag := range r.adapters {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
