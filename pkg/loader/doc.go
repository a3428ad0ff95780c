// Package loader upserts a mapped Batch into the store: operators
// first, then assets, then production, one transaction per source
// load, with a provenance row written regardless of outcome.
package loader
