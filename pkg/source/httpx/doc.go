// Package httpx is the retrying HTTP doer every source adapter's
// Downloader builds on: up to N attempts with base_delay×attempt
// backoff, a fixed 60s sleep on 429, and context-scoped timeouts.
// Nothing in this package knows about any particular source's wire
// format — that belongs to arcgis, jsonapi, htmlform, mft and the
// per-tag adapters.
package httpx
