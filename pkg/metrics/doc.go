// Package metrics defines the Prometheus metrics exposed by wildcatter:
// records ingested per source, source failures, dedup merges, HTTP
// retries, and scheduler last-run timestamps. All metrics register at
// package init and are served via Handler() on /metrics.
package metrics
