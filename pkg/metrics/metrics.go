package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecordsIngestedTotal counts records successfully upserted into the
	// store, by source tag and record kind (asset/operator/production).
	RecordsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wildcatter_records_ingested_total",
			Help: "Total records upserted into the store, by source and kind",
		},
		[]string{"source", "kind"},
	)

	// SourceFailuresTotal counts source runs that ended in partial or
	// total failure, by source tag and failure class.
	SourceFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wildcatter_source_failures_total",
			Help: "Total source runs ending in partial or full failure, by source and status",
		},
		[]string{"source", "status"},
	)

	// DedupMergesTotal counts merge operations performed by the
	// deduplicator, by entity kind and match strategy.
	DedupMergesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wildcatter_dedup_merges_total",
			Help: "Total dedup merges performed, by entity kind and match strategy",
		},
		[]string{"kind", "strategy"},
	)

	// HTTPRetriesTotal counts retry attempts made by the source HTTP
	// doer, by calling component.
	HTTPRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wildcatter_http_retries_total",
			Help: "Total HTTP retry attempts issued by source fetchers, by component",
		},
		[]string{"component"},
	)

	// SchedulerLastRunTimestamp is the Unix timestamp of the last
	// completed run of a scheduled source, by source tag.
	SchedulerLastRunTimestamp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wildcatter_scheduler_last_run_timestamp",
			Help: "Unix timestamp of the last completed run, by source",
		},
		[]string{"source"},
	)

	// LoadDuration tracks how long a full source load (upsert +
	// provenance write) takes, by source tag.
	LoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wildcatter_load_duration_seconds",
			Help:    "Duration of a full source load, by source",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// DedupDuration tracks how long a dedup pass takes.
	DedupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wildcatter_dedup_duration_seconds",
			Help:    "Duration of a dedup pass",
			Buckets: prometheus.DefBuckets,
		},
	)

	// LinkDuration tracks how long an operator-link pass takes.
	LinkDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wildcatter_link_duration_seconds",
			Help:    "Duration of an operator-link pass",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(RecordsIngestedTotal)
	prometheus.MustRegister(SourceFailuresTotal)
	prometheus.MustRegister(DedupMergesTotal)
	prometheus.MustRegister(HTTPRetriesTotal)
	prometheus.MustRegister(SchedulerLastRunTimestamp)
	prometheus.MustRegister(LoadDuration)
	prometheus.MustRegister(DedupDuration)
	prometheus.MustRegister(LinkDuration)
}

// Handler returns the Prometheus HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
