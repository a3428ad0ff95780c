package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/blackthreadai/wildcatter/pkg/dedup"
	"github.com/blackthreadai/wildcatter/pkg/events"
	"github.com/blackthreadai/wildcatter/pkg/linker"
	"github.com/blackthreadai/wildcatter/pkg/loader"
	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/metrics"
	"github.com/blackthreadai/wildcatter/pkg/source"
	"github.com/blackthreadai/wildcatter/pkg/store"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

// RunSource runs one adapter's Download/Parse/Map and hands the
// resulting batch to the Loader. This is the function the re-invoked
// single-source subprocess calls; RunSequence calls it indirectly through
// that subprocess, never directly, so a panic or OOM in one source's
// adapter can never corrupt another source's run. broker may be nil.
func RunSource(ctx context.Context, reg *source.Registry, tag string, cfg source.Config, st *store.Store, broker *events.Broker) (*types.LoadResult, error) {
	logger := log.WithSource(tag)
	publish(broker, events.EventSourceStarted, tag, fmt.Sprintf("starting source %s", tag))

	adapter, ok := reg.Get(tag)
	if !ok {
		return nil, fmt.Errorf("no adapter registered for source %q", tag)
	}

	timer := metrics.NewTimer()
	batch, err := adapter.Run(ctx, cfg)
	if err != nil {
		metrics.SourceFailuresTotal.WithLabelValues(tag, "adapter_error").Inc()
		logger.Error().Err(err).Msg("source adapter failed")
		publish(broker, events.EventSourceFailed, tag, err.Error())
		return nil, fmt.Errorf("source %q failed: %w", tag, err)
	}
	timer.ObserveDurationVec(metrics.LoadDuration, tag)

	metrics.RecordsIngestedTotal.WithLabelValues(tag, "asset").Add(float64(len(batch.Assets)))
	metrics.RecordsIngestedTotal.WithLabelValues(tag, "operator").Add(float64(len(batch.Operators)))
	metrics.RecordsIngestedTotal.WithLabelValues(tag, "production").Add(float64(len(batch.Productions)))

	result, err := loader.Load(ctx, st, batch)
	if err != nil {
		metrics.SourceFailuresTotal.WithLabelValues(tag, "load_error").Inc()
		publish(broker, events.EventSourceFailed, tag, err.Error())
		return result, err
	}

	publish(broker, events.EventSourceCompleted, tag, fmt.Sprintf("loaded %d assets, %d operators", result.AssetsUpserted, result.OperatorsUpserted))
	return result, nil
}

// RunDedupAndLink runs the Deduplicator then the Linker, in that order,
// once every source has finished, never interleaved with a source
// load. broker may be nil.
func RunDedupAndLink(ctx context.Context, st *store.Store, dedupCfg dedup.Config, broker *events.Broker) (*types.DedupResult, *types.LinkResult, error) {
	dedupResult, err := dedup.Run(ctx, st, dedupCfg, broker)
	if err != nil {
		return dedupResult, nil, fmt.Errorf("dedup pass failed: %w", err)
	}

	linkResult, err := linker.Run(ctx, st, broker)
	if err != nil {
		return dedupResult, linkResult, fmt.Errorf("link pass failed: %w", err)
	}

	return dedupResult, linkResult, nil
}

func publish(broker *events.Broker, eventType events.EventType, sourceTag, message string) {
	if broker == nil {
		return
	}
	broker.Publish(&events.Event{
		ID:       uuid.NewString(),
		Type:     eventType,
		Message:  message,
		Metadata: map[string]string{"source": sourceTag},
	})
}
