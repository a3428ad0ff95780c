package dedup

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/blackthreadai/wildcatter/pkg/events"
	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/metrics"
	"github.com/blackthreadai/wildcatter/pkg/store"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

// Config controls the Deduplicator's matching thresholds.
type Config struct {
	FuzzyThreshold     int
	ProximityThreshold float64
	DryRun             bool
}

// DefaultConfig matches spec defaults: fuzzy distance 3, proximity
// 0.01 degrees.
func DefaultConfig() Config {
	return Config{FuzzyThreshold: 3, ProximityThreshold: 0.01}
}

// Run performs one dedup pass: operator grouping and merge, then
// asset-proximity grouping and merge, then a recount of
// operators.active_asset_count, all inside a single transaction. DryRun
// rolls that transaction back once the pass completes, so the caller
// still sees a populated DedupResult to report what would have
// happened.
// broker may be nil; Run only publishes to it when non-nil, so
// callers that don't care about live progress reporting can pass
// nothing.
func Run(ctx context.Context, st *store.Store, cfg Config, broker *events.Broker) (*types.DedupResult, error) {
	logger := log.WithComponent("dedup")
	timer := metrics.NewTimer()

	result := &types.DedupResult{DryRun: cfg.DryRun}

	fn := func(ctx context.Context, q store.Querier) error {
		if err := dedupOperators(ctx, q, cfg, result); err != nil {
			return err
		}
		if err := dedupAssets(ctx, q, cfg, result); err != nil {
			return err
		}
		return store.CountActiveAssetsByOperator(ctx, q)
	}

	var err error
	if cfg.DryRun {
		err = st.WithDryRunTx(ctx, fn)
	} else {
		err = st.WithTx(ctx, fn)
	}

	timer.ObserveDuration(metrics.DedupDuration)
	for _, d := range result.Details {
		metrics.DedupMergesTotal.WithLabelValues(d.Kind, d.Strategy).Inc()
		publishMerge(broker, d)
	}

	logger.Info().
		Int("operator_groups", result.OperatorGroups).
		Int("operators_merged", result.OperatorsMerged).
		Int("asset_groups", result.AssetGroups).
		Int("assets_merged", result.AssetsMerged).
		Bool("dry_run", result.DryRun).
		Msg("dedup pass complete")

	return result, err
}

func publishMerge(broker *events.Broker, d types.DedupMergeEvent) {
	if broker == nil {
		return
	}

	eventType := events.EventOperatorMerged
	if d.Kind == "asset" {
		eventType = events.EventAssetMerged
	}

	broker.Publish(&events.Event{
		ID:   uuid.NewString(),
		Type: eventType,
		Message: fmt.Sprintf("merged %s %s into %s via %s", d.Kind, d.MergedID, d.CanonicalID, d.Strategy),
		Metadata: map[string]string{
			"canonical_id": d.CanonicalID,
			"merged_id":    d.MergedID,
			"strategy":     d.Strategy,
		},
	})
}
