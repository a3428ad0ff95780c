package linker

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

// Run rebinds every asset with a null or dangling operator_id to a
// canonical operator, inside one transaction. Assets already pointing
// at an operator that still exists are left untouched; assets that
// don't match any segment of their name remain unlinked. broker may be
// nil.
func Run(ctx context.Context, st *store.Store, broker *events.Broker) (*types.LinkResult, error) {
	logger := log.WithComponent("linker")
	timer := metrics.NewTimer()

	result := &types.LinkResult{}

	err := st.WithTx(ctx, func(ctx context.Context, q store.Querier) error {
		operators, err := store.ListOperators(ctx, q)
		if err != nil {
			return fmt.Errorf("failed to list operators for linking: %w", err)
		}
		idx := buildNameIndex(operators)

		candidates, err := candidateAssets(ctx, q)
		if err != nil {
			return err
		}

		for _, asset := range candidates {
			op, ok := idx.lookup(asset.Name)
			if !ok {
				continue
			}

			if err := store.SetAssetOperator(ctx, q, asset.ID, op.ID); err != nil {
				return err
			}

			crossState := op.HQState != nil && *op.HQState != asset.State
			result.AssetsLinked++
			if crossState {
				result.CrossState++
			}
			result.Events = append(result.Events, types.LinkEvent{
				AssetID:     asset.ID,
				OperatorID:  op.ID,
				MatchedName: op.LegalName,
				CrossState:  crossState,
			})

			if broker != nil {
				broker.Publish(&events.Event{
					ID:      uuid.NewString(),
					Type:    events.EventAssetLinked,
					Message: fmt.Sprintf("linked asset %s to operator %s", asset.ID, op.ID),
					Metadata: map[string]string{
						"asset_id":    asset.ID,
						"operator_id": op.ID,
					},
				})
			}

			logger.Info().Str("asset_id", asset.ID).Str("operator_id", op.ID).
				Bool("cross_state", crossState).Msg("linked asset to operator")
		}

		if result.AssetsLinked == 0 {
			return nil
		}
		return store.CountActiveAssetsByOperator(ctx, q)
	})

	timer.ObserveDuration(metrics.LinkDuration)
	logger.Info().Int("assets_linked", result.AssetsLinked).Int("cross_state", result.CrossState).
		Msg("link pass complete")

	return result, err
}

// candidateAssets returns every asset the Linker should attempt to
// bind: those with no operator at all, plus those whose operator_id
// survived mapping but no longer resolves to a row (left behind by a
// dedup merge that ran between this asset's load and this link pass).
func candidateAssets(ctx context.Context, q store.Querier) ([]*types.Asset, error) {
	unlinked, err := store.ListUnlinkedAssets(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlinked assets: %w", err)
	}

	dangling, err := store.ListAssetsWithDanglingOperator(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets with dangling operator: %w", err)
	}

	return append(unlinked, dangling...), nil
}
