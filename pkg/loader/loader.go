package loader

import (
	"context"
	"sort"
	"time"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/store"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

// Load upserts a mapped Batch into st: operators, then assets, then
// production, all inside one transaction. Individual batch errors
// (a handful of bad rows in an otherwise-good chunk) are collected into
// LoadResult.Errors and never abort the transaction — only a
// context-cancellation or connection-level failure does that, and in
// that case everything in the transaction rolls back. A provenance row
// is always written, in a fresh transaction, regardless of outcome.
func Load(ctx context.Context, st *store.Store, batch *types.Batch) (*types.LoadResult, error) {
	logger := log.WithComponent("loader")
	start := time.Now()
	result := &types.LoadResult{}

	txErr := st.WithTx(ctx, func(ctx context.Context, q store.Querier) error {
		n, errs := store.UpsertOperators(ctx, q, batch.Operators)
		result.OperatorsUpserted = n
		result.Errors = append(result.Errors, errs...)

		assets := sortedAssets(batch.Assets)
		n, errs = store.UpsertAssets(ctx, q, assets)
		result.AssetsUpserted = n
		result.Errors = append(result.Errors, errs...)

		n, errs = store.UpsertProduction(ctx, q, batch.Productions)
		result.ProductionInsert += n
		result.Errors = append(result.Errors, errs...)

		if len(batch.ProductionStage) > 0 {
			// All staged rows in a single batch come from the same
			// adapter and share one search-window constant.
			delta := batch.ProductionStage[0].Delta
			n, err := store.StageSpatialProduction(ctx, q, batch.ProductionStage, delta)
			if err != nil {
				result.Errors = append(result.Errors, err)
			} else {
				result.ProductionInsert += n
			}
		}

		return ctx.Err()
	})

	fatal := txErr != nil
	if fatal {
		result.Errors = append(result.Errors, txErr)
	}
	result.Duration = time.Since(start)

	status := result.Status(fatal)
	prov := &types.DataProvenance{
		SourceName:  batch.SourceTag,
		SourceURL:   batch.SourceURL,
		IngestedAt:  time.Now(),
		RecordCount: result.OperatorsUpserted + result.AssetsUpserted + result.ProductionInsert,
		Status:      status,
		Notes:       notes(result),
	}
	provID, provErr := store.RecordProvenance(ctx, st.Pool(), prov)
	if provErr != nil {
		logger.Error().Err(provErr).Str("source_tag", batch.SourceTag).Msg("failed to record provenance")
	}
	result.ProvenanceID = provID

	logger.Info().
		Str("source_tag", batch.SourceTag).
		Int("operators", result.OperatorsUpserted).
		Int("assets", result.AssetsUpserted).
		Int("production", result.ProductionInsert).
		Int("errors", len(result.Errors)).
		Str("status", string(status)).
		Dur("duration", result.Duration).
		Msg("load complete")

	return result, txErr
}

func sortedAssets(m map[string]*types.Asset) []*types.Asset {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*types.Asset, 0, len(m))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func notes(r *types.LoadResult) string {
	if len(r.Errors) == 0 {
		return ""
	}
	if len(r.Errors) == 1 {
		return r.Errors[0].Error()
	}
	return r.Errors[0].Error() + " (and more)"
}
