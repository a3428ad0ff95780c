package store

import (
	"context"
	"fmt"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

const productionBatchSize = 1000

// UpsertProduction writes monthly production records keyed on
// (asset_id, month), chunked per productionBatchSize. Conflicts
// overwrite volumes outright — a resubmitted month from the source of
// record always wins, there is no COALESCE here.
func UpsertProduction(ctx context.Context, q Querier, records []*types.ProductionRecord) (int, []error) {
	var upserted int
	var errs []error

	for start := 0; start < len(records); start += productionBatchSize {
		end := start + productionBatchSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		sql, args := buildProductionUpsert(chunk)
		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			errs = append(errs, fmt.Errorf("production batch [%d:%d]: %w", start, end, err))
			continue
		}
		upserted += int(tag.RowsAffected())
	}

	return upserted, errs
}

func buildProductionUpsert(records []*types.ProductionRecord) (string, []any) {
	const cols = 6
	args := make([]any, 0, len(records)*cols)
	values := make([]string, 0, len(records))

	for i, r := range records {
		base := i * cols
		ph := make([]string, cols)
		for c := 0; c < cols; c++ {
			ph[c] = fmt.Sprintf("$%d", base+c+1)
		}
		values = append(values, "("+join(ph, ",")+",now())")
		args = append(args, r.AssetID, r.Month, r.OilVolumeBBL, r.GasVolumeMCF, r.WaterCutPct, r.DowntimeDays)
	}

	sql := fmt.Sprintf(`
INSERT INTO production_records (asset_id, month, oil_volume_bbl, gas_volume_mcf, water_cut_pct, downtime_days, created_at)
VALUES %s
ON CONFLICT (asset_id, month) DO UPDATE SET
	oil_volume_bbl = EXCLUDED.oil_volume_bbl,
	gas_volume_mcf = EXCLUDED.gas_volume_mcf,
	water_cut_pct = EXCLUDED.water_cut_pct,
	downtime_days = EXCLUDED.downtime_days
`, join(values, ","))

	return sql, args
}

// StageSpatialProduction loads production rows that arrived with only
// a lat/lon (no asset ID — the nm_ocd production-only feed) into a
// session-scoped temp table, then resolves each to its
// nearest asset within maxDeltaDegrees via a LATERAL nearest-point
// join, and upserts the resolved rows into production_records.
//
// The temp table is ON COMMIT DROP: it never outlives the caller's
// transaction, so concurrent source loads can't collide on it.
func StageSpatialProduction(ctx context.Context, q Querier, staged []*types.StagedProduction, maxDeltaDegrees float64) (int, error) {
	if len(staged) == 0 {
		return 0, nil
	}

	if _, err := q.Exec(ctx, `
CREATE TEMP TABLE IF NOT EXISTS staged_production (
	latitude double precision,
	longitude double precision,
	month date,
	oil_volume_bbl double precision,
	gas_volume_mcf double precision
) ON COMMIT DROP`); err != nil {
		return 0, fmt.Errorf("failed to create staging table: %w", err)
	}

	const cols = 5
	args := make([]any, 0, len(staged)*cols)
	values := make([]string, 0, len(staged))
	for i, s := range staged {
		base := i * cols
		values = append(values, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, s.Latitude, s.Longitude, s.Month, s.OilVolumeBBL, s.GasVolumeMCF)
	}
	insertSQL := fmt.Sprintf(`INSERT INTO staged_production (latitude, longitude, month, oil_volume_bbl, gas_volume_mcf) VALUES %s`, join(values, ","))
	if _, err := q.Exec(ctx, insertSQL, args...); err != nil {
		return 0, fmt.Errorf("failed to load staging table: %w", err)
	}

	tag, err := q.Exec(ctx, `
INSERT INTO production_records (asset_id, month, oil_volume_bbl, gas_volume_mcf, created_at)
SELECT nearest.asset_id, sp.month, sp.oil_volume_bbl, sp.gas_volume_mcf, now()
FROM staged_production sp
JOIN LATERAL (
	SELECT a.id AS asset_id
	FROM assets a
	WHERE abs(a.latitude - sp.latitude) <= $1 AND abs(a.longitude - sp.longitude) <= $1
	ORDER BY (a.latitude - sp.latitude)^2 + (a.longitude - sp.longitude)^2 ASC
	LIMIT 1
) nearest ON true
ON CONFLICT (asset_id, month) DO UPDATE SET
	oil_volume_bbl = EXCLUDED.oil_volume_bbl,
	gas_volume_mcf = EXCLUDED.gas_volume_mcf
`, maxDeltaDegrees)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve staged production via spatial join: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ProductionForAsset returns every month on record for an asset,
// oldest first.
func ProductionForAsset(ctx context.Context, q Querier, assetID string) ([]*types.ProductionRecord, error) {
	rows, err := q.Query(ctx, `
SELECT id, asset_id, month, oil_volume_bbl, gas_volume_mcf, water_cut_pct, downtime_days, created_at
FROM production_records WHERE asset_id = $1 ORDER BY month ASC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list production for asset %s: %w", assetID, err)
	}
	defer rows.Close()

	var out []*types.ProductionRecord
	for rows.Next() {
		r := &types.ProductionRecord{}
		if err := rows.Scan(&r.ID, &r.AssetID, &r.Month, &r.OilVolumeBBL, &r.GasVolumeMCF, &r.WaterCutPct, &r.DowntimeDays, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan production record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListFinancialEstimatesForAsset returns every estimate on record for
// an asset, newest first. The core never writes these rows — they come
// from a downstream calculator; MergeAssetInto remaps them onto the
// canonical asset instead of orphaning them.
func ListFinancialEstimatesForAsset(ctx context.Context, q Querier, assetID string) ([]*types.FinancialEstimate, error) {
	rows, err := q.Query(ctx, `SELECT id, asset_id, as_of FROM financial_estimates WHERE asset_id = $1 ORDER BY as_of DESC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial estimates for asset %s: %w", assetID, err)
	}
	defer rows.Close()

	var out []*types.FinancialEstimate
	for rows.Next() {
		e := &types.FinancialEstimate{}
		if err := rows.Scan(&e.ID, &e.AssetID, &e.AsOf); err != nil {
			return nil, fmt.Errorf("failed to scan financial estimate: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SetAssetDecline writes the Asset-level decline-rate and estimated
// remaining-life fields — distinct from financial_estimates, which is
// downstream-owned.
func SetAssetDecline(ctx context.Context, q Querier, assetID string, declineRate *float64, remainingLifeMonths *int) error {
	_, err := q.Exec(ctx, `
UPDATE assets SET decline_rate = $2, estimated_remaining_life_months = $3, updated_at = now()
WHERE id = $1`, assetID, declineRate, remainingLifeMonths)
	if err != nil {
		return fmt.Errorf("failed to set decline estimate for asset %s: %w", assetID, err)
	}
	return nil
}
