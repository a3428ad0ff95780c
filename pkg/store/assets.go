package store

import (
	"context"
	"fmt"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

const assetBatchSize = 1000

// UpsertAssets writes assets in chunks of assetBatchSize. Identity
// fields (type, state, county) are hard-overwritten on conflict;
// fields a source may omit (name, operator, basin, coordinates, spud
// date, depth, commodity) use COALESCE so a later source run with
// nulls — or, for name/coordinates, with zero-valued placeholders —
// never blanks out a value an earlier run set. status is restated
// authoritatively by every source and is hard-overwritten.
// A (0,0) coordinate pair means "unknown": NULLIF folds it to NULL
// before the COALESCE so it never clobbers a previously known
// non-zero coordinate.
func UpsertAssets(ctx context.Context, q Querier, assets []*types.Asset) (int, []error) {
	var upserted int
	var errs []error

	for start := 0; start < len(assets); start += assetBatchSize {
		end := start + assetBatchSize
		if end > len(assets) {
			end = len(assets)
		}
		chunk := assets[start:end]

		sql, args := buildAssetUpsert(chunk)
		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			errs = append(errs, fmt.Errorf("asset batch [%d:%d]: %w", start, end, err))
			continue
		}
		upserted += int(tag.RowsAffected())
	}

	return upserted, errs
}

func buildAssetUpsert(assets []*types.Asset) (string, []any) {
	const cols = 13
	args := make([]any, 0, len(assets)*cols)
	values := make([]string, 0, len(assets))

	for i, a := range assets {
		base := i * cols
		ph := make([]string, cols)
		for c := 0; c < cols; c++ {
			ph[c] = fmt.Sprintf("$%d", base+c+1)
		}
		values = append(values, "("+join(ph, ",")+",now(),now())")
		args = append(args,
			a.ID, a.Type, a.Name, a.State, a.County, a.Latitude, a.Longitude,
			a.Basin, a.OperatorID, a.Status, a.SpudDate, a.DepthFt, a.Commodity,
		)
	}

	sql := fmt.Sprintf(`
INSERT INTO assets (id, type, name, state, county, latitude, longitude, basin, operator_id, status, spud_date, depth_ft, commodity, created_at, updated_at)
VALUES %s
ON CONFLICT (id) DO UPDATE SET
	type = EXCLUDED.type,
	name = COALESCE(NULLIF(EXCLUDED.name, ''), assets.name),
	state = EXCLUDED.state,
	county = EXCLUDED.county,
	latitude = COALESCE(NULLIF(EXCLUDED.latitude, 0), assets.latitude),
	longitude = COALESCE(NULLIF(EXCLUDED.longitude, 0), assets.longitude),
	basin = COALESCE(EXCLUDED.basin, assets.basin),
	operator_id = COALESCE(EXCLUDED.operator_id, assets.operator_id),
	status = EXCLUDED.status,
	spud_date = COALESCE(EXCLUDED.spud_date, assets.spud_date),
	depth_ft = COALESCE(EXCLUDED.depth_ft, assets.depth_ft),
	commodity = COALESCE(EXCLUDED.commodity, assets.commodity),
	updated_at = now()
`, join(values, ","))

	return sql, args
}

func join(ss []string, sep string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}

// GetAsset fetches a single asset by ID.
func GetAsset(ctx context.Context, q Querier, id string) (*types.Asset, error) {
	a := &types.Asset{}
	err := q.QueryRow(ctx, `
SELECT id, type, name, state, county, latitude, longitude, basin, operator_id, status, spud_date, depth_ft, commodity, created_at, updated_at
FROM assets WHERE id = $1`, id).Scan(
		&a.ID, &a.Type, &a.Name, &a.State, &a.County, &a.Latitude, &a.Longitude,
		&a.Basin, &a.OperatorID, &a.Status, &a.SpudDate, &a.DepthFt, &a.Commodity,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", id, err)
	}
	return a, nil
}

// ListUnlinkedAssets returns every asset with a null operator_id — the
// Linker's candidate set for name-index rebinding.
func ListUnlinkedAssets(ctx context.Context, q Querier) ([]*types.Asset, error) {
	rows, err := q.Query(ctx, `
SELECT id, type, name, state, county, latitude, longitude, basin, operator_id, status, spud_date, depth_ft, commodity, created_at, updated_at
FROM assets WHERE operator_id IS NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlinked assets: %w", err)
	}
	defer rows.Close()

	var out []*types.Asset
	for rows.Next() {
		a := &types.Asset{}
		if err := rows.Scan(&a.ID, &a.Type, &a.Name, &a.State, &a.County, &a.Latitude, &a.Longitude,
			&a.Basin, &a.OperatorID, &a.Status, &a.SpudDate, &a.DepthFt, &a.Commodity,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAssetsWithDanglingOperator returns assets whose operator_id is
// set but no longer resolves to a row — left behind when a Deduplicator
// merge deletes an operator between this asset's load and a later
// Linker run.
func ListAssetsWithDanglingOperator(ctx context.Context, q Querier) ([]*types.Asset, error) {
	rows, err := q.Query(ctx, `
SELECT a.id, a.type, a.name, a.state, a.county, a.latitude, a.longitude, a.basin, a.operator_id,
       a.status, a.spud_date, a.depth_ft, a.commodity, a.created_at, a.updated_at
FROM assets a
WHERE a.operator_id IS NOT NULL
  AND NOT EXISTS (SELECT 1 FROM operators o WHERE o.id = a.operator_id)`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets with dangling operator: %w", err)
	}
	defer rows.Close()

	var out []*types.Asset
	for rows.Next() {
		a := &types.Asset{}
		if err := rows.Scan(&a.ID, &a.Type, &a.Name, &a.State, &a.County, &a.Latitude, &a.Longitude,
			&a.Basin, &a.OperatorID, &a.Status, &a.SpudDate, &a.DepthFt, &a.Commodity,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAssetsNear returns every asset's ID and coordinates within a
// state, for the asset-proximity dedup pass. Restricting to one state
// at a time keeps the comparison set small — basins don't span state
// lines in this dataset.
func ListAssetsNear(ctx context.Context, q Querier, state string) ([]AssetPoint, error) {
	rows, err := q.Query(ctx, `SELECT id, latitude, longitude, operator_id FROM assets WHERE state = $1`, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets in %s: %w", state, err)
	}
	defer rows.Close()

	var out []AssetPoint
	for rows.Next() {
		var p AssetPoint
		if err := rows.Scan(&p.ID, &p.Latitude, &p.Longitude, &p.OperatorID); err != nil {
			return nil, fmt.Errorf("failed to scan asset point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AssetPoint is the minimal projection the proximity dedup pass needs.
type AssetPoint struct {
	ID         string
	Latitude   float64
	Longitude  float64
	OperatorID *string
}

// MergeAssetInto rewrites every foreign key pointing at duplicateID to
// point at canonicalID, then deletes the duplicate row. Used by the
// asset-proximity dedup pass once two assets are judged the same well.
func MergeAssetInto(ctx context.Context, q Querier, canonicalID, duplicateID string) error {
	if _, err := q.Exec(ctx, `UPDATE production_records SET asset_id = $2 WHERE asset_id = $1`, duplicateID, canonicalID); err != nil {
		return fmt.Errorf("failed to remap production records from %s to %s: %w", duplicateID, canonicalID, err)
	}
	if _, err := q.Exec(ctx, `UPDATE financial_estimates SET asset_id = $2 WHERE asset_id = $1`, duplicateID, canonicalID); err != nil {
		return fmt.Errorf("failed to remap financial estimates from %s to %s: %w", duplicateID, canonicalID, err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM assets WHERE id = $1`, duplicateID); err != nil {
		return fmt.Errorf("failed to delete duplicate asset %s: %w", duplicateID, err)
	}
	return nil
}

// CountActiveAssetsByOperator recomputes operators.active_asset_count,
// run once per dedup/link transaction so the denormalized counter never
// drifts from the assets table it mirrors.
func CountActiveAssetsByOperator(ctx context.Context, q Querier) error {
	_, err := q.Exec(ctx, `
UPDATE operators o
SET active_asset_count = sub.cnt
FROM (
	SELECT operator_id, count(*) AS cnt
	FROM assets
	WHERE operator_id IS NOT NULL AND status = 'active'
	GROUP BY operator_id
) sub
WHERE o.id = sub.operator_id`)
	if err != nil {
		return fmt.Errorf("failed to recompute active asset counts: %w", err)
	}
	return nil
}

// ListDistinctStates returns every state with at least one asset,
// scoping the asset-proximity dedup pass one state at a time.
func ListDistinctStates(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.Query(ctx, `SELECT DISTINCT state FROM assets ORDER BY state`)
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct asset states: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
