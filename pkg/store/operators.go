package store

import (
	"context"
	"fmt"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

// operatorBatchSize caps each multi-row VALUES(...) insert.
const operatorBatchSize = 1000

// UpsertOperators writes operators in chunks of operatorBatchSize,
// accumulating aliases on conflict rather than replacing them: alias
// arrays only ever grow. It returns the number of rows affected and
// any per-batch errors; callers decide whether those downgrade the
// run to "partial".
func UpsertOperators(ctx context.Context, q Querier, operators []*types.Operator) (int, []error) {
	var upserted int
	var errs []error

	for start := 0; start < len(operators); start += operatorBatchSize {
		end := start + operatorBatchSize
		if end > len(operators) {
			end = len(operators)
		}
		chunk := operators[start:end]

		sql, args := buildOperatorUpsert(chunk)
		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			errs = append(errs, fmt.Errorf("operator batch [%d:%d]: %w", start, end, err))
			continue
		}
		upserted += int(tag.RowsAffected())
	}

	return upserted, errs
}

func buildOperatorUpsert(operators []*types.Operator) (string, []any) {
	const cols = 8
	args := make([]any, 0, len(operators)*cols)
	values := make([]string, 0, len(operators))

	for i, op := range operators {
		base := i * cols
		values = append(values, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args,
			op.ID, op.LegalName, op.Aliases, op.HQState, op.HQCity,
			op.ComplianceFlags, op.RiskScore, op.ActiveAssetCount,
		)
	}

	sql := fmt.Sprintf(`
INSERT INTO operators (id, legal_name, aliases, hq_state, hq_city, compliance_flags, risk_score, active_asset_count, created_at, updated_at)
VALUES %s
ON CONFLICT (id) DO UPDATE SET
	legal_name = COALESCE(EXCLUDED.legal_name, operators.legal_name),
	aliases = (SELECT array_agg(DISTINCT a) FROM unnest(operators.aliases || EXCLUDED.aliases) AS a),
	hq_state = COALESCE(EXCLUDED.hq_state, operators.hq_state),
	hq_city = COALESCE(EXCLUDED.hq_city, operators.hq_city),
	compliance_flags = COALESCE(EXCLUDED.compliance_flags, operators.compliance_flags),
	risk_score = COALESCE(EXCLUDED.risk_score, operators.risk_score),
	updated_at = now()
`, valuesWithTimestamps(values))

	return sql, args
}

// valuesWithTimestamps appends now() literals to each VALUES tuple for
// created_at/updated_at, which are never bound parameters.
func valuesWithTimestamps(tuples []string) string {
	out := ""
	for i, v := range tuples {
		if i > 0 {
			out += ","
		}
		// strip the closing paren, append now(), now(), reclose
		out += v[:len(v)-1] + ",now(),now())"
	}
	return out
}

// ListOperators returns every operator, used to build the Deduplicator's
// union-find groups and the Linker's name index.
func ListOperators(ctx context.Context, q Querier) ([]*types.Operator, error) {
	rows, err := q.Query(ctx, `
SELECT id, legal_name, aliases, hq_state, hq_city, active_asset_count, compliance_flags, risk_score, created_at, updated_at
FROM operators`)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	defer rows.Close()

	var out []*types.Operator
	for rows.Next() {
		op := &types.Operator{}
		if err := rows.Scan(&op.ID, &op.LegalName, &op.Aliases, &op.HQState, &op.HQCity,
			&op.ActiveAssetCount, &op.ComplianceFlags, &op.RiskScore, &op.CreatedAt, &op.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		out = append(out, op)
	}
	return out, rows.Err()
}

// OperatorExists reports whether id still resolves to a row — the
// Asset invariant the Linker must repair after a dedup run deletes the
// operator an asset pointed at.
func OperatorExists(ctx context.Context, q Querier, id string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM operators WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check operator existence: %w", err)
	}
	return exists, nil
}

// MergeOperatorAliases absorbs extraAliases (the caller passes the
// duplicate's legal name and aliases) into canonicalID's alias set. It
// does not delete the duplicate row; DeleteOperator does. Call this once
// per duplicate inside the Deduplicator's transaction, after
// RemapAssetsOperator.
func MergeOperatorAliases(ctx context.Context, q Querier, canonicalID string, extraAliases []string) error {
	_, err := q.Exec(ctx, `
UPDATE operators
SET aliases = (SELECT array_agg(DISTINCT a) FROM unnest(aliases || $2::text[]) AS a),
    updated_at = now()
WHERE id = $1`, canonicalID, extraAliases)
	if err != nil {
		return fmt.Errorf("failed to merge aliases into %s: %w", canonicalID, err)
	}
	return nil
}

// DeleteOperator removes an operator row. Only safe to call after every
// asset referencing it has been remapped (RemapAssetsOperator) — the
// FK otherwise rejects the delete.
func DeleteOperator(ctx context.Context, q Querier, id string) error {
	_, err := q.Exec(ctx, `DELETE FROM operators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete operator %s: %w", id, err)
	}
	return nil
}

// RemapAssetsOperator repoints every asset whose operator_id is oldID
// to newID, returning the number of rows touched.
func RemapAssetsOperator(ctx context.Context, q Querier, oldID, newID string) (int64, error) {
	tag, err := q.Exec(ctx, `UPDATE assets SET operator_id = $2, updated_at = now() WHERE operator_id = $1`, oldID, newID)
	if err != nil {
		return 0, fmt.Errorf("failed to remap assets from %s to %s: %w", oldID, newID, err)
	}
	return tag.RowsAffected(), nil
}

// SetAssetOperator binds a single asset to an operator — the Linker's
// primitive operation.
func SetAssetOperator(ctx context.Context, q Querier, assetID, operatorID string) error {
	_, err := q.Exec(ctx, `UPDATE assets SET operator_id = $2, updated_at = now() WHERE id = $1`, assetID, operatorID)
	if err != nil {
		return fmt.Errorf("failed to set operator for asset %s: %w", assetID, err)
	}
	return nil
}
