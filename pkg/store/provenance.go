package store

import (
	"context"
	"fmt"
	"time"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

// RecordProvenance writes exactly one audit row per ingestion run,
// regardless of outcome: even a fatal, fully rolled-back load still
// gets a provenance row — it is written outside the load's own
// transaction so a rollback can't erase the record of the attempt.
func RecordProvenance(ctx context.Context, q Querier, p *types.DataProvenance) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
INSERT INTO data_provenance (source_name, source_url, ingested_at, record_count, status, notes)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`, p.SourceName, p.SourceURL, p.IngestedAt, p.RecordCount, p.Status, p.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to record provenance for %s: %w", p.SourceName, err)
	}
	return id, nil
}

// LastProvenanceFor returns the most recent audit row for a source, or
// nil if it has never been ingested.
func LastProvenanceFor(ctx context.Context, q Querier, sourceName string) (*types.DataProvenance, error) {
	p := &types.DataProvenance{}
	err := q.QueryRow(ctx, `
SELECT id, source_name, source_url, ingested_at, record_count, status, notes
FROM data_provenance WHERE source_name = $1 ORDER BY ingested_at DESC LIMIT 1`, sourceName).Scan(
		&p.ID, &p.SourceName, &p.SourceURL, &p.IngestedAt, &p.RecordCount, &p.Status, &p.Notes)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last provenance for %s: %w", sourceName, err)
	}
	return p, nil
}

// ProvenanceSince returns every audit row newer than since, across all
// sources, oldest first.
func ProvenanceSince(ctx context.Context, q Querier, since time.Time) ([]*types.DataProvenance, error) {
	rows, err := q.Query(ctx, `
SELECT id, source_name, source_url, ingested_at, record_count, status, notes
FROM data_provenance WHERE ingested_at >= $1 ORDER BY ingested_at ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list provenance since %s: %w", since, err)
	}
	defer rows.Close()

	var out []*types.DataProvenance
	for rows.Next() {
		p := &types.DataProvenance{}
		if err := rows.Scan(&p.ID, &p.SourceName, &p.SourceURL, &p.IngestedAt, &p.RecordCount, &p.Status, &p.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan provenance row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
