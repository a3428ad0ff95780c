package ndndic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestMapRecordFallsBackToLatitudeBandBasin(t *testing.T) {
	batch := &types.Batch{Assets: make(map[string]*types.Asset)}
	rec := map[string]any{
		"api_number":  "33-053-12345",
		"latitude":    48.9,
		"longitude":   -103.2,
		"well_status": "PRODUCING",
		"county_code": "999", // deliberately unknown so the basin table misses
	}

	mapRecord(rec, batch, map[string]bool{})

	for _, a := range batch.Assets {
		assert.NotNil(t, a.Basin)
		assert.Equal(t, "Williston", *a.Basin)
	}
}

func TestMapRecordInsertsNullVolumesRatherThanDropping(t *testing.T) {
	batch := &types.Batch{Assets: make(map[string]*types.Asset)}
	rec := map[string]any{
		"api_number":     "33-053-12345",
		"well_status":    "PRODUCING",
		"report_month":   "202401",
		"oil_volume_bbl": "0",
		"gas_volume_mcf": "0",
	}

	mapRecord(rec, batch, map[string]bool{})

	assert.Len(t, batch.Productions, 1)
	assert.Nil(t, batch.Productions[0].OilVolumeBBL)
}
