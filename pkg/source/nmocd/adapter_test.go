package nmocd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestMapFeatureDropsZeroZeroRow(t *testing.T) {
	batch := &types.Batch{Assets: make(map[string]*types.Asset)}
	mapFeature(map[string]any{
		"latitude": 32.1, "longitude": -103.9,
		"report_month": "202401", "oil_volume_bbl": 0.0, "gas_volume_mcf": 0.0,
	}, batch)

	assert.Empty(t, batch.ProductionStage)
}

func TestMapFeatureStagesNonZeroRow(t *testing.T) {
	batch := &types.Batch{Assets: make(map[string]*types.Asset)}
	mapFeature(map[string]any{
		"latitude": 32.1, "longitude": -103.9,
		"report_month": "202401", "oil_volume_bbl": 450.0, "gas_volume_mcf": 0.0,
	}, batch)

	assert.Len(t, batch.ProductionStage, 1)
	assert.Equal(t, spatialDelta, batch.ProductionStage[0].Delta)
}
