package okocc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestMapFeatureAssignsGasCommodity(t *testing.T) {
	batch := &types.Batch{Assets: make(map[string]*types.Asset)}
	attrs := map[string]any{
		"api_number":    "35-123-45678",
		"well_type":     "GAS WELL",
		"well_status":   "PR",
		"operator_name": "Continental Resources",
		"latitude":      36.5,
		"longitude":     -97.8,
	}

	mapFeature(attrs, batch, map[string]bool{})

	for _, a := range batch.Assets {
		assert.Equal(t, types.AssetTypeGas, a.Type)
		assert.Equal(t, "natural gas", a.Commodity)
		assert.Equal(t, types.AssetStatusActive, a.Status)
		assert.NotNil(t, a.OperatorID)
	}
	assert.Len(t, batch.Operators, 1)
}
