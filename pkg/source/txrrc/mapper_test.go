package txrrc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackthreadai/wildcatter/pkg/types"
)

func TestMapWellboreRecordAssignsDeterministicID(t *testing.T) {
	batch := &types.Batch{Assets: make(map[string]*types.Asset)}
	rec := map[string]string{
		"api_number":     "4212345678",
		"status_code":    "AC",
		"well_type_code": "GAS",
		"county_fips":    "135",
		"depth_ft":       "8500",
		"spud_date":      "20200115",
		"latitude":       "31.8457",
		"longitude":      "-102.3676",
	}

	mapWellboreRecord(rec, batch)

	id := AssetIDFor("4212345678")
	asset, ok := batch.Assets[id]
	assert.True(t, ok)
	assert.Equal(t, types.AssetStatusActive, asset.Status)
	assert.Equal(t, types.AssetTypeGas, asset.Type)
	assert.Equal(t, "natural gas", asset.Commodity)
	assert.Equal(t, 8500, *asset.DepthFt)
}

func TestMapPDQRecordAccumulatesOperatorAlias(t *testing.T) {
	batch := &types.Batch{Assets: make(map[string]*types.Asset)}
	seen := make(map[string]bool)
	rec := map[string]string{
		"api_number":      "4212345678",
		"operator_name":   "PIONEER NATURAL RESOURCES INC",
		"oil_volume_bbl":  "1200.5",
		"gas_volume_mcf":  "300",
		"report_month":    "202401",
	}

	mapPDQRecord(rec, batch, seen)

	assert.Len(t, batch.Operators, 1)
	assert.Equal(t, "Pioneer Natural Resources Inc", batch.Operators[0].LegalName)
	assert.Equal(t, []string{"PIONEER NATURAL RESOURCES INC"}, batch.Operators[0].Aliases)
	assert.Len(t, batch.Productions, 1)
	assert.Equal(t, 1200.5, *batch.Productions[0].OilVolumeBBL)
}

func TestMapStatusUnknownCodeDefaultsInactive(t *testing.T) {
	assert.Equal(t, "inactive", mapStatus("ZZ"))
}
