package okocc

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/normalize"
	"github.com/blackthreadai/wildcatter/pkg/source"
	"github.com/blackthreadai/wildcatter/pkg/source/arcgis"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

const sourceTag = "ok_occ"

const layerURL = "https://services.arcgis.com/okocc/WellLayer/FeatureServer/0/query"

var statusMap = map[string]string{
	"PR": "active",
	"DR": "active",
	"PE": "active",
	"SI": "shut-in",
	"TA": "shut-in",
	"PL": "inactive",
}

// Adapter implements source.Adapter for ok_occ.
type Adapter struct{}

// New returns the ok_occ adapter.
func New() *Adapter { return &Adapter{} }

// Tag returns "ok_occ".
func (a *Adapter) Tag() string { return sourceTag }

// Run queries the FeatureServer layer in full, mapping each page's
// features as it arrives rather than accumulating the whole layer.
func (a *Adapter) Run(ctx context.Context, cfg source.Config) (*types.Batch, error) {
	logger := log.WithComponent("source." + sourceTag)

	batch := &types.Batch{
		SourceTag: sourceTag,
		SourceURL: layerURL,
		Assets:    make(map[string]*types.Asset),
	}

	client := arcgis.NewClient("source."+sourceTag, layerURL, "", "", "OBJECTID", 1000)
	operatorSeen := make(map[string]bool)

	err := client.FetchAll(ctx, func(features []arcgis.Feature) error {
		for _, f := range features {
			mapFeature(f.Attributes, batch, operatorSeen)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("arcgis fetch failed: %w", err)
	}

	logger.Info().Int("assets", len(batch.Assets)).Int("operators", len(batch.Operators)).Msg("batch mapped")
	return batch, nil
}

func mapFeature(attrs map[string]any, batch *types.Batch, operatorSeen map[string]bool) {
	apiNumber := arcgis.StringField(attrs, "api_number")
	if apiNumber == "" {
		batch.ParseErrors++
		return
	}

	id := normalize.AssetIDFromAPINumber(sourceTag, apiNumber, 10)
	lat, _ := arcgis.Float64Field(attrs, "latitude")
	lon, _ := arcgis.Float64Field(attrs, "longitude")
	county := normalize.CountyName(sourceTag, arcgis.StringField(attrs, "county_code"))

	status := "inactive"
	if s, ok := statusMap[strings.ToUpper(arcgis.StringField(attrs, "well_status"))]; ok {
		status = s
	}
	commodity := "crude oil"
	assetType := types.AssetTypeOil
	if strings.Contains(strings.ToUpper(arcgis.StringField(attrs, "well_type")), "GAS") {
		commodity = "natural gas"
		assetType = types.AssetTypeGas
	}

	asset := &types.Asset{
		ID:        id,
		Type:      assetType,
		Name:      arcgis.StringField(attrs, "well_name"),
		State:     "OK",
		County:    county,
		Latitude:  lat,
		Longitude: lon,
		Status:    types.AssetStatus(status),
		Commodity: commodity,
	}
	if asset.Name == "" {
		asset.Name = "API " + apiNumber
	}
	if basin := normalize.CountyBasin(county); basin != nil {
		asset.Basin = basin
	}
	batch.Assets[id] = asset

	operatorName := arcgis.StringField(attrs, "operator_name")
	if operatorName == "" {
		return
	}
	opID := normalize.OperatorIDFromName(sourceTag, operatorName)
	asset.OperatorID = &opID

	key := normalize.NormalizeForMatching(operatorName)
	if !operatorSeen[key] {
		operatorSeen[key] = true
		batch.Operators = append(batch.Operators, &types.Operator{
			ID:        opID,
			LegalName: normalize.CanonicalName(operatorName),
			Aliases:   []string{operatorName},
		})
	}
}
