package nmocd

import (
	"context"
	"fmt"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/normalize"
	"github.com/blackthreadai/wildcatter/pkg/source"
	"github.com/blackthreadai/wildcatter/pkg/source/arcgis"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

const sourceTag = "nm_ocd"

const layerURL = "https://gis.emnrd.nm.gov/ocd/ProductionLayer/FeatureServer/0/query"

// spatialDelta is the ±lat/lon search window used at load time to
// resolve a staged row to its nearest asset — this source's GPS
// precision puts it at the coarser end of the usual 0.002°-0.005° range.
const spatialDelta = 0.004

// Adapter implements source.Adapter for nm_ocd.
type Adapter struct{}

// New returns the nm_ocd adapter.
func New() *Adapter { return &Adapter{} }

// Tag returns "nm_ocd".
func (a *Adapter) Tag() string { return sourceTag }

// Run queries the production-only layer and stages every row for the
// loader's spatial join — this source never carries an asset key.
func (a *Adapter) Run(ctx context.Context, cfg source.Config) (*types.Batch, error) {
	logger := log.WithComponent("source." + sourceTag)

	batch := &types.Batch{SourceTag: sourceTag, SourceURL: layerURL, Assets: make(map[string]*types.Asset)}
	client := arcgis.NewClient("source."+sourceTag, layerURL, "", "", "OBJECTID", 2000)

	err := client.FetchAll(ctx, func(features []arcgis.Feature) error {
		for _, f := range features {
			mapFeature(f.Attributes, batch)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("arcgis fetch failed: %w", err)
	}

	logger.Info().Int("staged", len(batch.ProductionStage)).Int("parse_errors", batch.ParseErrors).Msg("batch mapped")
	return batch, nil
}

func mapFeature(attrs map[string]any, batch *types.Batch) {
	lat, latOK := arcgis.Float64Field(attrs, "latitude")
	lon, lonOK := arcgis.Float64Field(attrs, "longitude")
	if !latOK || !lonOK {
		batch.ParseErrors++
		return
	}

	month := normalize.ParseDate(arcgis.StringField(attrs, "report_month"))
	if month == nil {
		batch.ParseErrors++
		return
	}

	oil := parseFeatureFloat(attrs, "oil_volume_bbl")
	gas := parseFeatureFloat(attrs, "gas_volume_mcf")

	// This spatial-join stager drops a zero/zero row outright, unlike
	// ndndic's direct-key API which keeps it with NULL volumes instead;
	// the choice is source-specific and documented per adapter.
	if isZero(oil) && isZero(gas) {
		return
	}

	batch.ProductionStage = append(batch.ProductionStage, &types.StagedProduction{
		Latitude:     lat,
		Longitude:    lon,
		Month:        normalize.MonthStart(*month),
		OilVolumeBBL: oil,
		GasVolumeMCF: gas,
		Delta:        spatialDelta,
	})
}

func parseFeatureFloat(attrs map[string]any, key string) *float64 {
	if f, ok := arcgis.Float64Field(attrs, key); ok {
		return &f
	}
	return nil
}

func isZero(f *float64) bool {
	return f == nil || *f == 0
}
