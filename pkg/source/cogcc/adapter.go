package cogcc

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/normalize"
	"github.com/blackthreadai/wildcatter/pkg/source"
	"github.com/blackthreadai/wildcatter/pkg/source/htmlform"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

const sourceTag = "co_cogcc"

const searchPageURL = "https://ecmc.state.co.us/cogcc/WellSearch.aspx"

var statusMap = map[string]string{
	"PR": "active",
	"DR": "active",
	"SI": "shut-in",
	"TA": "shut-in",
	"PA": "inactive",
}

// Adapter implements source.Adapter for co_cogcc.
type Adapter struct{}

// New returns the co_cogcc adapter.
func New() *Adapter { return &Adapter{} }

// Tag returns "co_cogcc".
func (a *Adapter) Tag() string { return sourceTag }

// Run scrapes the WebForms search page once per configured county (a
// single "all counties" query isn't offered by the portal) and maps
// each result row.
func (a *Adapter) Run(ctx context.Context, cfg source.Config) (*types.Batch, error) {
	logger := log.WithComponent("source." + sourceTag)

	scraper, err := htmlform.NewScraper("source." + sourceTag)
	if err != nil {
		return nil, fmt.Errorf("failed to build scraper: %w", err)
	}

	batch := &types.Batch{SourceTag: sourceTag, SourceURL: searchPageURL, Assets: make(map[string]*types.Asset)}
	operatorSeen := make(map[string]bool)

	for _, county := range coCounties {
		body, err := scraper.Fetch(ctx, searchPageURL, url.Values{"county": {county}})
		if err != nil {
			logger.Error().Err(err).Str("county", county).Msg("county query failed, continuing")
			continue
		}

		rows, err := parseResultsTable(body)
		if err != nil {
			logger.Error().Err(err).Str("county", county).Msg("results table parse failed")
			continue
		}

		for _, row := range rows {
			mapRow(row, batch, operatorSeen)
		}
	}

	logger.Info().Int("assets", len(batch.Assets)).Msg("batch mapped")
	return batch, nil
}

// coCounties lists the counties queried one at a time, per the
// portal's lack of a statewide "all" option.
var coCounties = []string{"Weld", "Garfield", "Las Animas", "Rio Blanco"}

func mapRow(row map[string]string, batch *types.Batch, operatorSeen map[string]bool) {
	apiNumber := row["api_number"]
	if apiNumber == "" {
		batch.ParseErrors++
		return
	}

	id := normalize.AssetIDFromAPINumber(sourceTag, apiNumber, 10)
	county := normalize.CountyName(sourceTag, row["county_fips"])

	status := "inactive"
	if s, ok := statusMap[strings.ToUpper(row["status_code"])]; ok {
		status = s
	}
	assetType := types.AssetTypeOil
	commodity := "crude oil"
	if strings.Contains(strings.ToUpper(row["well_type_code"]), "GAS") {
		assetType = types.AssetTypeGas
		commodity = "natural gas"
	}

	asset := &types.Asset{
		ID:        id,
		Type:      assetType,
		Name:      row["well_name"],
		State:     "CO",
		County:    county,
		Status:    types.AssetStatus(status),
		Commodity: commodity,
	}
	if asset.Name == "" {
		asset.Name = "API " + apiNumber
	}
	if basin := normalize.CountyBasin(county); basin != nil {
		asset.Basin = basin
	}

	// The scraper's search results table carries no coordinates, only
	// the county. A later ArcGIS or API ingestion of the same
	// identifier enriches lat/lon via the loader's COALESCE rule.
	batch.Assets[id] = asset

	operatorName := row["operator_name"]
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
