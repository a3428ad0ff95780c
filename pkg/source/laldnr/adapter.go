package laldnr

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/normalize"
	"github.com/blackthreadai/wildcatter/pkg/source"
	"github.com/blackthreadai/wildcatter/pkg/source/bulkcsv"
	"github.com/blackthreadai/wildcatter/pkg/source/mft"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

const sourceTag = "la_ldnr"

const (
	portalURL   = "https://sonlite.dnr.louisiana.gov/mft/portal/wells"
	ajaxURL     = "https://sonlite.dnr.louisiana.gov/mft/portal/select"
	downloadURL = "https://sonlite.dnr.louisiana.gov/mft/portal/download"
	fileName    = "sonris_wells_export.csv"
)

var statusMap = map[string]string{
	"ACTIVE":  "active",
	"DRILLING": "active",
	"SI":      "shut-in",
	"TA":      "shut-in",
	"PLUGGED": "inactive",
}

// Adapter implements source.Adapter for la_ldnr.
type Adapter struct{}

// New returns the la_ldnr adapter.
func New() *Adapter { return &Adapter{} }

// Tag returns "la_ldnr".
func (a *Adapter) Tag() string { return sourceTag }

// Run downloads the bulk export via the MFT three-step protocol and
// streams it as pipe-delimited CSV.
func (a *Adapter) Run(ctx context.Context, cfg source.Config) (*types.Batch, error) {
	logger := log.WithComponent("source." + sourceTag)

	client, err := mft.NewClient("source." + sourceTag)
	if err != nil {
		return nil, fmt.Errorf("failed to build MFT client: %w", err)
	}

	data, err := client.Download(ctx, portalURL, fileName, ajaxURL, downloadURL)
	if err != nil {
		return nil, fmt.Errorf("MFT download failed: %w", err)
	}

	r, err := bulkcsv.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV stream: %w", err)
	}

	batch := &types.Batch{SourceTag: sourceTag, SourceURL: portalURL, Assets: make(map[string]*types.Asset)}
	operatorSeen := make(map[string]bool)

	for {
		rec, ok, err := r.Next()
		if err != nil {
			batch.ParseErrors++
			continue
		}
		if !ok {
			break
		}
		mapRecord(rec, batch, operatorSeen)
	}

	logger.Info().Int("assets", len(batch.Assets)).Int("operators", len(batch.Operators)).Msg("batch mapped")
	return batch, nil
}

func mapRecord(rec bulkcsv.Record, batch *types.Batch, operatorSeen map[string]bool) {
	apiNumber := rec["api_number"]
	if apiNumber == "" {
		batch.ParseErrors++
		return
	}

	id := normalize.AssetIDFromAPINumber(sourceTag, apiNumber, 10)
	county := normalize.CountyName(sourceTag, rec["parish_code"])

	status := "inactive"
	if s, ok := statusMap[strings.ToUpper(rec["status"])]; ok {
		status = s
	}
	assetType := types.AssetTypeOil
	commodity := "crude oil"
	if strings.Contains(strings.ToUpper(rec["well_type"]), "GAS") {
		assetType = types.AssetTypeGas
		commodity = "natural gas"
	}

	asset := &types.Asset{
		ID:        id,
		Type:      assetType,
		Name:      rec["well_name"],
		State:     "LA",
		County:    county,
		Latitude:  normalize.ParseFloatSafeOrZero(rec["latitude"]),
		Longitude: normalize.ParseFloatSafeOrZero(rec["longitude"]),
		Status:    types.AssetStatus(status),
		DepthFt:   normalize.ParseIntSafe(rec["depth_ft"]),
		Commodity: commodity,
	}
	if asset.Name == "" {
		asset.Name = "API " + apiNumber
	}
	if basin := normalize.CountyBasin(county); basin != nil {
		asset.Basin = basin
	}
	batch.Assets[id] = asset

	operatorName := rec["operator_name"]
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
