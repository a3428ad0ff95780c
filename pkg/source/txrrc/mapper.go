package txrrc

import (
	"strconv"
	"strings"

	"github.com/blackthreadai/wildcatter/pkg/normalize"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

// mapWellboreRecord maps one fixed-width wellbore row into batch.Assets,
// establishing asset identity, status, type, county and basin. PDQ
// records parsed later in the same run set the operator on this same
// asset entry (mapPDQRecord).
func mapWellboreRecord(rec fixedwidthRecord, batch *types.Batch) {
	apiNumber := rec["api_number"]
	if apiNumber == "" {
		batch.ParseErrors++
		return
	}

	id := AssetIDFor(apiNumber)
	county := normalize.CountyName(sourceTag, rec["county_fips"])
	lat, lon := parseCoord(rec["latitude"]), parseCoord(rec["longitude"])

	status := mapStatus(rec["status_code"])
	assetType := mapWellType(rec["well_type_code"])
	commodity := "crude oil"
	if assetType == "gas" {
		commodity = "natural gas"
	}

	asset := &types.Asset{
		ID:        id,
		Type:      types.AssetType(assetType),
		Name:      "API " + apiNumber,
		State:     "TX",
		County:    county,
		Latitude:  lat,
		Longitude: lon,
		Status:    types.AssetStatus(status),
		SpudDate:  normalize.ParseDate(rec["spud_date"]),
		DepthFt:   normalize.ParseIntSafe(rec["depth_ft"]),
		Commodity: commodity,
	}
	if basin := normalize.CountyBasin(county); basin != nil {
		asset.Basin = basin
	}

	batch.Assets[id] = asset
}

// mapPDQRecord maps one PDQ CSV row — monthly production plus the
// operator of record — setting the asset's operator if the
// wellbore pass already created the asset, or creating a minimal asset
// stub otherwise (PDQ alone carries no status/type).
func mapPDQRecord(rec bulkcsvRecord, batch *types.Batch, operatorSeen map[string]bool) {
	apiNumber := rec["api_number"]
	if apiNumber == "" {
		batch.ParseErrors++
		return
	}
	id := AssetIDFor(apiNumber)

	asset, exists := batch.Assets[id]
	if !exists {
		asset = &types.Asset{ID: id, State: "TX", Name: "API " + apiNumber, Status: types.AssetStatusActive, Commodity: "crude oil"}
		batch.Assets[id] = asset
	}

	operatorName := strings.TrimSpace(rec["operator_name"])
	if operatorName != "" {
		opName := normalize.CanonicalName(operatorName)
		opID := normalize.OperatorIDFromName(sourceTag, operatorName)
		asset.OperatorID = &opID

		key := normalize.NormalizeForMatching(operatorName)
		if !operatorSeen[key] {
			operatorSeen[key] = true
			batch.Operators = append(batch.Operators, &types.Operator{
				ID:        opID,
				LegalName: opName,
				Aliases:   []string{operatorName},
			})
		}
	}

	oil := normalize.ParseFloatSafe(rec["oil_volume_bbl"])
	gas := normalize.ParseFloatSafe(rec["gas_volume_mcf"])
	month := normalize.ParseDate(rec["report_month"])
	if month == nil {
		batch.ParseErrors++
		return
	}

	// tx_rrc is a spatial-join-free source with a direct asset key, so
	// a zero/zero production row is still meaningful and kept, unlike
	// nmocd's spatial-join stagers, which drop it.
	batch.Productions = append(batch.Productions, &types.ProductionRecord{
		AssetID:      id,
		Month:        normalize.MonthStart(*month),
		OilVolumeBBL: oil,
		GasVolumeMCF: gas,
	})
}

func mapStatus(code string) string {
	if s, ok := statusMap[strings.ToUpper(code)]; ok {
		return s
	}
	return "inactive"
}

func mapWellType(code string) string {
	if t, ok := wellTypeMap[strings.ToUpper(code)]; ok {
		return t
	}
	return "oil"
}

func parseCoord(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// fixedwidthRecord and bulkcsvRecord alias the sibling packages'
// record types so this file doesn't need to import them just for a
// type name in a function signature comment.
type fixedwidthRecord = map[string]string
type bulkcsvRecord = map[string]string
