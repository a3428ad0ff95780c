package ndndic

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/normalize"
	"github.com/blackthreadai/wildcatter/pkg/source"
	"github.com/blackthreadai/wildcatter/pkg/source/jsonapi"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

const sourceTag = "nd_ndic"

const baseURL = "https://api.dmr.nd.gov/ndic"

var statusMap = map[string]string{
	"PRODUCING": "active",
	"PERMITTED": "active",
	"SI":        "shut-in",
	"TA":        "shut-in",
	"PLUGGED":   "inactive",
}

// latitudeBandBasin is the per-source fallback when the county table
// doesn't resolve a basin: wells north of this latitude sit in the
// Williston basin's deepest play regardless of recorded county.
const latitudeBandBasin = 48.2

// Adapter implements source.Adapter for nd_ndic.
type Adapter struct{}

// New returns the nd_ndic adapter.
func New() *Adapter { return &Adapter{} }

// Tag returns "nd_ndic".
func (a *Adapter) Tag() string { return sourceTag }

// Run authenticates with credentials from cfg and pages through the
// wells resource, mapping each page as it arrives.
func (a *Adapter) Run(ctx context.Context, cfg source.Config) (*types.Batch, error) {
	logger := log.WithComponent("source." + sourceTag)

	cred := cfg.Credential
	if cred.Email == "" {
		cred.Email = os.Getenv("ND_NDIC_API_EMAIL")
	}
	if cred.Password == "" {
		cred.Password = os.Getenv("ND_NDIC_API_PASSWORD")
	}

	batch := &types.Batch{
		SourceTag: sourceTag,
		SourceURL: baseURL,
		Assets:    make(map[string]*types.Asset),
	}

	client := jsonapi.NewClient("source."+sourceTag, baseURL, cred.Email, cred.Password)
	operatorSeen := make(map[string]bool)

	err := client.FetchAll(ctx, "/wells", 200, func(page jsonapi.Page) error {
		for _, rec := range page.Records {
			mapRecord(rec, batch, operatorSeen)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("jsonapi fetch failed: %w", err)
	}

	logger.Info().Int("assets", len(batch.Assets)).Int("operators", len(batch.Operators)).Msg("batch mapped")
	return batch, nil
}

func mapRecord(rec map[string]any, batch *types.Batch, operatorSeen map[string]bool) {
	apiNumber := stringField(rec, "api_number")
	if apiNumber == "" {
		batch.ParseErrors++
		return
	}

	id := normalize.AssetIDFromAPINumber(sourceTag, apiNumber, 10)
	lat, _ := floatField(rec, "latitude")
	lon, _ := floatField(rec, "longitude")
	county := normalize.CountyName(sourceTag, stringField(rec, "county_code"))

	status := "inactive"
	if s, ok := statusMap[strings.ToUpper(stringField(rec, "well_status"))]; ok {
		status = s
	}

	asset := &types.Asset{
		ID:        id,
		Type:      types.AssetTypeOil,
		Name:      stringField(rec, "well_name"),
		State:     "ND",
		County:    county,
		Latitude:  lat,
		Longitude: lon,
		Status:    types.AssetStatus(status),
		Commodity: "crude oil",
	}
	if asset.Name == "" {
		asset.Name = "API " + apiNumber
	}

	if basin := normalize.CountyBasin(county); basin != nil {
		asset.Basin = basin
	} else if lat > latitudeBandBasin {
		williston := "Williston"
		asset.Basin = &williston
	}

	batch.Assets[id] = asset

	operatorName := stringField(rec, "operator_name")
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

	// A production row with oil=0 AND gas=0 is inserted with NULL
	// volumes for this JWT API stager, unlike the spatial-join stagers
	// that drop it outright.
	oil := normalize.ParseFloatSafe(stringField(rec, "oil_volume_bbl"))
	gas := normalize.ParseFloatSafe(stringField(rec, "gas_volume_mcf"))
	if isZero(oil) && isZero(gas) {
		oil, gas = nil, nil
	}
	month := normalize.ParseDate(stringField(rec, "report_month"))
	if month != nil {
		batch.Productions = append(batch.Productions, &types.ProductionRecord{
			AssetID:      id,
			Month:        normalize.MonthStart(*month),
			OilVolumeBBL: oil,
			GasVolumeMCF: gas,
		})
	}
}

func stringField(rec map[string]any, key string) string {
	v := lookup(rec, key)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func floatField(rec map[string]any, key string) (float64, bool) {
	v := lookup(rec, key)
	if v == nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func isZero(f *float64) bool {
	return f == nil || *f == 0
}

func lookup(rec map[string]any, key string) any {
	if v, ok := rec[key]; ok {
		return v
	}
	for k, v := range rec {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}
