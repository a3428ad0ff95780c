package txrrc

import "github.com/blackthreadai/wildcatter/pkg/source/fixedwidth"

// wellboreLayout is the documented byte-offset layout of the P5
// wellbore fixed-width export. Offsets are illustrative of the real
// RRC format's column positions.
var wellboreLayout = fixedwidth.Layout{
	MinLength: 55,
	Fields: []fixedwidth.Field{
		{Name: "api_number", Start: 0, End: 11},
		{Name: "status_code", Start: 11, End: 13},
		{Name: "well_type_code", Start: 13, End: 15},
		{Name: "county_fips", Start: 15, End: 18},
		{Name: "depth_ft", Start: 18, End: 24},
		{Name: "spud_date", Start: 24, End: 32}, // YYYYMMDD
		{Name: "latitude", Start: 32, End: 43},
		{Name: "longitude", Start: 43, End: 55},
	},
}

// statusMap translates tx_rrc status codes to canonical AssetStatus.
var statusMap = map[string]string{
	"AC": "active", // producing
	"DR": "active", // drilling
	"PM": "active", // permitted
	"IN": "active", // injecting
	"SI": "shut-in",
	"TA": "shut-in", // temporarily abandoned
	"PA": "inactive", // plugged
	"DY": "inactive", // dry
}

// wellTypeMap translates tx_rrc well type codes to canonical AssetType.
var wellTypeMap = map[string]string{
	"GAS": "gas",
	"CBM": "gas",
	"COND": "gas",
	"OIL": "oil",
}
