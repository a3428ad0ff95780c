package normalize

import "fmt"

// countyByFIPS maps a source's county FIPS code to a display county
// name. Each source publishes its own county code table; only the
// handful exercised by the adapters in this repo are populated here.
// Unknown codes fall back to "County <code>" rather than an error.
var countyByFIPS = map[string]map[string]string{
	"tx_rrc": {
		"003": "Andrews",
		"135": "Howard",
		"317": "Midland",
		"371": "Reagan",
		"461": "Upton",
		"495": "Ward",
	},
	"ok_occ": {
		"011": "Beckham",
		"039": "Canadian",
		"073": "Grady",
		"153": "Woods",
	},
	"nm_ocd": {
		"025": "Eddy",
		"041": "Lea",
	},
	"co_cogcc": {
		"001": "Adams",
		"123": "Weld",
	},
	"nd_ndic": {
		"053": "McKenzie",
		"101": "Williams",
	},
}

// basinByCounty maps a county name to its producing basin. This table
// is the primary basin-assignment strategy; sources with sparse county
// coverage additionally fall back to a latitude-band rule (see the
// source adapter package for that source).
var basinByCounty = map[string]string{
	"Andrews":   "Permian",
	"Howard":    "Permian",
	"Midland":   "Permian",
	"Reagan":    "Permian",
	"Upton":     "Permian",
	"Ward":      "Permian",
	"Eddy":      "Permian",
	"Lea":       "Permian",
	"Beckham":   "Anadarko",
	"Canadian":  "Anadarko",
	"Grady":     "Anadarko",
	"Woods":     "Anadarko",
	"Adams":     "Denver-Julesburg",
	"Weld":      "Denver-Julesburg",
	"McKenzie":  "Williston",
	"Williams":  "Williston",
}

// CountyName looks up a source's FIPS county code. An unrecognized code
// yields the literal "County <code>" instead of an error — regulatory
// feeds add counties faster than any static table can track.
func CountyName(sourceTag, fipsCode string) string {
	if table, ok := countyByFIPS[sourceTag]; ok {
		if name, ok := table[fipsCode]; ok {
			return name
		}
	}
	return fmt.Sprintf("County %s", fipsCode)
}

// CountyBasin looks up the producing basin for a county name. An
// unrecognized county yields nil, not an error — basin is always a
// best-effort field.
func CountyBasin(county string) *string {
	if basin, ok := basinByCounty[county]; ok {
		return &basin
	}
	return nil
}
