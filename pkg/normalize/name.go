package normalize

import "strings"

// abbreviations is the canonical expansion table shared across every
// source. It must stay identical across the whole pipeline: dedup's
// exact-match strategy depends on two sources spelling the same
// operator the same way after CanonicalName.
var abbreviations = map[string]string{
	"CO":     "Co",
	"CO.":    "Co",
	"INC":    "Inc",
	"INC.":   "Inc",
	"LLC":    "LLC",
	"L.L.C.": "LLC",
	"LLP":    "LLP",
	"LP":     "LP",
	"L.P.":   "LP",
	"LTD":    "Ltd",
	"LTD.":   "Ltd",
	"CORP":   "Corp",
	"CORP.":  "Corp",
	"RES":    "Resources",
	"RESRCS": "Resources",
	"OPER":   "Operating",
	"OPERTG": "Operating",
	"OPTG":   "Operating",
	"PROD":   "Production",
	"EXPL":   "Exploration",
	"EXP":    "Exploration",
	"PET":    "Petroleum",
	"PETE":   "Petroleum",
	"GAS":    "Gas",
	"OIL":    "Oil",
	"ENGY":   "Energy",
	"NRG":    "Energy",
	"MGMT":   "Management",
	"MGT":    "Management",
	"DEV":    "Development",
	"INTL":   "International",
	"ASSOC":  "Associates",
	"ASSOCS": "Associates",
	"BROS":   "Brothers",
	"CO2":    "CO2",
	"USA":    "USA",
	"US":     "US",
}

// CanonicalName produces the display form of a raw operator or asset
// name: tokenize on whitespace, expand the abbreviation table, keep
// tokens of length <= 2 upper-cased, title-case everything else.
func CanonicalName(raw string) string {
	fields := strings.Fields(raw)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		key := strings.ToUpper(strings.TrimRight(f, "."))
		if exp, ok := abbreviations[key]; ok {
			out = append(out, exp)
			continue
		}
		if withDot, ok := abbreviations[strings.ToUpper(f)]; ok {
			out = append(out, withDot)
			continue
		}
		if len(f) <= 2 {
			out = append(out, strings.ToUpper(f))
			continue
		}
		out = append(out, titleCase(f))
	}
	return strings.Join(out, " ")
}

func titleCase(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return s
	}
	r[0] = toUpperRune(r[0])
	return string(r)
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// legalSuffixes are stripped by NormalizeForMatching only; they are
// part of the display name and must never be removed by CanonicalName.
var legalSuffixes = map[string]bool{
	"inc": true, "llc": true, "llp": true, "lp": true,
	"ltd": true, "co": true, "corp": true,
	"company": true, "corporation": true,
}

// NormalizeForMatching reduces a name to the lossy key used solely for
// equality/fuzzy comparison in the Deduplicator and Linker: lowercase,
// strip legal suffixes, strip non-alphanumerics, collapse whitespace.
// It is idempotent: NormalizeForMatching(NormalizeForMatching(x)) == NormalizeForMatching(x).
func NormalizeForMatching(name string) string {
	lower := strings.ToLower(name)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !isAlphanumeric(r)
	})
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if legalSuffixes[f] {
			continue
		}
		kept = append(kept, f)
	}
	joined := strings.Join(kept, "")
	if legalSuffixes[joined] {
		// Joined single-letter tokens can spell a suffix ("L L C" -> "llc")
		// that a second pass would strip; strip it now.
		return ""
	}
	return joined
}

func isAlphanumeric(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	default:
		return false
	}
}
