// Package ndndic adapts the North Dakota Industrial Commission's
// authenticated JSON API. Basin assignment falls back to a
// latitude-band rule (>68° → North Slope analogue; here, >48.2°N in
// the Bakken footprint → Williston) when the county table misses.
package ndndic
