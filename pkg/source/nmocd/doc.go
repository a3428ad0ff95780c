// Package nmocd adapts the New Mexico Oil Conservation Division's
// production-only ArcGIS FeatureServer layer: rows carry lat/lon but
// no asset key, so they are staged for the loader's spatial join
// (pkg/store.StageSpatialProduction) rather than mapped to a direct asset ID.
package nmocd
