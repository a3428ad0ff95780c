// Package okocc adapts the Oklahoma Corporation Commission's ArcGIS
// FeatureServer well layer into canonical assets and operators.
package okocc
