// Package laldnr adapts the Louisiana Department of Natural
// Resources' GoAnywhere MFT-hosted bulk well export, retrieved via
// pkg/source/mft's three-step portal protocol and parsed as pipe-
// delimited CSV.
package laldnr
