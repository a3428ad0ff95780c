// Package txrrc adapts the Texas Railroad Commission: a multi-GB
// pipe-delimited PDQ bulk dump (operators + monthly production) and a
// fixed-width P5/wellbore ASCII layout (asset identity and status).
// This is the largest bulk feed in the pipeline; the CSV reader never
// buffers more than one row.
package txrrc
