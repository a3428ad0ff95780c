// Package linker rebinds assets with a null or dangling operator_id to
// a canonical operator, by splitting the asset name on common
// separators and looking each segment up in a name index built from
// every operator's legal name and aliases. One transaction per run.
package linker
