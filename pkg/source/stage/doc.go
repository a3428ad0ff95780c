// Package stage resolves and manages the on-disk staging directories
// every downloader writes into: <data_dir>/<source_tag>/<YYYY-MM-DD>/,
// plus ZIP extraction and the HTML-error-page integrity check.
package stage
