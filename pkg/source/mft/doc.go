// Package mft drives the GoAnywhere Managed File Transfer portal's
// three-step download: fetch the portal page for a session cookie,
// ViewState and row key; POST an ajax "select row" to stage the file
// server-side; POST a second form to receive the file stream.
package mft
