// Package cogcc adapts the Colorado Oil and Gas Conservation
// Commission's ASP.NET WebForms well-search page via htmlform's
// VIEWSTATE scrape-and-repost, then parses the returned results table.
package cogcc
