package cogcc

import (
	"strings"

	"golang.org/x/net/html"
)

// resultColumns names the <td> cells in the order COGCC's search
// results table renders them.
var resultColumns = []string{
	"api_number", "well_name", "operator_name", "status_code",
	"well_type_code", "county_fips", "latitude", "longitude",
}

// parseResultsTable walks the results HTML and returns one map per
// <tr> with <td> cells anywhere in the document, keyed by resultColumns
// position.
// A tokenizer is used instead of a regex so the scraper survives
// attribute/whitespace drift in the rendered markup.
func parseResultsTable(body []byte) ([]map[string]string, error) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if cells := extractCells(n); len(cells) > 0 {
				rows = append(rows, cellsToRecord(cells))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// Drop rows whose first cell is empty or is the literal "API Number"
	// header text.
	var filtered []map[string]string
	for _, r := range rows {
		if r["api_number"] != "" && r["api_number"] != "API Number" {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func extractCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, strings.TrimSpace(textContent(c)))
		}
	}
	return cells
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func cellsToRecord(cells []string) map[string]string {
	rec := make(map[string]string, len(resultColumns))
	for i, col := range resultColumns {
		if i < len(cells) {
			rec[col] = cells[i]
		}
	}
	return rec
}
