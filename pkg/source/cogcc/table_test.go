package cogcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultsTableSkipsHeaderRow(t *testing.T) {
	body := []byte(`<html><body><table id="results">
		<tr><td>API Number</td><td>Well Name</td></tr>
		<tr><td>05-123-45678</td><td>RED HAWK 12H</td><td>Occidental Petroleum</td><td>PR</td><td>OIL</td><td>123</td></tr>
	</table></body></html>`)

	rows, err := parseResultsTable(body)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "05-123-45678", rows[0]["api_number"])
	assert.Equal(t, "RED HAWK 12H", rows[0]["well_name"])
}
