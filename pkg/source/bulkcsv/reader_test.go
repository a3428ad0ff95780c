package bulkcsv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderStreamsRecordsByColumnName(t *testing.T) {
	data := "api_number|operator_name|status\n" +
		"42-123-45678|PIONEER NATURAL RESOURCES|ACTIVE\n" +
		"42-123-99999|\"OXY, USA\"|SI\n"

	r, err := NewReader(strings.NewReader(data))
	require.NoError(t, err)

	rec, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "42-123-45678", rec["api_number"])
	assert.Equal(t, "PIONEER NATURAL RESOURCES", rec["operator_name"])

	rec, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "OXY, USA", rec["operator_name"], "embedded comma inside quoted pipe field must survive")

	_, ok, err = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReaderToleratesRaggedRows(t *testing.T) {
	data := "a|b|c\n1|2\n"
	r, err := NewReader(strings.NewReader(data))
	require.NoError(t, err)

	rec, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", rec["a"])
	assert.Equal(t, "2", rec["b"])
	assert.Equal(t, "", rec["c"])
}
