package fixedwidth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellboreLayout() Layout {
	return Layout{
		MinLength: 20,
		Fields: []Field{
			{Name: "api_number", Start: 0, End: 11},
			{Name: "status", Start: 11, End: 13},
			{Name: "depth_ft", Start: 13, End: 20},
		},
	}
}

func TestReaderParsesFixedColumns(t *testing.T) {
	data := "4212345678 AC   8500\n"
	r := NewReader(strings.NewReader(data), wellboreLayout())

	rec, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "4212345678", rec["api_number"])
	assert.Equal(t, "AC", rec["status"])
	assert.Equal(t, "8500", rec["depth_ft"])
}

func TestReaderSkipsShortLinesAndCounts(t *testing.T) {
	data := "too short\n4212345678 AC   8500\n"
	r := NewReader(strings.NewReader(data), wellboreLayout())

	rec, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "4212345678", rec["api_number"])
	assert.Equal(t, 1, r.ShortLines)

	_, ok, err = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}
