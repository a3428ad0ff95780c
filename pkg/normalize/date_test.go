package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{name: "YYYYMMDD", raw: "20200115", want: ptr(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC))},
		{name: "MM/DD/YYYY", raw: "01/15/2020", want: ptr(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC))},
		{name: "YYYY-MM-DD", raw: "2020-01-15", want: ptr(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC))},
		{name: "YYYYMM", raw: "202001", want: ptr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))},
		{name: "zero sentinel", raw: "0", want: nil},
		{name: "zero-padded sentinel", raw: "00000000", want: nil},
		{name: "garbage", raw: "not-a-date", want: nil},
		{name: "empty", raw: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v want %v", got, tt.want)
		})
	}
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2021, 6, 17, 13, 45, 0, 0, time.UTC)
	want := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, want.Equal(MonthStart(in)))
}

func ptr(t time.Time) *time.Time { return &t }
