package arcgis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFetchAllStopsOnShortPageWithoutTransferLimit covers scenario 5:
// pagination stops exactly when a page is short AND exceededTransferLimit
// is false, but continues on a short page that still reports the limit.
// Pages are keyed by the requested offset (not request arrival order),
// since FetchAll issues several pages concurrently.
func TestFetchAllStopsOnShortPageWithoutTransferLimit(t *testing.T) {
	pageSize := 2
	pages := [][]Feature{
		{{Attributes: map[string]any{"api": "1"}}, {Attributes: map[string]any{"api": "2"}}},
		{{Attributes: map[string]any{"api": "3"}}}, // short, but exceeded=true: must continue
		{{Attributes: map[string]any{"api": "4"}}}, // short, exceeded=false: must stop
	}
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		offset, _ := strconv.Atoi(r.URL.Query().Get("resultOffset"))
		idx := offset / pageSize

		resp := queryResponse{ExceededTransferLimit: idx == 1}
		if idx < len(pages) {
			resp.Features = pages[idx]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL, "", "", "", pageSize)

	var seen []Feature
	err := c.FetchAll(context.Background(), func(fs []Feature) error {
		seen = append(seen, fs...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(lookahead), atomic.LoadInt32(&calls), "one speculative round of lookahead requests")
	assert.Len(t, seen, 4)
}

func TestStringFieldIsCaseInsensitive(t *testing.T) {
	attrs := map[string]any{"API_Number": "42-123-45678"}
	assert.Equal(t, "42-123-45678", StringField(attrs, "api_number"))
}
