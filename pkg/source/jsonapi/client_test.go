package jsonapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAllReauthenticatesOnceOn401(t *testing.T) {
	logins := 0
	unauthorizedServed := false

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login":
			logins++
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(loginResponse{Token: "tok", RefreshToken: "r"})
		case !unauthorizedServed:
			unauthorizedServed = true
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]map[string]any{{"api_number": "1"}})
		}
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL, "user@example.com", "secret")

	var pages int
	err := c.FetchAll(context.Background(), "/wells", 50, func(p Page) error {
		pages++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, logins, "initial login plus one re-auth after 401")
	assert.Equal(t, 1, pages)
}

func TestFetchAllStopsOnShortPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			_ = json.NewEncoder(w).Encode(loginResponse{Token: "tok"})
			return
		}
		offset := r.URL.Query().Get("offset")
		w.Header().Set("Content-Type", "application/json")
		if offset == "0" {
			_ = json.NewEncoder(w).Encode([]map[string]any{{"a": "1"}, {"a": "2"}})
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{"a": "3"}})
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL, "u", "p")
	var total int
	err := c.FetchAll(context.Background(), "/wells", 2, func(p Page) error {
		total += len(p.Records)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
