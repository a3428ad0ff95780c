package arcgis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/source/httpx"
)

// lookahead bounds how many pages FetchAll speculatively fetches in
// parallel before it knows whether an earlier page was the last one.
const lookahead = 3

// Feature is one row's attributes, as returned by the query endpoint.
// Field names are treated case-insensitively by callers since ArcGIS
// schemas drift between deployments.
type Feature struct {
	Attributes map[string]any `json:"attributes"`
}

type queryResponse struct {
	Features              []Feature `json:"features"`
	ExceededTransferLimit bool      `json:"exceededTransferLimit"`
}

// Client queries one FeatureServer layer endpoint.
type Client struct {
	doer      *httpx.Doer
	endpoint  string
	where     string
	outFields string
	orderBy   string
	pageSize  int
}

// NewClient builds a Client. endpoint is the layer's query URL
// (".../FeatureServer/0/query"); where defaults to "1=1" (all rows) if
// empty; pageSize is the resultRecordCount per page.
func NewClient(component, endpoint, where, outFields, orderBy string, pageSize int) *Client {
	if where == "" {
		where = "1=1"
	}
	if pageSize <= 0 {
		pageSize = 1000
	}
	return &Client{
		doer:      httpx.New(component, httpx.DefaultPolicy(), nil),
		endpoint:  endpoint,
		where:     where,
		outFields: outFields,
		orderBy:   orderBy,
		pageSize:  pageSize,
	}
}

type pageResult struct {
	offset   int
	features []Feature
	exceeded bool
}

// FetchAll pages through the whole layer, calling onPage once per page
// of features, in offset order, so the caller can map-and-discard
// instead of accumulating every feature in memory. Since the last page
// isn't known until it's fetched, FetchAll speculatively fetches up to
// `lookahead` pages ahead of the one it's currently delivering, bounded
// by a semaphore; pages fetched past the true end are simply discarded.
func (c *Client) FetchAll(ctx context.Context, onPage func([]Feature) error) error {
	logger := log.WithComponent("source.arcgis")
	sem := semaphore.NewWeighted(int64(lookahead))
	offset := 0

	for {
		offsets := make([]int, lookahead)
		for i := range offsets {
			offsets[i] = offset + i*c.pageSize
		}

		results := make([]pageResult, len(offsets))
		g, gctx := errgroup.WithContext(ctx)
		for i, off := range offsets {
			i, off := i, off
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			g.Go(func() error {
				defer sem.Release(1)
				page, exceeded, err := c.fetchPage(gctx, off)
				if err != nil {
					return fmt.Errorf("arcgis page at offset %d: %w", off, err)
				}
				results[i] = pageResult{offset: off, features: page, exceeded: exceeded}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		last := false
		for _, r := range results {
			if err := onPage(r.features); err != nil {
				return err
			}
			logger.Debug().Int("offset", r.offset).Int("count", len(r.features)).Bool("exceeded", r.exceeded).Msg("fetched page")

			if len(r.features) < c.pageSize && !r.exceeded {
				last = true
				break
			}
		}
		if last {
			return nil
		}
		offset += len(offsets) * c.pageSize
	}
}

func (c *Client) fetchPage(ctx context.Context, offset int) ([]Feature, bool, error) {
	q := url.Values{}
	q.Set("where", c.where)
	q.Set("outFields", orDefault(c.outFields, "*"))
	q.Set("f", "json")
	q.Set("resultOffset", fmt.Sprintf("%d", offset))
	q.Set("resultRecordCount", fmt.Sprintf("%d", c.pageSize))
	if c.orderBy != "" {
		q.Set("orderByFields", c.orderBy)
	}

	reqURL := c.endpoint + "?" + q.Encode()
	resp, err := c.doer.Do(ctx, "GET", reqURL, nil, nil)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed queryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("failed to decode query response: %w", err)
	}

	return parsed.Features, parsed.ExceededTransferLimit, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// StringField reads attrs[key] case-insensitively and coerces to a
// string regardless of the underlying JSON type (ArcGIS sometimes
// returns numeric fields for string-typed columns).
func StringField(attrs map[string]any, key string) string {
	v := lookup(attrs, key)
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Float64Field reads attrs[key] case-insensitively as a float64,
// returning (0, false) if absent or not numeric.
func Float64Field(attrs map[string]any, key string) (float64, bool) {
	v := lookup(attrs, key)
	if v == nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func lookup(attrs map[string]any, key string) any {
	if v, ok := attrs[key]; ok {
		return v
	}
	for k, v := range attrs {
		if equalFold(k, key) {
			return v
		}
	}
	return nil
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
