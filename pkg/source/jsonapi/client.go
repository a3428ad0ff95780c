package jsonapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/source/httpx"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Client is a bearer-token-authenticated JSON API client with
// offset/limit pagination over a single resource path.
type Client struct {
	doer     *httpx.Doer
	baseURL  string
	email    string
	password string

	mu    sync.Mutex
	token string
}

// NewClient builds a Client against baseURL, using the email/password
// pair for POST /auth/login.
func NewClient(component, baseURL, email, password string) *Client {
	return &Client{
		doer:     httpx.New(component, httpx.DefaultPolicy(), nil),
		baseURL:  baseURL,
		email:    email,
		password: password,
	}
}

// authenticate exchanges email/password for a bearer token. Callers
// hold c.mu while calling this.
func (c *Client) authenticate(ctx context.Context) error {
	body, err := json.Marshal(loginRequest{Email: c.email, Password: c.password})
	if err != nil {
		return fmt.Errorf("failed to encode login request: %w", err)
	}

	resp, err := c.doer.Do(ctx, "POST", c.baseURL+"/auth/login", httpx.BytesBody(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}
	var parsed loginResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if parsed.Token == "" {
		return fmt.Errorf("login response carried no token")
	}

	c.token = parsed.Token
	return nil
}

// Page is one page of raw JSON records from a resource path.
type Page struct {
	Records []map[string]any
}

// FetchAll pages through path (e.g. "/wells") via offset/limit,
// authenticating lazily on first use and re-authenticating once on a
// 401. onPage is called once per page; pagination stops on the first
// page shorter than limit.
func (c *Client) FetchAll(ctx context.Context, path string, limit int, onPage func(Page) error) error {
	logger := log.WithComponent("source.jsonapi")
	offset := 0
	reauthenticated := false

	c.mu.Lock()
	if c.token == "" {
		if err := c.authenticate(ctx); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("initial authentication failed: %w", err)
		}
	}
	c.mu.Unlock()

	for {
		records, status, err := c.fetchPage(ctx, path, offset, limit)
		if err != nil {
			return fmt.Errorf("page at offset %d: %w", offset, err)
		}

		if status == http.StatusUnauthorized {
			if reauthenticated {
				return fmt.Errorf("re-authentication did not resolve 401 at offset %d", offset)
			}
			logger.Warn().Msg("received 401, re-authenticating once")
			c.mu.Lock()
			err := c.authenticate(ctx)
			c.mu.Unlock()
			if err != nil {
				return fmt.Errorf("re-authentication failed: %w", err)
			}
			reauthenticated = true
			continue
		}

		if err := onPage(Page{Records: records}); err != nil {
			return err
		}

		if len(records) < limit {
			return nil
		}
		offset += len(records)
	}
}

func (c *Client) fetchPage(ctx context.Context, path string, offset, limit int) ([]map[string]any, int, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	url := fmt.Sprintf("%s%s?offset=%d&limit=%d", c.baseURL, path, offset, limit)
	resp, err := c.doer.Do(ctx, "GET", url, nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read page body: %w", err)
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode page: %w", err)
	}
	return records, resp.StatusCode, nil
}
