package mft

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/blackthreadai/wildcatter/pkg/source/httpx"
	"github.com/blackthreadai/wildcatter/pkg/source/htmlform"
)

// Client drives the portal → select-row → download sequence for one
// named file on a GoAnywhere MFT folder listing page.
type Client struct {
	doer *httpx.Doer
	jar  *cookiejar.Jar
}

// NewClient builds a Client with its own cookie jar, shared across all
// three steps as the portal's session affinity requires.
func NewClient(component string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	httpClient := &http.Client{Jar: jar}
	return &Client{doer: httpx.New(component, httpx.BulkPolicy(), httpClient), jar: jar}, nil
}

// session is the state threaded between the portal and select-row
// steps.
type session struct {
	viewState string
	rowKey    string
}

// Download runs the three-step sequence and returns the raw file
// bytes. portalURL is the folder listing page; fileName identifies the
// row to select; ajaxURL and downloadURL are the portal's own
// endpoints for the select and retrieve steps, as configured per
// source (portal deployments vary the exact path).
func (c *Client) Download(ctx context.Context, portalURL, fileName, ajaxURL, downloadURL string) ([]byte, error) {
	sess, err := c.visitPortal(ctx, portalURL, fileName)
	if err != nil {
		return nil, fmt.Errorf("portal visit failed: %w", err)
	}

	if err := c.selectRow(ctx, ajaxURL, sess); err != nil {
		return nil, fmt.Errorf("row selection failed: %w", err)
	}

	data, err := c.fetchFile(ctx, downloadURL, sess)
	if err != nil {
		return nil, fmt.Errorf("file retrieval failed: %w", err)
	}
	return data, nil
}

func (c *Client) visitPortal(ctx context.Context, portalURL, fileName string) (*session, error) {
	resp, err := c.doer.Do(ctx, "GET", portalURL, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read portal page: %w", err)
	}

	hidden, err := htmlform.ExtractHiddenFields(body)
	if err != nil {
		return nil, fmt.Errorf("failed to extract portal fields: %w", err)
	}

	rowKey, err := findRowKey(body, fileName)
	if err != nil {
		return nil, err
	}

	return &session{viewState: hidden["__VIEWSTATE"], rowKey: rowKey}, nil
}

func (c *Client) selectRow(ctx context.Context, ajaxURL string, sess *session) error {
	form := url.Values{}
	form.Set("__VIEWSTATE", sess.viewState)
	form.Set("rowKey", sess.rowKey)
	form.Set("action", "select")

	resp, err := c.doer.Do(ctx, "POST", ajaxURL, httpx.BytesBody([]byte(form.Encode())), map[string]string{
		"Content-Type":     "application/x-www-form-urlencoded",
		"X-Requested-With": "XMLHttpRequest",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) fetchFile(ctx context.Context, downloadURL string, sess *session) ([]byte, error) {
	form := url.Values{}
	form.Set("__VIEWSTATE", sess.viewState)
	form.Set("rowKey", sess.rowKey)

	resp, err := c.doer.Do(ctx, "POST", downloadURL, httpx.BytesBody([]byte(form.Encode())), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file stream: %w", err)
	}
	return data, nil
}

// findRowKey reads the row key from the hidden input named
// "rowKey:<fileName>" on the portal page. Table rows and their
// attributes are not searched.
func findRowKey(body []byte, fileName string) (string, error) {
	hidden, err := htmlform.ExtractHiddenFields(body)
	if err != nil {
		return "", err
	}
	if key, ok := hidden["rowKey:"+fileName]; ok {
		return key, nil
	}
	// Fall back to the filename itself as the row key — several
	// GoAnywhere deployments key rows by the literal file name.
	return fileName, nil
}
