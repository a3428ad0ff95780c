package htmlform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/blackthreadai/wildcatter/pkg/source/httpx"
)

// hiddenFields are the ASP.NET WebForms postback fields every scraped
// search page carries.
var hiddenFields = []string{"__VIEWSTATE", "__VIEWSTATEGENERATOR", "__EVENTVALIDATION"}

// Scraper drives the GET-then-POST WebForms dance for one search page,
// carrying cookies across both requests via a shared jar.
type Scraper struct {
	doer *httpx.Doer
	jar  *cookiejar.Jar
}

// NewScraper builds a Scraper with its own cookie jar.
func NewScraper(component string) (*Scraper, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	client := &http.Client{Jar: jar}
	return &Scraper{doer: httpx.New(component, httpx.DefaultPolicy(), client), jar: jar}, nil
}

// Fetch performs the GET+extract+POST sequence against pageURL and
// returns the raw HTML result body (the search results page, ready for
// a format-specific table parser to pull rows from).
func (s *Scraper) Fetch(ctx context.Context, pageURL string, query url.Values) ([]byte, error) {
	getResp, err := s.doer.Do(ctx, "GET", pageURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to GET landing page: %w", err)
	}
	defer getResp.Body.Close()

	body, err := io.ReadAll(getResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read landing page: %w", err)
	}

	hidden, err := ExtractHiddenFields(body)
	if err != nil {
		return nil, fmt.Errorf("failed to extract hidden fields: %w", err)
	}

	form := url.Values{}
	for k, v := range hidden {
		form.Set(k, v)
	}
	for k, vs := range query {
		for _, v := range vs {
			form.Add(k, v)
		}
	}

	postResp, err := s.doer.Do(ctx, "POST", pageURL, httpx.BytesBody([]byte(form.Encode())), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to POST search form: %w", err)
	}
	defer postResp.Body.Close()

	result, err := io.ReadAll(postResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}
	return result, nil
}

// ExtractHiddenFields walks the parsed DOM for <input type="hidden">
// elements matching hiddenFields and returns their values by name.
// Using a real tokenizer instead of a regex keeps this robust against
// attribute reordering, which a hand-rolled pattern would not survive.
func ExtractHiddenFields(body []byte) (map[string]string, error) {
	doc, err := html.Parse(newReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	found := make(map[string]string)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "input" {
			name, value, isHidden := "", "", false
			for _, attr := range n.Attr {
				switch strings.ToLower(attr.Key) {
				case "name":
					name = attr.Val
				case "value":
					value = attr.Val
				case "type":
					isHidden = strings.EqualFold(attr.Val, "hidden")
				}
			}
			if isHidden && wanted(name) {
				found[name] = value
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return found, nil
}

func wanted(name string) bool {
	for _, f := range hiddenFields {
		if name == f {
			return true
		}
	}
	return false
}

func newReader(b []byte) *strings.Reader {
	return strings.NewReader(string(b))
}
