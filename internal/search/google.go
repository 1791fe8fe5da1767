// Package search provides best-effort enrichment clients for web search and
// video search. Enrichment failures never abort generation; callers receive
// empty results instead.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/opencourse/coursegen/internal/content"
)

const defaultCustomSearchBaseURL = "https://customsearch.googleapis.com/customsearch/v1"

// GoogleClient calls the Google Custom Search JSON API.
type GoogleClient struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
}

// GoogleOption configures a GoogleClient.
type GoogleOption func(*GoogleClient)

// WithGoogleBaseURL sets the base URL (for testing).
func WithGoogleBaseURL(url string) GoogleOption {
	return func(c *GoogleClient) {
		c.baseURL = url
	}
}

// WithGoogleHTTPClient sets a custom HTTP client.
func WithGoogleHTTPClient(client *http.Client) GoogleOption {
	return func(c *GoogleClient) {
		c.client = client
	}
}

// NewGoogleClient creates a Custom Search client.
func NewGoogleClient(apiKey, engineID string, opts ...GoogleOption) *GoogleClient {
	c := &GoogleClient{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  defaultCustomSearchBaseURL,
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cseResponse is the subset of the Custom Search response we read.
type cseResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"items"`
}

// Search returns up to n search results for the query. An empty result list
// is a valid outcome, not an error.
func (c *GoogleClient) Search(ctx context.Context, query string, n int) ([]content.SearchResult, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", query)
	q.Set("num", strconv.Itoa(n))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("custom search api error (status %d): %s", resp.StatusCode, string(body))
	}

	var cse cseResponse
	if err := json.Unmarshal(body, &cse); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	results := make([]content.SearchResult, 0, len(cse.Items))
	for _, item := range cse.Items {
		results = append(results, content.SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
		})
	}
	return results, nil
}
