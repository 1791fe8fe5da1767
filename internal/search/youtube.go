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

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeClient calls the YouTube Data API v3 search endpoint.
type YouTubeClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// YouTubeOption configures a YouTubeClient.
type YouTubeOption func(*YouTubeClient)

// WithYouTubeBaseURL sets the base URL (for testing).
func WithYouTubeBaseURL(url string) YouTubeOption {
	return func(c *YouTubeClient) {
		c.baseURL = url
	}
}

// WithYouTubeHTTPClient sets a custom HTTP client.
func WithYouTubeHTTPClient(client *http.Client) YouTubeOption {
	return func(c *YouTubeClient) {
		c.client = client
	}
}

// NewYouTubeClient creates a YouTube Data API client.
func NewYouTubeClient(apiKey string, opts ...YouTubeOption) *YouTubeClient {
	c := &YouTubeClient{
		apiKey:  apiKey,
		baseURL: defaultYouTubeBaseURL,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ytSearchResponse is the subset of the search.list response we read.
type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos returns up to max video references for the query.
func (c *YouTubeClient) SearchVideos(ctx context.Context, query string, max int) ([]content.VideoRef, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(max))
	q.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
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
		return nil, fmt.Errorf("youtube api error (status %d): %s", resp.StatusCode, string(body))
	}

	var yt ytSearchResponse
	if err := json.Unmarshal(body, &yt); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	videos := make([]content.VideoRef, 0, len(yt.Items))
	for _, item := range yt.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, content.VideoRef{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
		})
	}
	return videos, nil
}
