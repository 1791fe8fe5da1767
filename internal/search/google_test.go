package search_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opencourse/coursegen/internal/search"
)

func TestGoogleClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "api-key" || q.Get("cx") != "engine-id" {
			t.Errorf("missing credentials in query: %v", q)
		}
		if q.Get("q") != "algebra" || q.Get("num") != "3" {
			t.Errorf("unexpected query params: %v", q)
		}
		w.Write([]byte(`{"items": [
			{"title": "Algebra basics", "snippet": "Learn algebra.", "link": "https://example.com/a"},
			{"title": "More algebra", "snippet": "Deeper.", "link": "https://example.com/b"}
		]}`))
	}))
	defer server.Close()

	client := search.NewGoogleClient("api-key", "engine-id", search.WithGoogleBaseURL(server.URL))
	results, err := client.Search(context.Background(), "algebra", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results count = %d, want 2", len(results))
	}
	if results[0].Title != "Algebra basics" || results[0].URL != "https://example.com/a" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
}

func TestGoogleClient_Search_NoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := search.NewGoogleClient("k", "cx", search.WithGoogleBaseURL(server.URL))
	results, err := client.Search(context.Background(), "nothing", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results count = %d, want 0", len(results))
	}
}

func TestGoogleClient_Search_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "quota"}`))
	}))
	defer server.Close()

	client := search.NewGoogleClient("k", "cx", search.WithGoogleBaseURL(server.URL))
	if _, err := client.Search(context.Background(), "q", 1); err == nil {
		t.Fatal("Search() should return error on API error")
	}
}

func TestYouTubeClient_SearchVideos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("type") != "video" || q.Get("part") != "snippet" {
			t.Errorf("unexpected query params: %v", q)
		}
		w.Write([]byte(`{"items": [
			{"id": {"videoId": "abc123"}, "snippet": {"title": "Algebra 101", "thumbnails": {"medium": {"url": "https://i.ytimg.com/t1.jpg"}}}},
			{"id": {}, "snippet": {"title": "a channel, not a video"}}
		]}`))
	}))
	defer server.Close()

	client := search.NewYouTubeClient("k", search.WithYouTubeBaseURL(server.URL))
	videos, err := client.SearchVideos(context.Background(), "algebra", 2)
	if err != nil {
		t.Fatalf("SearchVideos() error = %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("videos count = %d, want 1 (entries without an ID dropped)", len(videos))
	}
	if videos[0].VideoID != "abc123" || videos[0].ThumbnailURL != "https://i.ytimg.com/t1.jpg" {
		t.Errorf("unexpected video: %+v", videos[0])
	}
}
