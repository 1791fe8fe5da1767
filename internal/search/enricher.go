package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opencourse/coursegen/internal/content"
	"github.com/opencourse/coursegen/internal/platform/cache"
)

// Searcher finds web results for a query.
type Searcher interface {
	Search(ctx context.Context, query string, n int) ([]content.SearchResult, error)
}

// VideoSearcher finds video references for a query.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, max int) ([]content.VideoRef, error)
}

// Enricher attaches search results and video references to course topics.
// Every lookup is best-effort: failures are logged and downgraded to empty
// results, never propagated.
type Enricher struct {
	searcher Searcher
	videos   VideoSearcher
	cache    *cache.Cache // optional
	cacheTTL time.Duration
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithCache memoizes lookups in Redis with the given TTL.
func WithCache(c *cache.Cache, ttl time.Duration) EnricherOption {
	return func(e *Enricher) {
		e.cache = c
		e.cacheTTL = ttl
	}
}

// NewEnricher creates an Enricher. Either client may be nil to disable that
// kind of enrichment.
func NewEnricher(searcher Searcher, videos VideoSearcher, opts ...EnricherOption) *Enricher {
	e := &Enricher{searcher: searcher, videos: videos}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Options controls what gets attached during enrichment.
type Options struct {
	SearchResults  int // per topic; 0 disables search enrichment
	VideosPerTopic int // per topic and subtopic; 0 disables video enrichment
}

// EnrichCourse attaches enrichment to every topic, and videos to every
// subtopic, querying by course title plus section name.
func (e *Enricher) EnrichCourse(ctx context.Context, c *content.Course, opts Options) {
	for i := range c.Topics {
		t := &c.Topics[i]

		if e.searcher != nil && opts.SearchResults > 0 {
			query := fmt.Sprintf("%s %s", c.Title, t.Name)
			t.SearchResults = e.lookupSearch(ctx, query, opts.SearchResults)
		}
		if e.videos != nil && opts.VideosPerTopic > 0 {
			query := fmt.Sprintf("%s %s tutorial", c.Title, t.Name)
			t.Videos = e.lookupVideos(ctx, query, opts.VideosPerTopic)

			for j := range t.Subtopics {
				st := &t.Subtopics[j]
				query := fmt.Sprintf("%s %s tutorial", t.Name, st.Name)
				st.Videos = e.lookupVideos(ctx, query, opts.VideosPerTopic)
			}
		}
	}
}

func (e *Enricher) lookupSearch(ctx context.Context, query string, n int) []content.SearchResult {
	key := fmt.Sprintf("search:%d:%s", n, query)

	var cached []content.SearchResult
	if e.cacheGet(ctx, key, &cached) {
		return cached
	}

	results, err := e.searcher.Search(ctx, query, n)
	if err != nil {
		slog.Warn("search enrichment failed", "query", query, "error", err)
		return []content.SearchResult{}
	}

	e.cacheSet(ctx, key, results)
	return results
}

func (e *Enricher) lookupVideos(ctx context.Context, query string, max int) []content.VideoRef {
	key := fmt.Sprintf("videos:%d:%s", max, query)

	var cached []content.VideoRef
	if e.cacheGet(ctx, key, &cached) {
		return cached
	}

	videos, err := e.videos.SearchVideos(ctx, query, max)
	if err != nil {
		slog.Warn("video enrichment failed", "query", query, "error", err)
		return []content.VideoRef{}
	}

	e.cacheSet(ctx, key, videos)
	return videos
}

// cacheGet reports whether key was found. Cache errors count as misses.
func (e *Enricher) cacheGet(ctx context.Context, key string, v any) bool {
	if e.cache == nil {
		return false
	}
	err := e.cache.GetJSON(ctx, key, v)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Debug("enrichment cache read failed", "key", key, "error", err)
	}
	return false
}

func (e *Enricher) cacheSet(ctx context.Context, key string, v any) {
	if e.cache == nil {
		return
	}
	if err := e.cache.SetJSON(ctx, key, v, e.cacheTTL); err != nil {
		slog.Debug("enrichment cache write failed", "key", key, "error", err)
	}
}
