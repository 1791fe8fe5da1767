// Package content defines the validated course and quiz models built from
// raw generation output, and the parser that produces them.
package content

import (
	"net/url"
	"strings"
)

// Reading speed used by EstimatedReadMinutes, in words per minute.
const readingRateWPM = 200

// Course is the top-level generated educational artifact.
type Course struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	LearningObjectives []string `json:"learning_objectives"`
	Introduction       string   `json:"introduction"`
	Topics             []Topic  `json:"topics"`
	Summary            string   `json:"summary"`
	KeyTakeaways       []string `json:"key_takeaways"`
}

// Topic is a top-level course section.
type Topic struct {
	Name          string         `json:"name"`
	Content       string         `json:"content"`
	Subtopics     []Subtopic     `json:"subtopics"`
	Examples      []string       `json:"examples"`
	SearchResults []SearchResult `json:"search_results"`
	Videos        []VideoRef     `json:"videos"`
}

// Subtopic is a nested section. Nesting stops here: a subtopic cannot
// contain further subtopics.
type Subtopic struct {
	Name          string         `json:"name"`
	Content       string         `json:"content"`
	Examples      []string       `json:"examples"`
	SearchResults []SearchResult `json:"search_results"`
	Videos        []VideoRef     `json:"videos"`
}

// SearchResult is a web-search enrichment entry attached to a topic.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// VideoRef references an external video by its platform identifier. The ID
// is opaque and never dereferenced.
type VideoRef struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// TopicCount returns the number of top-level topics.
func (c *Course) TopicCount() int {
	return len(c.Topics)
}

// EstimatedReadMinutes returns the estimated reading time for the whole
// course, rounded up, never less than 1.
func (c *Course) EstimatedReadMinutes() int {
	words := countWords(c.Description) + countWords(c.Introduction) + countWords(c.Summary)
	for _, s := range c.LearningObjectives {
		words += countWords(s)
	}
	for _, s := range c.KeyTakeaways {
		words += countWords(s)
	}
	for _, t := range c.Topics {
		words += countWords(t.Name) + countWords(t.Content)
		for _, e := range t.Examples {
			words += countWords(e)
		}
		for _, st := range t.Subtopics {
			words += countWords(st.Name) + countWords(st.Content)
			for _, e := range st.Examples {
				words += countWords(e)
			}
		}
	}

	minutes := (words + readingRateWPM - 1) / readingRateWPM
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// validate checks the course invariants in field declaration order and
// reports the first violation found.
func (c *Course) validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return schemaViolation("title", "must be non-empty")
	}
	if len(c.Topics) == 0 {
		return schemaViolation("topics", "expected at least 1 entry")
	}
	return nil
}

// normalize coerces absent enrichment fields to empty sequences and drops
// enrichment entries that fail their own syntactic checks. Enrichment is
// best-effort and never a parse error.
func (c *Course) normalize() {
	c.Title = strings.TrimSpace(c.Title)
	if c.LearningObjectives == nil {
		c.LearningObjectives = []string{}
	}
	if c.KeyTakeaways == nil {
		c.KeyTakeaways = []string{}
	}
	for i := range c.Topics {
		t := &c.Topics[i]
		if t.Subtopics == nil {
			t.Subtopics = []Subtopic{}
		}
		t.Examples = emptyIfNil(t.Examples)
		t.SearchResults = filterSearchResults(t.SearchResults)
		t.Videos = filterVideos(t.Videos)
		for j := range t.Subtopics {
			st := &t.Subtopics[j]
			st.Examples = emptyIfNil(st.Examples)
			st.SearchResults = filterSearchResults(st.SearchResults)
			st.Videos = filterVideos(st.Videos)
		}
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// filterSearchResults drops results whose URL is not a syntactically valid
// absolute URI.
func filterSearchResults(in []SearchResult) []SearchResult {
	out := make([]SearchResult, 0, len(in))
	for _, r := range in {
		if validURL(r.URL) {
			out = append(out, r)
		}
	}
	return out
}

// filterVideos drops references with an empty video ID.
func filterVideos(in []VideoRef) []VideoRef {
	out := make([]VideoRef, 0, len(in))
	for _, v := range in {
		if v.VideoID != "" {
			out = append(out, v)
		}
	}
	return out
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
