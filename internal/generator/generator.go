// Package generator orchestrates course and quiz generation: prompt
// rendering, model completion, parsing and enrichment.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/opencourse/coursegen/internal/ai"
	"github.com/opencourse/coursegen/internal/content"
	"github.com/opencourse/coursegen/internal/prompt"
	"github.com/opencourse/coursegen/internal/search"
)

// Stage labels a phase of a generation run for progress reporting.
type Stage string

const (
	StageSearching  Stage = "searching"
	StageGenerating Stage = "generating"
	StageParsing    Stage = "parsing"
	StageEnriching  Stage = "enriching"
)

// Progress receives stage transitions during a run. Callbacks happen on the
// calling goroutine before each phase starts.
type Progress func(stage Stage)

// Completer produces a completion for a request. Satisfied by ai.Router and
// by individual providers.
type Completer interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (ai.CompletionResponse, error)
}

// Generator runs the generation pipeline.
type Generator struct {
	completer Completer
	prompts   *prompt.Store
	enricher  *search.Enricher
	searcher  search.Searcher
	usage     ai.UsageRecorder
}

// Option configures a Generator.
type Option func(*Generator)

// WithEnricher attaches post-parse topic enrichment.
func WithEnricher(e *search.Enricher) Option {
	return func(g *Generator) { g.enricher = e }
}

// WithSearcher enables search-grounded prompts.
func WithSearcher(s search.Searcher) Option {
	return func(g *Generator) { g.searcher = s }
}

// WithUsage records token usage per session.
func WithUsage(u ai.UsageRecorder) Option {
	return func(g *Generator) { g.usage = u }
}

// New creates a Generator over a completer and a prompt store.
func New(completer Completer, prompts *prompt.Store, opts ...Option) *Generator {
	g := &Generator{completer: completer, prompts: prompts}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CourseRequest describes one course generation run.
type CourseRequest struct {
	Topic          string  `json:"topic"`
	Temperature    float64 `json:"temperature,omitempty"`
	MaxTokens      int     `json:"max_tokens,omitempty"`
	UseSearch      bool    `json:"use_search,omitempty"`
	IncludeVideos  bool    `json:"include_videos,omitempty"`
	SearchResults  int     `json:"search_results,omitempty"`
	VideosPerTopic int     `json:"videos_per_topic,omitempty"`
	SessionID      string  `json:"session_id,omitempty"`

	Progress Progress `json:"-"`
}

// QuizRequest describes one quiz generation run.
type QuizRequest struct {
	Course        *content.Course `json:"-"`
	QuestionCount int             `json:"question_count,omitempty"`
	Temperature   float64         `json:"temperature,omitempty"`
	MaxTokens     int             `json:"max_tokens,omitempty"`
	SessionID     string          `json:"session_id,omitempty"`

	Progress Progress `json:"-"`
}

// GenerateCourse runs the full course pipeline for a topic.
func (g *Generator) GenerateCourse(ctx context.Context, req CourseRequest) (*content.Course, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("topic is required")
	}

	started := time.Now()

	var searchContext string
	if req.UseSearch && g.searcher != nil {
		report(req.Progress, StageSearching)
		searchContext = g.searchContext(ctx, req.Topic, req.SearchResults)
	}

	userPrompt, err := g.prompts.Course(prompt.CourseParams{
		Topic:         req.Topic,
		SearchContext: searchContext,
	})
	if err != nil {
		return nil, err
	}

	report(req.Progress, StageGenerating)
	resp, err := g.complete(ctx, userPrompt, ai.TaskCourse, req.Temperature, req.MaxTokens, req.SessionID)
	if err != nil {
		return nil, err
	}

	report(req.Progress, StageParsing)
	course, err := content.ParseCourse(resp.Content)
	if err != nil {
		return nil, err
	}

	if req.IncludeVideos && g.enricher != nil {
		report(req.Progress, StageEnriching)
		g.enricher.EnrichCourse(ctx, course, search.Options{
			SearchResults:  req.SearchResults,
			VideosPerTopic: req.VideosPerTopic,
		})
	}

	slog.Info("course generated",
		"topic", req.Topic,
		"topics", course.TopicCount(),
		"model", resp.Model,
		"duration", time.Since(started),
	)
	return course, nil
}

// GenerateQuiz produces a quiz grounded in an already generated course.
func (g *Generator) GenerateQuiz(ctx context.Context, req QuizRequest) (*content.Quiz, error) {
	if req.Course == nil {
		return nil, fmt.Errorf("course is required")
	}
	if req.QuestionCount < 1 {
		return nil, fmt.Errorf("question count must be positive, got %d", req.QuestionCount)
	}

	userPrompt, err := g.prompts.Quiz(prompt.QuizParams{
		CourseContext: courseContext(req.Course),
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		return nil, err
	}

	report(req.Progress, StageGenerating)
	resp, err := g.complete(ctx, userPrompt, ai.TaskQuiz, req.Temperature, req.MaxTokens, req.SessionID)
	if err != nil {
		return nil, err
	}

	report(req.Progress, StageParsing)
	quiz, err := content.ParseQuiz(resp.Content)
	if err != nil {
		return nil, err
	}

	slog.Info("quiz generated",
		"course", req.Course.Title,
		"questions", len(quiz.Questions),
		"model", resp.Model,
	)
	return quiz, nil
}

func (g *Generator) complete(ctx context.Context, userPrompt string, task ai.TaskType, temperature float64, maxTokens int, sessionID string) (ai.CompletionResponse, error) {
	resp, err := g.completer.Complete(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: "system", Content: g.prompts.SystemPrompt()},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Task:        task,
	})
	if err != nil {
		return ai.CompletionResponse{}, err
	}

	if g.usage != nil && sessionID != "" {
		if err := g.usage.Record(sessionID, resp.TotalTokens()); err != nil {
			slog.Warn("usage recording failed", "session", sessionID, "error", err)
		}
	}
	return resp, nil
}

// searchContext fetches top web results for the topic and flattens them into
// prompt text. Failures degrade to an ungrounded prompt.
func (g *Generator) searchContext(ctx context.Context, topic string, n int) string {
	if n < 1 {
		n = 3
	}
	results, err := g.searcher.Search(ctx, topic, n)
	if err != nil {
		slog.Warn("search grounding failed, generating without it", "topic", topic, "error", err)
		return ""
	}

	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "- %s: %s\n", r.Title, r.Snippet)
	}
	return b.String()
}

// courseContext flattens a course into text for the quiz prompt: title,
// objectives and per-topic content.
func courseContext(c *content.Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", c.Title)
	if len(c.LearningObjectives) > 0 {
		b.WriteString("Learning objectives:\n")
		for _, obj := range c.LearningObjectives {
			fmt.Fprintf(&b, "- %s\n", obj)
		}
	}
	for _, t := range c.Topics {
		fmt.Fprintf(&b, "\nTopic: %s\n%s\n", t.Name, t.Content)
		for _, st := range t.Subtopics {
			fmt.Fprintf(&b, "Subtopic: %s\n%s\n", st.Name, st.Content)
		}
	}
	return b.String()
}

func report(p Progress, stage Stage) {
	if p != nil {
		p(stage)
	}
}
