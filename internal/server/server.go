// Package server exposes the generation pipeline and the library over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/opencourse/coursegen/internal/ai"
	"github.com/opencourse/coursegen/internal/content"
	"github.com/opencourse/coursegen/internal/document"
	"github.com/opencourse/coursegen/internal/generator"
	"github.com/opencourse/coursegen/internal/library"
	"github.com/opencourse/coursegen/internal/platform/config"
	"github.com/opencourse/coursegen/internal/view"
)

// Checker reports whether a dependency is usable.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// Server wires HTTP routes to the generator and the library.
type Server struct {
	gen      *generator.Generator
	lib      *library.Library
	defaults config.GenerationConfig
	checks   map[string]Checker
}

// Option configures a Server.
type Option func(*Server)

// WithReadyCheck registers a dependency probed by GET /readyz.
func WithReadyCheck(name string, c Checker) Option {
	return func(s *Server) { s.checks[name] = c }
}

// New creates a Server.
func New(gen *generator.Generator, lib *library.Library, defaults config.GenerationConfig, opts ...Option) *Server {
	s := &Server{
		gen:      gen,
		lib:      lib,
		defaults: defaults,
		checks:   make(map[string]Checker),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/courses", s.handleGenerateCourse)
	mux.HandleFunc("GET /api/courses", s.handleListCourses)
	mux.HandleFunc("GET /api/courses/{id}", s.handleGetCourse)
	mux.HandleFunc("GET /api/courses/{id}/view", s.handleCourseView)
	mux.HandleFunc("GET /api/courses/{id}/export/pdf", s.handleCoursePDF)

	mux.HandleFunc("POST /api/quizzes", s.handleGenerateQuiz)
	mux.HandleFunc("GET /api/quizzes", s.handleListQuizzes)
	mux.HandleFunc("GET /api/quizzes/{id}", s.handleGetQuiz)
	mux.HandleFunc("POST /api/quizzes/{id}/score", s.handleScoreQuiz)
	mux.HandleFunc("GET /api/quizzes/{id}/export/pdf", s.handleQuizPDF)
	mux.HandleFunc("GET /api/quizzes/{id}/export/xlsx", s.handleQuizXLSX)

	mux.HandleFunc("GET /ws/generate", s.handleGenerateWS)

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	return mux
}

type generateCourseRequest struct {
	Topic          string   `json:"topic"`
	Temperature    *float64 `json:"temperature,omitempty"`
	MaxTokens      int      `json:"max_tokens,omitempty"`
	UseSearch      bool     `json:"use_search,omitempty"`
	IncludeVideos  bool     `json:"include_videos,omitempty"`
	VideosPerTopic int      `json:"videos_per_topic,omitempty"`
	SessionID      string   `json:"session_id,omitempty"`
}

type courseResponse struct {
	ID          string          `json:"id"`
	Course      *content.Course `json:"course"`
	ReadMinutes int             `json:"read_minutes"`
}

func (s *Server) handleGenerateCourse(w http.ResponseWriter, r *http.Request) {
	var req generateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeErrorMessage(w, http.StatusBadRequest, "topic is required")
		return
	}

	course, err := s.gen.GenerateCourse(r.Context(), s.courseRequest(req, nil))
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.lib.SaveCourse(r.Context(), course)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, courseResponse{
		ID:          id,
		Course:      course,
		ReadMinutes: course.EstimatedReadMinutes(),
	})
}

// courseRequest merges a request with configured generation defaults.
func (s *Server) courseRequest(req generateCourseRequest, progress generator.Progress) generator.CourseRequest {
	temperature := s.defaults.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.defaults.MaxTokens
	}
	videosPerTopic := req.VideosPerTopic
	if videosPerTopic <= 0 {
		videosPerTopic = s.defaults.VideosPerTopic
	}
	return generator.CourseRequest{
		Topic:          req.Topic,
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		UseSearch:      req.UseSearch,
		IncludeVideos:  req.IncludeVideos,
		SearchResults:  s.defaults.SearchResults,
		VideosPerTopic: videosPerTopic,
		SessionID:      req.SessionID,
		Progress:       progress,
	}
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	records, err := s.lib.List(r.Context(), library.KindCourse)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": records})
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := s.lib.Course(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courseResponse{
		ID:          r.PathValue("id"),
		Course:      course,
		ReadMinutes: course.EstimatedReadMinutes(),
	})
}

func (s *Server) handleCourseView(w http.ResponseWriter, r *http.Request) {
	course, err := s.lib.Course(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.ProjectCourse(course))
}

func (s *Server) handleCoursePDF(w http.ResponseWriter, r *http.Request) {
	course, err := s.lib.Course(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	// Render fully before writing so a mid-render failure still yields a
	// clean error response instead of a truncated download.
	var buf bytes.Buffer
	if err := document.WritePDF(document.RenderCourse(course), &buf); err != nil {
		writeError(w, err)
		return
	}
	serveAttachment(w, &buf, "application/pdf", library.Slug(course.Title)+".pdf")
}

type generateQuizRequest struct {
	CourseID      string   `json:"course_id"`
	QuestionCount int      `json:"question_count,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	MaxTokens     int      `json:"max_tokens,omitempty"`
	SessionID     string   `json:"session_id,omitempty"`
}

type quizResponse struct {
	ID   string        `json:"id"`
	Quiz *content.Quiz `json:"quiz"`
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CourseID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "course_id is required")
		return
	}

	course, err := s.lib.Course(r.Context(), req.CourseID)
	if err != nil {
		writeError(w, err)
		return
	}

	count := req.QuestionCount
	if count <= 0 {
		count = s.defaults.QuizQuestions
	}
	temperature := s.defaults.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.defaults.MaxTokens
	}

	quiz, err := s.gen.GenerateQuiz(r.Context(), generator.QuizRequest{
		Course:        course,
		QuestionCount: count,
		Temperature:   temperature,
		MaxTokens:     maxTokens,
		SessionID:     req.SessionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.lib.SaveQuiz(r.Context(), quiz, course.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, quizResponse{ID: id, Quiz: quiz})
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	records, err := s.lib.List(r.Context(), library.KindQuiz)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quizzes": records})
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := s.lib.Quiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{ID: r.PathValue("id"), Quiz: quiz})
}

func (s *Server) handleScoreQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answers []int `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := s.lib.Quiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	score, err := quiz.Score(req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (s *Server) handleQuizPDF(w http.ResponseWriter, r *http.Request) {
	quiz, answers, err := s.quizExport(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := document.WritePDF(document.RenderQuiz(quiz, answers), &buf); err != nil {
		writeError(w, err)
		return
	}
	serveAttachment(w, &buf, "application/pdf", "quiz.pdf")
}

func (s *Server) handleQuizXLSX(w http.ResponseWriter, r *http.Request) {
	quiz, answers, err := s.quizExport(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := document.WriteQuizXLSX(quiz, answers, &buf); err != nil {
		writeError(w, err)
		return
	}
	serveAttachment(w, &buf,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "quiz.xlsx")
}

// quizExport loads the quiz and the optional graded answers from the
// "answers" query parameter, a comma-separated list of choice indexes.
func (s *Server) quizExport(r *http.Request) (*content.Quiz, []int, error) {
	quiz, err := s.lib.Quiz(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, nil, err
	}

	answers, err := parseAnswers(r.URL.Query().Get("answers"))
	if err != nil {
		return nil, nil, err
	}
	if len(answers) > len(quiz.Questions) {
		return nil, nil, fmt.Errorf("%w: %d answers for %d questions",
			content.ErrLengthMismatch, len(answers), len(quiz.Questions))
	}
	return quiz, answers, nil
}

func parseAnswers(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	answers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errBadAnswers
		}
		answers = append(answers, n)
	}
	return answers, nil
}

var errBadAnswers = errors.New("answers must be a comma-separated list of integers")

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	failures := map[string]string{}
	for name, c := range s.checks {
		if err := c.HealthCheck(r.Context()); err != nil {
			failures[name] = err.Error()
		}
	}
	if len(failures) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":   "unavailable",
			"failures": failures,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeError maps pipeline errors to HTTP statuses. Parse failures are the
// model's fault, not the caller's, so they get 422 with the structured
// detail; provider failures surface as 502.
func writeError(w http.ResponseWriter, err error) {
	var parseErr *content.ParseError
	switch {
	case errors.As(err, &parseErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "generated content rejected",
			"kind":   parseErr.Kind.String(),
			"field":  parseErr.Field,
			"reason": parseErr.Reason,
		})
	case errors.Is(err, ai.ErrGenerationFailed):
		writeErrorMessage(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, library.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, content.ErrLengthMismatch), errors.Is(err, errBadAnswers):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

func serveAttachment(w http.ResponseWriter, buf *bytes.Buffer, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("attachment write aborted", "error", err)
	}
}
