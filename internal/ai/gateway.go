// Package ai provides a provider-agnostic client for hosted text-generation
// APIs with ordered fallback between providers.
package ai

import (
	"context"
	"errors"
)

// ErrGenerationFailed marks transport or quota failures from the generation
// service. It is distinct from parse errors: it means no content at all was
// produced.
var ErrGenerationFailed = errors.New("generation failed")

// TaskType labels the kind of generation for logging and routing.
type TaskType int

const (
	TaskCourse TaskType = iota
	TaskQuiz
)

func (t TaskType) String() string {
	switch t {
	case TaskCourse:
		return "course"
	case TaskQuiz:
		return "quiz"
	default:
		return "unknown"
	}
}

// Message is a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input to a completion.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Task        TaskType  `json:"task,omitempty"`
}

// CompletionResponse is the output of a completion. The content is raw
// untrusted text; callers parse and validate it themselves.
type CompletionResponse struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// TotalTokens returns the sum of input and output tokens.
func (r CompletionResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// ModelInfo describes an available model.
type ModelInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxTokens int    `json:"max_tokens"`
}

// Provider is the interface all generation providers implement.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	Models() []ModelInfo
	HealthCheck(ctx context.Context) error
}
