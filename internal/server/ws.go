package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/opencourse/coursegen/internal/ai"
	"github.com/opencourse/coursegen/internal/content"
	"github.com/opencourse/coursegen/internal/generator"
)

// Generation can take a minute or more against slow providers.
const wsGenerateTimeout = 5 * time.Minute

// wsEvent is one message on the generation stream. Progress events carry a
// stage, the terminal event carries either the result or an error.
type wsEvent struct {
	Type        string          `json:"type"` // "progress", "result" or "error"
	Stage       generator.Stage `json:"stage,omitempty"`
	ID          string          `json:"id,omitempty"`
	Course      *content.Course `json:"course,omitempty"`
	ReadMinutes int             `json:"read_minutes,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// handleGenerateWS runs one course generation over a websocket, streaming
// stage transitions as they happen. The client sends a single request
// message and receives progress events followed by a terminal result or
// error event.
func (s *Server) handleGenerateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithTimeout(r.Context(), wsGenerateTimeout)
	defer cancel()

	var req generateCourseRequest
	if err := wsjson.Read(ctx, conn, &req); err != nil {
		slog.Debug("websocket read failed", "error", err)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		sendWS(ctx, conn, wsEvent{Type: "error", Error: "topic is required"})
		conn.Close(websocket.StatusPolicyViolation, "topic is required")
		return
	}

	progress := func(stage generator.Stage) {
		sendWS(ctx, conn, wsEvent{Type: "progress", Stage: stage})
	}

	course, err := s.gen.GenerateCourse(ctx, s.courseRequest(req, progress))
	if err != nil {
		sendWS(ctx, conn, wsEvent{Type: "error", Error: wsErrorMessage(err)})
		conn.Close(websocket.StatusInternalError, "generation failed")
		return
	}

	id, err := s.lib.SaveCourse(ctx, course)
	if err != nil {
		sendWS(ctx, conn, wsEvent{Type: "error", Error: "saving course failed"})
		conn.Close(websocket.StatusInternalError, "saving course failed")
		return
	}

	sendWS(ctx, conn, wsEvent{
		Type:        "result",
		ID:          id,
		Course:      course,
		ReadMinutes: course.EstimatedReadMinutes(),
	})
	conn.Close(websocket.StatusNormalClosure, "")
}

func sendWS(ctx context.Context, conn *websocket.Conn, ev wsEvent) {
	if err := wsjson.Write(ctx, conn, ev); err != nil {
		slog.Debug("websocket write failed", "error", err)
	}
}

// wsErrorMessage keeps internal detail out of the stream while preserving
// the categories callers can act on.
func wsErrorMessage(err error) string {
	var parseErr *content.ParseError
	switch {
	case errors.As(err, &parseErr):
		return "generated content rejected: " + parseErr.Error()
	case errors.Is(err, ai.ErrGenerationFailed):
		return err.Error()
	default:
		return "internal error"
	}
}
