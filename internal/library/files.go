// Package library persists generated courses and quizzes. Payloads live in
// versioned JSON files with deterministic names; a record index (in memory
// or PostgreSQL) tracks what exists.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/opencourse/coursegen/internal/content"
)

// SchemaVersion is written into every persisted file. Files with a
// different version are rejected at load rather than decoded on a guess.
const SchemaVersion = 1

// Artifact kinds.
const (
	KindCourse = "course"
	KindQuiz   = "quiz"
)

// ErrSchemaVersion is returned when a file carries an unknown schema
// version.
var ErrSchemaVersion = errors.New("unsupported schema version")

// envelope wraps a persisted payload with its version and provenance.
type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Kind          string          `json:"kind"`
	Topic         string          `json:"topic"`
	SavedAt       time.Time       `json:"saved_at"`
	Payload       json.RawMessage `json:"payload"`
}

// FileStore reads and writes artifact files under a single directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Filename builds the deterministic name for an artifact: slugged topic,
// UTC timestamp, kind.
func Filename(topic, kind string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.json", Slug(topic), at.UTC().Format("20060102T150405Z"), kind)
}

// SaveCourse writes a course to a new file and returns the filename.
func (s *FileStore) SaveCourse(c *content.Course, topic string, at time.Time) (string, error) {
	return s.save(c, topic, KindCourse, at)
}

// SaveQuiz writes a quiz to a new file and returns the filename.
func (s *FileStore) SaveQuiz(q *content.Quiz, topic string, at time.Time) (string, error) {
	return s.save(q, topic, KindQuiz, at)
}

func (s *FileStore) save(payload any, topic, kind string, at time.Time) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal %s payload: %w", kind, err)
	}

	env := envelope{
		SchemaVersion: SchemaVersion,
		Kind:          kind,
		Topic:         topic,
		SavedAt:       at.UTC(),
		Payload:       raw,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}

	name := Filename(topic, kind, at)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s file: %w", kind, err)
	}
	return name, nil
}

// LoadCourse reads, version-checks and schema-validates a persisted course.
func (s *FileStore) LoadCourse(filename string) (*content.Course, error) {
	payload, err := s.load(filename, KindCourse, courseSchema)
	if err != nil {
		return nil, err
	}
	var c content.Course
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("unmarshal course: %w", err)
	}
	return &c, nil
}

// LoadQuiz reads, version-checks and schema-validates a persisted quiz.
func (s *FileStore) LoadQuiz(filename string) (*content.Quiz, error) {
	payload, err := s.load(filename, KindQuiz, quizSchema)
	if err != nil {
		return nil, err
	}
	var q content.Quiz
	if err := json.Unmarshal(payload, &q); err != nil {
		return nil, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return &q, nil
}

func (s *FileStore) load(filename, kind, schema string) (json.RawMessage, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", kind, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrSchemaVersion, env.SchemaVersion, SchemaVersion)
	}
	if env.Kind != kind {
		return nil, fmt.Errorf("file %s holds a %s, not a %s", filename, env.Kind, kind)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(env.Payload),
	)
	if err != nil {
		return nil, fmt.Errorf("validate %s payload: %w", kind, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("persisted %s payload invalid: %s", kind, result.Errors()[0].String())
	}

	return env.Payload, nil
}
