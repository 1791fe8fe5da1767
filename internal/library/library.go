package library

import (
	"context"
	"fmt"
	"time"

	"github.com/opencourse/coursegen/internal/content"
)

// Library combines file persistence with the record index. Saving writes
// the payload file first, then indexes it; a file without a record is
// harmless, a record without a file is not.
type Library struct {
	files   *FileStore
	records Store
}

// New assembles a library over a file store and a record store.
func New(files *FileStore, records Store) *Library {
	return &Library{files: files, records: records}
}

// SaveCourse persists a course and returns the record ID.
func (l *Library) SaveCourse(ctx context.Context, c *content.Course) (string, error) {
	now := time.Now()
	name, err := l.files.SaveCourse(c, c.Title, now)
	if err != nil {
		return "", err
	}
	id, err := l.records.CreateRecord(ctx, Record{
		Kind:      KindCourse,
		Topic:     c.Title,
		Filename:  name,
		CreatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("index course: %w", err)
	}
	return id, nil
}

// SaveQuiz persists a quiz for the named topic and returns the record ID.
func (l *Library) SaveQuiz(ctx context.Context, q *content.Quiz, topic string) (string, error) {
	now := time.Now()
	name, err := l.files.SaveQuiz(q, topic, now)
	if err != nil {
		return "", err
	}
	id, err := l.records.CreateRecord(ctx, Record{
		Kind:      KindQuiz,
		Topic:     topic,
		Filename:  name,
		CreatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("index quiz: %w", err)
	}
	return id, nil
}

// Course loads a persisted course by record ID.
func (l *Library) Course(ctx context.Context, id string) (*content.Course, error) {
	r, err := l.record(ctx, id, KindCourse)
	if err != nil {
		return nil, err
	}
	return l.files.LoadCourse(r.Filename)
}

// Quiz loads a persisted quiz by record ID.
func (l *Library) Quiz(ctx context.Context, id string) (*content.Quiz, error) {
	r, err := l.record(ctx, id, KindQuiz)
	if err != nil {
		return nil, err
	}
	return l.files.LoadQuiz(r.Filename)
}

// List returns records of the given kind, newest first. An empty kind
// returns everything.
func (l *Library) List(ctx context.Context, kind string) ([]Record, error) {
	return l.records.ListRecords(ctx, kind)
}

func (l *Library) record(ctx context.Context, id, kind string) (*Record, error) {
	r, err := l.records.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Kind != kind {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotFound, id, r.Kind)
	}
	return r, nil
}
