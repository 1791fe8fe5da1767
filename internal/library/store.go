package library

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Record indexes one persisted artifact.
type Record struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Topic     string    `json:"topic"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrNotFound is returned when a record ID does not exist.
var ErrNotFound = fmt.Errorf("record not found")

// Store indexes persisted artifacts.
type Store interface {
	CreateRecord(ctx context.Context, r Record) (string, error)
	GetRecord(ctx context.Context, id string) (*Record, error)
	ListRecords(ctx context.Context, kind string) ([]Record, error)
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	records map[string]Record
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

func (s *MemoryStore) CreateRecord(_ context.Context, r Record) (string, error) {
	if r.Filename == "" {
		return "", fmt.Errorf("filename is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := generateID()
	r.ID = id
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.records[id] = r
	return id, nil
}

func (s *MemoryStore) GetRecord(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &r, nil
}

func (s *MemoryStore) ListRecords(_ context.Context, kind string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if kind == "" || r.Kind == kind {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func generateID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
