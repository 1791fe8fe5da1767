package ai

import (
	"fmt"
	"sync"
)

// UsageRecorder records token usage per session.
type UsageRecorder interface {
	Record(sessionID string, tokens int) error
	Usage(sessionID string) (int64, error)
}

// InMemoryUsage tracks token usage in memory for the lifetime of the
// process.
type InMemoryUsage struct {
	mu    sync.RWMutex
	usage map[string]int64
}

// NewInMemoryUsage creates a new in-memory usage tracker.
func NewInMemoryUsage() *InMemoryUsage {
	return &InMemoryUsage{
		usage: make(map[string]int64),
	}
}

func (u *InMemoryUsage) Record(sessionID string, tokens int) error {
	if tokens < 0 {
		return fmt.Errorf("tokens must be non-negative, got %d", tokens)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.usage[sessionID] += int64(tokens)
	return nil
}

func (u *InMemoryUsage) Usage(sessionID string) (int64, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.usage[sessionID], nil
}
