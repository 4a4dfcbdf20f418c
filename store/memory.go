package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the score for the process lifetime
type MemoryStore struct {
	mu    sync.Mutex
	score int
}

func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{score: initial}
}

func (m *MemoryStore) Load(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

func (m *MemoryStore) Save(_ context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	return nil
}

func (m *MemoryStore) SaveIfHigher(_ context.Context, score int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.score {
		m.score = score
	}
	return m.score, nil
}

func (m *MemoryStore) Close() error { return nil }
