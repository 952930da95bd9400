package storage

import (
	"context"
	"sync"
)

// InMemoryRepository is a map-backed Repository used in tests. Safe for
// concurrent use.
type InMemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: make(map[string][]byte)}
}

func (r *InMemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (r *InMemoryRepository) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = stored
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *InMemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		out := make([]byte, len(v))
		copy(out, v)
		result[k] = out
	}
	return result, nil
}

func (r *InMemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[string][]byte)
	return nil
}
