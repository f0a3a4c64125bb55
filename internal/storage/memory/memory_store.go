package memory

import (
	"context"
	"sync"

	"github.com/brk3/habits/internal/storage"
)

// Store keeps values in process memory. Nothing survives Close.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailGet and FailSet, when set, are returned by Get and Set.
	FailGet error
	FailSet error
}

func New() *Store {
	return &Store{data: map[string][]byte{}}
}

func (m *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailGet != nil {
		return nil, false, m.FailGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, v...), true, nil
}

func (m *Store) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSet != nil {
		return m.FailSet
	}
	m.data[key] = append([]byte{}, value...)
	return nil
}

func (m *Store) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = map[string][]byte{}
	return nil
}

func (m *Store) Close() error {
	return nil
}

var _ storage.KV = (*Store)(nil)
