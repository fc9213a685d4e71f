package flowstore

import (
	"context"
	"sync"
)

// Memory keeps snapshots for the life of the process.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	key, err := requireKey(key)
	if err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

func (m *Memory) Put(_ context.Context, key string, payload []byte) error {
	key, err := requireKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[key] = append([]byte(nil), payload...)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	key, err := requireKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
