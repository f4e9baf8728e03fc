package store

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process key-value store. State is lost when the process
// exits.
type Memory struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, keys ...string) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string][]byte, len(keys))

	for _, k := range keys {
		if v, ok := m.items[k]; ok {
			out[k] = slices.Clone(v)
		}
	}

	return out, nil
}

func (m *Memory) Save(_ context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range entries {
		m.items[k] = slices.Clone(v)
	}

	return nil
}
