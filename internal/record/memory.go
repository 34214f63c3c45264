package record

import (
	"context"
	"sync"
)

// Memory is an in-memory Store for tests and single-node development.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string]map[string][]byte{}}
}

// Get returns a copy of the stored document.
func (m *Memory) Get(_ context.Context, entity, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.data[entity][id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

// Put stores a copy of the document.
func (m *Memory) Put(_ context.Context, entity, id string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[entity] == nil {
		m.data[entity] = map[string][]byte{}
	}
	m.data[entity][id] = append([]byte(nil), doc...)
	return nil
}

// Delete removes a record. Deleting a missing record is not an error.
func (m *Memory) Delete(_ context.Context, entity, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[entity], id)
	return nil
}

// List returns copies of all documents under the entity.
func (m *Memory) List(_ context.Context, entity string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.data[entity]))
	for id, doc := range m.data[entity] {
		out[id] = append([]byte(nil), doc...)
	}
	return out, nil
}
