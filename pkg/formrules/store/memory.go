package store

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory schema store for tests and ephemeral servers.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedSchema
	closed bool
}

type storedSchema struct {
	data      []byte
	revision  int
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory schema store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]storedSchema),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(formID string, data []byte) error {
	if formID == "" {
		return ErrEmptyFormID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy data to avoid retaining caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)

	m.data[formID] = storedSchema{
		data:      stored,
		revision:  m.data[formID].revision + 1,
		updatedAt: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(formID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	s, ok := m.data[formID]
	if !ok {
		return nil, ErrNotFound
	}

	result := make([]byte, len(s.data))
	copy(result, s.data)
	return result, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for id, s := range m.data {
		infos = append(infos, Info{
			FormID:    id,
			Revision:  s.revision,
			UpdatedAt: s.updatedAt,
			Size:      int64(len(s.data)),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].FormID < infos[j].FormID
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(formID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, formID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored forms.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
