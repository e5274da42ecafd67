package store

import (
	"sort"
	"sync"
)

// MemoryStore keeps blobs in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]map[string][]byte)}
}

var _ BlobStore = (*MemoryStore)(nil)

func (m *MemoryStore) Get(kind, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[kind][id]
	if !ok {
		return nil, &OpError{Op: "store.get", Kind: kind, ID: id, Err: ErrNotFound}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) List(kind string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.blobs[kind]))
	for id := range m.blobs[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryStore) Put(kind, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blobs[kind] == nil {
		m.blobs[kind] = make(map[string][]byte)
	}
	m.blobs[kind][id] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Delete(kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[kind][id]; !ok {
		return &OpError{Op: "store.delete", Kind: kind, ID: id, Err: ErrNotFound}
	}
	delete(m.blobs[kind], id)
	return nil
}
