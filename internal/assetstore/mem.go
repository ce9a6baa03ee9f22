package assetstore

import (
	"fmt"
	"sync"

	"github.com/Faultbox/gtgrass/pkg/grass"
)

// MemStore is an in-memory Store. Values are deep-copied in and out.
type MemStore struct {
	meshes  map[string]*grass.Buffers
	records map[string]*grass.GrassData
	mu      sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		meshes:  make(map[string]*grass.Buffers),
		records: make(map[string]*grass.GrassData),
	}
}

// Exists reports whether an asset is stored under key.
func (m *MemStore) Exists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, mesh := m.meshes[key]
	_, rec := m.records[key]
	return mesh || rec
}

// Delete removes the asset under key.
func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, mesh := m.meshes[key]
	_, rec := m.records[key]
	if !mesh && !rec {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	delete(m.meshes, key)
	delete(m.records, key)
	return nil
}

// CreateMesh stores a copy of mesh.
func (m *MemStore) CreateMesh(key string, mesh *grass.Buffers) error {
	if _, err := CleanKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	m.meshes[key] = mesh.Clone()
	return nil
}

// LoadMesh returns a copy of the mesh under key.
func (m *MemStore) LoadMesh(key string) (*grass.Buffers, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mesh, ok := m.meshes[key]
	if !ok {
		m.misses++
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	m.hits++
	return mesh.Clone(), nil
}

// CreateData stores a copy of the record without its mesh.
func (m *MemStore) CreateData(key string, data *grass.GrassData) error {
	if _, err := CleanKey(key); err != nil {
		return err
	}
	rec := data.Clone()
	rec.Mesh = nil
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.meshes, key)
	m.records[key] = rec
	return nil
}

// LoadData returns a copy of the record under key.
func (m *MemStore) LoadData(key string) (*grass.GrassData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok {
		m.misses++
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	m.hits++
	return rec.Clone(), nil
}

// Len returns the number of stored assets.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.meshes) + len(m.records)
}

// Stats returns load hit and miss counts.
func (m *MemStore) Stats() (hits, misses int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits, m.misses
}
