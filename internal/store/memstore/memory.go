// Package memstore provides an in-memory implementation of store.KV.
// This implementation is designed for fast unit testing and does not persist data.
package memstore

import (
	"fmt"
	"maps"
	"sync"

	"github.com/yiblet/clipstash/internal/store"
)

// MemoryStore is an in-memory implementation of store.KV.
// It is thread-safe via a mutex. Data exists only for the lifetime of the
// process. Reads and writes can be made to fail for exercising error paths.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	readErr  error
	writeErr error
	writes   int
}

// NewMemoryStore creates a new, empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

// Get retrieves the value for key.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.readErr != nil {
		return "", m.readErr
	}

	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}

	return value, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	m.data[key] = value
	m.writes++
	return nil
}

// List returns a copy of all key-value pairs.
func (m *MemoryStore) List() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.readErr != nil {
		return nil, m.readErr
	}

	// Return copy to prevent external modification
	return maps.Clone(m.data), nil
}

// Delete removes a key.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	if _, exists := m.data[key]; !exists {
		return fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}

	delete(m.data, key)
	m.writes++
	return nil
}

// Close releases resources (no-op for memory store).
func (m *MemoryStore) Close() error {
	return nil
}

// FailReads makes every subsequent Get and List return err. Pass nil to
// restore normal behaviour.
func (m *MemoryStore) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes every subsequent Set and Delete return err. Pass nil to
// restore normal behaviour.
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes reports how many successful Set and Delete calls were made.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
