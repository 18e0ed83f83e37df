// Package store defines the persistence interface for clipstash. The
// history repository keeps its whole clip collection under a single key,
// and user preferences live next to it, so all a backend has to provide
// is a string-keyed key-value store.
package store

import (
	"errors"
)

// ErrNotFound is returned by Get and Delete when a key does not exist.
var ErrNotFound = errors.New("key not found")

// KV is a string-keyed key-value store.
type KV interface {
	// Get retrieves the value stored under key.
	// Returns ErrNotFound (possibly wrapped) if the key does not exist.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// List returns all key-value pairs.
	List() (map[string]string, error)

	// Delete removes a key.
	// Returns ErrNotFound (possibly wrapped) if the key does not exist.
	Delete(key string) error

	// Close releases any resources (DB connections, file handles, etc.).
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Backends lists every supported backend name.
var Backends = []string{BackendSQLite, BackendBolt, BackendMemory}

// Lookup returns the value for key and whether it was present. Errors other
// than ErrNotFound are returned as-is.
func Lookup(kv KV, key string) (string, bool, error) {
	value, err := kv.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}
