// Package boltstore implements store.KV on top of a bbolt database file.
package boltstore

import (
	"bytes"
	"fmt"
	"time"

	"github.com/yiblet/clipstash/internal/store"
	"go.etcd.io/bbolt"
)

const bucketKV = "kv" // key: store key -> raw value

// BoltStore is a bbolt-backed implementation of store.KV.
type BoltStore struct {
	db   *bbolt.DB
	path string
}

// NewBoltStore opens (creating if needed) a bbolt database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketKV))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (b *BoltStore) Path() string {
	return b.path
}

// Get retrieves the value for key.
func (b *BoltStore) Get(key string) (string, error) {
	var (
		value string
		found bool
	)

	err := b.db.View(func(tx *bbolt.Tx) error {
		data, ok := lookup(tx.Bucket([]byte(bucketKV)), key)
		if !ok {
			return nil
		}
		// data is only valid inside the transaction
		value = string(data)
		found = true
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	if !found {
		return "", fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}

	return value, nil
}

// Set stores value under key.
func (b *BoltStore) Set(key, value string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketKV)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// List returns all key-value pairs.
func (b *BoltStore) List() (map[string]string, error) {
	result := make(map[string]string)

	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketKV)).ForEach(func(k, v []byte) error {
			result[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	return result, nil
}

// Delete removes a key.
func (b *BoltStore) Delete(key string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketKV))
		if _, ok := lookup(bucket, key); !ok {
			return fmt.Errorf("%w: %s", store.ErrNotFound, key)
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (b *BoltStore) Close() error {
	return b.db.Close()
}

// lookup finds key with a cursor so that empty values are distinguishable
// from missing keys.
func lookup(bucket *bbolt.Bucket, key string) ([]byte, bool) {
	k, v := bucket.Cursor().Seek([]byte(key))
	if k == nil || !bytes.Equal(k, []byte(key)) {
		return nil, false
	}
	return v, true
}
