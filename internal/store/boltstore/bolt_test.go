package boltstore

import (
	"path/filepath"
	"testing"

	"github.com/yiblet/clipstash/internal/store"
	"github.com/yiblet/clipstash/internal/store/storetest"
)

func openTestStore(t *testing.T) (*BoltStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.bolt")
	st, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return st, path
}

func TestBoltStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.KV {
		st, _ := openTestStore(t)
		return st
	})
}

func TestBoltStore_PersistenceAcrossReopen(t *testing.T) {
	st, path := openTestStore(t)

	if err := st.Set("darkMode", "true"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	reopened, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if reopened.Path() != path {
		t.Errorf("Path() = %s, want %s", reopened.Path(), path)
	}

	value, err := reopened.Get("darkMode")
	if err != nil {
		t.Fatalf("Get() after reopen error: %v", err)
	}
	if value != "true" {
		t.Errorf("Get() after reopen = %q, want true", value)
	}
}
