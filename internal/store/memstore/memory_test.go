package memstore

import (
	"errors"
	"testing"

	"github.com/yiblet/clipstash/internal/store"
	"github.com/yiblet/clipstash/internal/store/storetest"
)

func TestMemoryStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.KV {
		return NewMemoryStore()
	})
}

func TestMemoryStore_FailWrites(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	if err := s.Set("k", "v1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	boom := errors.New("quota exceeded")
	s.FailWrites(boom)

	if err := s.Set("k", "v2"); !errors.Is(err, boom) {
		t.Errorf("Set() error = %v, want %v", err, boom)
	}
	if err := s.Delete("k"); !errors.Is(err, boom) {
		t.Errorf("Delete() error = %v, want %v", err, boom)
	}

	// Failed writes leave the old value in place
	if v, err := s.Get("k"); err != nil || v != "v1" {
		t.Errorf("Get() = %q, %v; want v1, nil", v, err)
	}

	s.FailWrites(nil)
	if err := s.Set("k", "v3"); err != nil {
		t.Errorf("Set() after recovery error: %v", err)
	}
	if got := s.Writes(); got != 2 {
		t.Errorf("Writes() = %d, want 2", got)
	}
}

func TestMemoryStore_FailReads(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	boom := errors.New("corrupted")
	s.FailReads(boom)

	if _, err := s.Get("k"); !errors.Is(err, boom) {
		t.Errorf("Get() error = %v, want %v", err, boom)
	}
	if _, err := s.List(); !errors.Is(err, boom) {
		t.Errorf("List() error = %v, want %v", err, boom)
	}
}
