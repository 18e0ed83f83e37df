// Package storetest holds the behavioural tests every store.KV backend
// must pass. Backends call Run from their own _test.go files.
package storetest

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/yiblet/clipstash/internal/store"
)

// Factory opens a fresh, empty store for a single subtest.
type Factory func(t *testing.T) store.KV

// Run executes the shared KV contract against stores produced by open.
func Run(t *testing.T, open Factory) {
	t.Run("GetAndSet", func(t *testing.T) { testGetAndSet(t, open(t)) })
	t.Run("List", func(t *testing.T) { testList(t, open(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, open(t)) })
	t.Run("EmptyStore", func(t *testing.T) { testEmptyStore(t, open(t)) })
	t.Run("LargeValue", func(t *testing.T) { testLargeValue(t, open(t)) })
	t.Run("ConcurrentOperations", func(t *testing.T) { testConcurrent(t, open(t)) })
}

func testGetAndSet(t *testing.T, kv store.KV) {
	defer kv.Close()

	if err := kv.Set("key1", "value1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	value, err := kv.Get("key1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if value != "value1" {
		t.Errorf("Get() = %q, want %q", value, "value1")
	}

	// Update the value
	if err := kv.Set("key1", "value2"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	value, err = kv.Get("key1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if value != "value2" {
		t.Errorf("Get() after update = %q, want %q", value, "value2")
	}

	// Empty values are legal and distinct from missing keys
	if err := kv.Set("empty", ""); err != nil {
		t.Fatalf("Set(empty) error: %v", err)
	}
	if value, err := kv.Get("empty"); err != nil || value != "" {
		t.Errorf("Get(empty) = %q, %v; want \"\", nil", value, err)
	}
}

func testList(t *testing.T, kv store.KV) {
	defer kv.Close()

	want := map[string]string{
		"key1": "value1",
		"key2": "value2",
		"key3": "value3",
	}
	for k, v := range want {
		if err := kv.Set(k, v); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
	}

	list, err := kv.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != len(want) {
		t.Errorf("List() returned %d items, want %d", len(list), len(want))
	}
	for k, v := range want {
		if list[k] != v {
			t.Errorf("List()[%q] = %q, want %q", k, list[k], v)
		}
	}

	// Modifying the result must not affect the store
	list["key1"] = "modified"
	if value, _ := kv.Get("key1"); value != "value1" {
		t.Error("Modifying List() result affected the store")
	}
}

func testDelete(t *testing.T, kv store.KV) {
	defer kv.Close()

	if err := kv.Set("key1", "value1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := kv.Delete("key1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	if _, err := kv.Get("key1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
	if err := kv.Delete("key1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func testEmptyStore(t *testing.T, kv store.KV) {
	defer kv.Close()

	if _, err := kv.Get("nonexistent"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() on empty store error = %v, want ErrNotFound", err)
	}

	list, err := kv.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() on empty store returned %d items, want 0", len(list))
	}
}

func testLargeValue(t *testing.T, kv store.KV) {
	defer kv.Close()

	large := strings.Repeat("clip history ", 100_000)
	if err := kv.Set("big", large); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := kv.Get("big")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != large {
		t.Errorf("Get() returned %d bytes, want %d", len(got), len(large))
	}
}

func testConcurrent(t *testing.T, kv store.KV) {
	defer kv.Close()

	var wg sync.WaitGroup
	const numGoroutines = 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := kv.Set(fmt.Sprintf("key-%d", id), fmt.Sprintf("value-%d", id)); err != nil {
				t.Errorf("Concurrent Set() error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := kv.List(); err != nil {
				t.Errorf("Concurrent List() error: %v", err)
			}
		}()
	}
	wg.Wait()

	list, err := kv.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != numGoroutines {
		t.Errorf("List() returned %d items, want %d", len(list), numGoroutines)
	}
}
