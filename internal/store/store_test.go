package store

import (
	"errors"
	"fmt"
	"testing"
)

// mapKV is a minimal KV used to exercise the helpers in this package.
type mapKV struct {
	data   map[string]string
	getErr error
}

func (m *mapKV) Get(key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", fmt.Errorf("get %s: %w", key, ErrNotFound)
	}
	return v, nil
}

func (m *mapKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *mapKV) List() (map[string]string, error) { return m.data, nil }

func (m *mapKV) Delete(key string) error {
	if _, ok := m.data[key]; !ok {
		return ErrNotFound
	}
	delete(m.data, key)
	return nil
}

func (m *mapKV) Close() error { return nil }

// TestInterfaceCompilation verifies that the interface compiles correctly.
func TestInterfaceCompilation(t *testing.T) {
	var _ KV = (*mapKV)(nil)
}

func TestLookup(t *testing.T) {
	kv := &mapKV{data: map[string]string{"present": "v"}}

	value, ok, err := Lookup(kv, "present")
	if err != nil || !ok || value != "v" {
		t.Errorf("Lookup(present) = %q, %v, %v; want v, true, nil", value, ok, err)
	}

	value, ok, err = Lookup(kv, "missing")
	if err != nil || ok || value != "" {
		t.Errorf("Lookup(missing) = %q, %v, %v; want \"\", false, nil", value, ok, err)
	}

	boom := errors.New("disk on fire")
	kv.getErr = boom
	if _, _, err := Lookup(kv, "present"); !errors.Is(err, boom) {
		t.Errorf("Lookup() error = %v, want %v", err, boom)
	}
}
