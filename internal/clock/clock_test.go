package clock

import (
	"testing"
	"time"
)

func TestManual_AdvanceAndSet(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewManual(start)

	if !m.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", m.Now(), start)
	}

	got := m.Advance(90 * time.Minute)
	if want := start.Add(90 * time.Minute); !got.Equal(want) || !m.Now().Equal(want) {
		t.Errorf("Advance() = %v, want %v", got, want)
	}

	later := start.Add(48 * time.Hour)
	m.Set(later)
	if !m.Now().Equal(later) {
		t.Errorf("Now() after Set = %v, want %v", m.Now(), later)
	}
}

func TestMillis(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	if got := Millis(ts); got != 1700000000123 {
		t.Errorf("Millis() = %d, want 1700000000123", got)
	}
}
