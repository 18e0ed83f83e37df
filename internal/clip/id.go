package clip

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDSource hands out clip identifiers.
type IDSource interface {
	NewID() string
}

// UUIDSource generates time-ordered UUIDv7 identifiers.
type UUIDSource struct{}

// NewID returns a fresh UUIDv7, falling back to a random UUIDv4 if the
// v7 generator fails.
func (UUIDSource) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SequenceSource yields "<prefix>1", "<prefix>2", ... and is meant for
// tests and demos that want predictable ids.
type SequenceSource struct {
	Prefix string

	mu   sync.Mutex
	next int
}

// NewID returns the next id in the sequence.
func (s *SequenceSource) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s%d", s.Prefix, s.next)
}
