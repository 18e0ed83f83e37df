// Package retention evicts unpinned clips once they are older than a fixed
// age.
package retention

import (
	"context"
	"time"

	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/clock"
	"github.com/yiblet/clipstash/internal/schedule"
	"go.uber.org/zap"
)

const (
	// DefaultMaxAge is how long an unpinned clip is kept.
	DefaultMaxAge = 24 * time.Hour
	// DefaultInterval is how often a sweep runs.
	DefaultInterval = time.Hour
)

// Repository is the part of the clip repository the sweeper needs.
type Repository interface {
	DeleteFunc(match func(clip.Clip) bool) int
	Err() error
}

// Sweeper removes stale clips from a repository.
type Sweeper struct {
	repo     Repository
	clock    clock.Clock
	maxAge   time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithMaxAge overrides DefaultMaxAge.
func WithMaxAge(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.maxAge = d
		}
	}
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock sets the time source used to compute the cutoff.
func WithClock(c clock.Clock) Option {
	return func(s *Sweeper) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sweeper) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a sweeper for repo.
func New(repo Repository, opts ...Option) *Sweeper {
	s := &Sweeper{
		repo:     repo,
		clock:    clock.System{},
		maxAge:   DefaultMaxAge,
		interval: DefaultInterval,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval returns the configured sweep interval.
func (s *Sweeper) Interval() time.Duration {
	return s.interval
}

// Sweep deletes every unpinned clip whose timestamp is before now minus
// the maximum age. It returns the number of clips removed.
func (s *Sweeper) Sweep() int {
	cutoff := clock.Millis(s.clock.Now().Add(-s.maxAge))

	removed := s.repo.DeleteFunc(func(c clip.Clip) bool {
		return !c.IsPinned && c.Timestamp < cutoff
	})
	if removed == 0 {
		return 0
	}

	s.logger.Info("evicted expired clips", zap.Int("removed", removed), zap.Duration("max_age", s.maxAge))
	if err := s.repo.Err(); err != nil {
		s.logger.Warn("sweep could not persist evictions", zap.Error(err))
	}
	return removed
}

// Start runs Sweep every interval until ctx is cancelled or the task is
// stopped.
func (s *Sweeper) Start(ctx context.Context) *schedule.Task {
	return schedule.Every(ctx, s.interval, s.tick)
}

// StartWithTicks runs Sweep for every value on ticks.
func (s *Sweeper) StartWithTicks(ctx context.Context, ticks <-chan time.Time) *schedule.Task {
	return schedule.Manual(ctx, ticks, s.tick)
}

func (s *Sweeper) tick(context.Context, time.Time) {
	s.Sweep()
}
