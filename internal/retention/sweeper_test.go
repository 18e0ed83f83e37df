package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/clock"
	"github.com/yiblet/clipstash/internal/history"
	"github.com/yiblet/clipstash/internal/store/memstore"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// seed builds a repository whose clips were created at the given ages.
func seed(t *testing.T, clk *clock.Manual, clips map[string]struct {
	age    time.Duration
	pinned bool
}) (*history.Repository, *memstore.MemoryStore, map[string]string) {
	t.Helper()

	kv := memstore.NewMemoryStore()
	repo := history.Open(kv, history.WithClock(clk))
	ids := make(map[string]string)
	for content, entry := range clips {
		clk.Set(now.Add(-entry.age))
		c, _ := repo.Create(content, nil, entry.pinned)
		ids[content] = c.ID
	}
	clk.Set(now)
	return repo, kv, ids
}

func TestSweep_EvictsOnlyOldUnpinned(t *testing.T) {
	clk := clock.NewManual(now)
	repo, _, ids := seed(t, clk, map[string]struct {
		age    time.Duration
		pinned bool
	}{
		"old":        {age: 25 * time.Hour},
		"old-pinned": {age: 25 * time.Hour, pinned: true},
		"fresh":      {age: time.Hour},
		"boundary":   {age: 24 * time.Hour},
	})

	s := New(repo, WithClock(clk))
	if got := s.Sweep(); got != 1 {
		t.Errorf("Sweep() removed %d, want 1", got)
	}

	if _, ok := repo.Get(ids["old"]); ok {
		t.Error("unpinned clip aged 25h survived the sweep")
	}
	for _, keep := range []string{"old-pinned", "fresh", "boundary"} {
		if _, ok := repo.Get(ids[keep]); !ok {
			t.Errorf("clip %q should have been retained", keep)
		}
	}

	// A second sweep at the same time is a no-op
	if got := s.Sweep(); got != 0 {
		t.Errorf("second Sweep() removed %d, want 0", got)
	}
}

func TestSweep_CustomMaxAge(t *testing.T) {
	clk := clock.NewManual(now)
	repo, _, _ := seed(t, clk, map[string]struct {
		age    time.Duration
		pinned bool
	}{
		"ten-minutes": {age: 10 * time.Minute},
		"one-minute":  {age: time.Minute},
	})

	s := New(repo, WithClock(clk), WithMaxAge(5*time.Minute))
	if got := s.Sweep(); got != 1 {
		t.Errorf("Sweep() removed %d, want 1", got)
	}
	if repo.Len() != 1 {
		t.Errorf("Len() = %d, want 1", repo.Len())
	}
}

func TestSweep_PersistenceFailureIsNotFatal(t *testing.T) {
	clk := clock.NewManual(now)
	repo, kv, _ := seed(t, clk, map[string]struct {
		age    time.Duration
		pinned bool
	}{
		"a": {age: 30 * time.Hour},
		"b": {age: 40 * time.Hour},
	})
	kv.FailWrites(errors.New("read-only"))

	s := New(repo, WithClock(clk))
	if got := s.Sweep(); got != 2 {
		t.Errorf("Sweep() removed %d, want 2", got)
	}
	if repo.Len() != 0 {
		t.Errorf("Len() = %d, want 0 in memory", repo.Len())
	}
}

func TestStartWithTicks_SweepsPerTick(t *testing.T) {
	clk := clock.NewManual(now)
	repo := history.Open(memstore.NewMemoryStore(), history.WithClock(clk))
	repo.Create("will expire", nil, false)

	s := New(repo, WithClock(clk))
	ticks := make(chan time.Time)
	task := s.StartWithTicks(context.Background(), ticks)
	defer task.Stop()

	ticks <- clk.Now()
	if repo.Len() != 1 {
		t.Fatalf("clip evicted too early")
	}

	clk.Advance(25 * time.Hour)
	ticks <- clk.Now()
	task.Stop()

	if repo.Len() != 0 {
		t.Errorf("Len() = %d after expiry tick, want 0", repo.Len())
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(history.Open(memstore.NewMemoryStore()), WithInterval(0), WithMaxAge(-1))
	if s.Interval() != DefaultInterval {
		t.Errorf("Interval() = %v, want %v", s.Interval(), DefaultInterval)
	}
	if s.maxAge != DefaultMaxAge {
		t.Errorf("maxAge = %v, want %v", s.maxAge, DefaultMaxAge)
	}
}

// racingRepo pins a clip right before the repository evaluates the
// eviction predicate, as a user acting while a sweep is in flight would.
type racingRepo struct {
	*history.Repository
	pinID string
}

func (r *racingRepo) DeleteFunc(match func(clip.Clip) bool) int {
	r.TogglePin(r.pinID)
	return r.Repository.DeleteFunc(match)
}

func TestSweep_SparesClipPinnedDuringSweep(t *testing.T) {
	clk := clock.NewManual(now)
	repo, _, ids := seed(t, clk, map[string]struct {
		age    time.Duration
		pinned bool
	}{
		"pinned late": {age: 25 * time.Hour},
		"expired":     {age: 25 * time.Hour},
	})

	s := New(&racingRepo{Repository: repo, pinID: ids["pinned late"]}, WithClock(clk))
	if got := s.Sweep(); got != 1 {
		t.Errorf("Sweep() removed %d, want 1", got)
	}

	c, ok := repo.Get(ids["pinned late"])
	if !ok || !c.IsPinned {
		t.Errorf("clip pinned during the sweep was evicted (present=%v pinned=%v)", ok, c.IsPinned)
	}
	if _, ok := repo.Get(ids["expired"]); ok {
		t.Error("expired clip survived the sweep")
	}
}

// errRepo reports a stale persistence error and counts lookups.
type errRepo struct {
	clips   []clip.Clip
	errHits int
}

func (r *errRepo) DeleteFunc(match func(clip.Clip) bool) int {
	n := 0
	for _, c := range r.clips {
		if match(c) {
			n++
		}
	}
	return n
}

func (r *errRepo) Err() error {
	r.errHits++
	return errors.New("earlier failure")
}

func TestSweep_ChecksPersistenceOnlyAfterEvicting(t *testing.T) {
	repo := &errRepo{clips: []clip.Clip{{ID: "fresh", Timestamp: now.UnixMilli()}}}
	s := New(repo, WithClock(clock.NewManual(now)))

	if got := s.Sweep(); got != 0 {
		t.Fatalf("Sweep() removed %d, want 0", got)
	}
	if repo.errHits != 0 {
		t.Errorf("Err() consulted %d time(s) after a sweep that removed nothing", repo.errHits)
	}

	repo.clips = append(repo.clips, clip.Clip{ID: "old", Timestamp: now.Add(-48 * time.Hour).UnixMilli()})
	if got := s.Sweep(); got != 1 {
		t.Fatalf("Sweep() removed %d, want 1", got)
	}
	if repo.errHits != 1 {
		t.Errorf("Err() consulted %d time(s), want 1", repo.errHits)
	}
}
