// Package history implements the clip repository: the canonical, ordered
// collection of clips, mirrored to a key-value store after every mutation.
//
// Storage order is most-recent-first by insertion. Content is the natural
// key: inserting content that already exists refreshes the existing clip's
// timestamp instead of adding a duplicate.
//
// Mutations never fail from the caller's point of view. A persistence
// error is logged, remembered in Err, and the in-memory collection stays
// authoritative for the rest of the session.
package history

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/clock"
	"github.com/yiblet/clipstash/internal/store"
	"go.uber.org/zap"
)

// StorageKey is the key the serialized clip array is stored under.
const StorageKey = "clipboardHistory"

// maxIDAttempts bounds regeneration when an id source repeats itself.
const maxIDAttempts = 8

// Outcome describes what Create did.
type Outcome int

const (
	// Skipped means the content was blank and nothing changed.
	Skipped Outcome = iota
	// Inserted means a new clip was added at the front.
	Inserted
	// Refreshed means an existing clip with identical content had its
	// timestamp moved to now.
	Refreshed
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Refreshed:
		return "refreshed"
	default:
		return "skipped"
	}
}

// Patch lists the fields Update should replace. Nil fields are left alone;
// to clear tags pass an empty, non-nil slice.
type Patch struct {
	Content *string
	Tags    []string
	Pinned  *bool
}

// Observer receives a fresh snapshot after every successful mutation.
type Observer func(clips []clip.Clip)

// Repository owns the clip collection.
type Repository struct {
	mu        sync.Mutex
	kv        store.KV
	clips     []clip.Clip
	clock     clock.Clock
	ids       clip.IDSource
	logger    *zap.Logger
	observers map[int]Observer
	nextObs   int
	lastErr   error
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the time source used to stamp clips.
func WithClock(c clock.Clock) Option {
	return func(r *Repository) { r.clock = c }
}

// WithIDSource sets the generator for new clip ids.
func WithIDSource(ids clip.IDSource) Option {
	return func(r *Repository) { r.ids = ids }
}

// WithLogger sets the logger for persistence warnings and debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// Open creates a repository backed by kv and loads the persisted
// collection. A missing, unreadable or malformed value yields an empty
// collection.
func Open(kv store.KV, opts ...Option) *Repository {
	r := &Repository{
		kv:        kv,
		clips:     []clip.Clip{},
		clock:     clock.System{},
		ids:       clip.UUIDSource{},
		logger:    zap.NewNop(),
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.clips = r.load()
	return r
}

// load reads and sanitises the persisted collection.
func (r *Repository) load() []clip.Clip {
	raw, ok, err := store.Lookup(r.kv, StorageKey)
	if err != nil {
		r.logger.Warn("failed to read clip history, starting empty", zap.Error(err))
		r.lastErr = err
		return []clip.Clip{}
	}
	if !ok {
		return []clip.Clip{}
	}

	clips, err := Decode(raw)
	if err != nil {
		r.logger.Warn("malformed clip history, starting empty", zap.Error(err))
		return []clip.Clip{}
	}

	out := make([]clip.Clip, 0, len(clips))
	seenContent := make(map[string]struct{}, len(clips))
	seenID := make(map[string]struct{}, len(clips))
	for _, c := range clips {
		if strings.TrimSpace(c.Content) == "" {
			r.logger.Warn("dropping persisted clip with blank content", zap.String("id", c.ID))
			continue
		}
		if _, dup := seenContent[c.Content]; dup {
			r.logger.Warn("dropping persisted clip with duplicate content", zap.String("id", c.ID))
			continue
		}
		if _, dup := seenID[c.ID]; dup || c.ID == "" {
			r.logger.Warn("dropping persisted clip with missing or duplicate id", zap.String("id", c.ID))
			continue
		}
		seenContent[c.Content] = struct{}{}
		seenID[c.ID] = struct{}{}
		c.Tags = clip.NormalizeTags(c.Tags)
		out = append(out, c)
	}

	r.logger.Debug("loaded clip history", zap.Int("clips", len(out)))
	return out
}

// Decode parses a serialized clip array.
func Decode(raw string) ([]clip.Clip, error) {
	var clips []clip.Clip
	if err := json.Unmarshal([]byte(raw), &clips); err != nil {
		return nil, fmt.Errorf("failed to decode clip history: %w", err)
	}
	return clips, nil
}

// Encode serializes clips in the persisted layout. A nil slice encodes as
// an empty array.
func Encode(clips []clip.Clip) (string, error) {
	if clips == nil {
		clips = []clip.Clip{}
	}
	data, err := json.Marshal(clips)
	if err != nil {
		return "", fmt.Errorf("failed to encode clip history: %w", err)
	}
	return string(data), nil
}

// Create stores content. Blank content is ignored. Content identical to an
// existing clip refreshes that clip's timestamp and leaves its tags and pin
// state untouched. Otherwise a new clip is inserted at the front.
func (r *Repository) Create(content string, tags []string, pinned bool) (clip.Clip, Outcome) {
	if strings.TrimSpace(content) == "" {
		return clip.Clip{}, Skipped
	}

	var (
		result  clip.Clip
		outcome Outcome
	)
	r.mutate("create", func() bool {
		now := clock.Millis(r.clock.Now())

		if idx := r.indexByContent(content); idx >= 0 {
			r.clips[idx].Timestamp = now
			result, outcome = r.clips[idx].Clone(), Refreshed
			return true
		}

		result, outcome = r.insertLocked(content, tags, pinned, now), Inserted
		return true
	})

	return result, outcome
}

// CreateIfAbsent inserts content only when no clip holds it yet. Unlike
// Create it never refreshes an existing clip; the check and the insert
// happen under one lock.
func (r *Repository) CreateIfAbsent(content string, tags []string, pinned bool) (clip.Clip, Outcome) {
	if strings.TrimSpace(content) == "" {
		return clip.Clip{}, Skipped
	}

	var (
		result  clip.Clip
		outcome = Skipped
	)
	r.mutate("create if absent", func() bool {
		if r.indexByContent(content) >= 0 {
			return false
		}
		result, outcome = r.insertLocked(content, tags, pinned, clock.Millis(r.clock.Now())), Inserted
		return true
	})

	return result, outcome
}

// insertLocked puts a new clip at the front. Callers hold r.mu.
func (r *Repository) insertLocked(content string, tags []string, pinned bool, now int64) clip.Clip {
	c := clip.Clip{
		ID:        r.newID(),
		Content:   content,
		Timestamp: now,
		Tags:      clip.NormalizeTags(tags),
		IsPinned:  pinned,
	}
	r.clips = slices.Insert(r.clips, 0, c)
	return c.Clone()
}

// Delete removes the clip with id. It reports whether a clip was removed.
func (r *Repository) Delete(id string) bool {
	return r.DeleteMany(id) > 0
}

// DeleteMany removes every clip whose id is listed and persists once.
// It returns the number of clips removed.
func (r *Repository) DeleteMany(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}

	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	removed := 0
	r.mutate("delete", func() bool {
		before := len(r.clips)
		r.clips = slices.DeleteFunc(r.clips, func(c clip.Clip) bool {
			_, hit := targets[c.ID]
			return hit
		})
		removed = before - len(r.clips)
		return removed > 0
	})
	return removed
}

// DeleteFunc removes every clip for which match returns true and reports
// how many were removed. match sees each clip under the lock, so the
// decision and the removal cannot be split by another mutation.
func (r *Repository) DeleteFunc(match func(clip.Clip) bool) int {
	removed := 0
	r.mutate("delete matching", func() bool {
		before := len(r.clips)
		r.clips = slices.DeleteFunc(r.clips, match)
		removed = before - len(r.clips)
		return removed > 0
	})
	return removed
}

// ClearAll removes every clip, pinned ones included, and returns how many
// were removed.
func (r *Repository) ClearAll() int {
	removed := 0
	r.mutate("clear", func() bool {
		removed = len(r.clips)
		r.clips = []clip.Clip{}
		return true
	})
	return removed
}

// TogglePin flips the pin state of the clip with id.
func (r *Repository) TogglePin(id string) (clip.Clip, bool) {
	var (
		result clip.Clip
		found  bool
	)
	r.mutate("toggle pin", func() bool {
		idx := r.indexByID(id)
		if idx < 0 {
			return false
		}
		r.clips[idx].IsPinned = !r.clips[idx].IsPinned
		result, found = r.clips[idx].Clone(), true
		return true
	})
	return result, found
}

// TogglePins flips the pin state of every listed clip and persists once.
// It returns the number of clips changed.
func (r *Repository) TogglePins(ids ...string) int {
	changed := 0
	r.mutate("toggle pins", func() bool {
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if idx := r.indexByID(id); idx >= 0 {
				r.clips[idx].IsPinned = !r.clips[idx].IsPinned
				changed++
			}
		}
		return changed > 0
	})
	return changed
}

// Update merges patch into the clip with id without touching its
// timestamp. A content change that is blank or would duplicate another
// clip's content is dropped; the remaining fields still apply.
func (r *Repository) Update(id string, patch Patch) (clip.Clip, bool) {
	var (
		result clip.Clip
		found  bool
	)
	r.mutate("update", func() bool {
		idx := r.indexByID(id)
		if idx < 0 {
			return false
		}

		c := &r.clips[idx]
		if patch.Content != nil {
			switch other := r.indexByContent(*patch.Content); {
			case strings.TrimSpace(*patch.Content) == "":
				r.logger.Debug("ignoring blank content in update", zap.String("id", id))
			case other >= 0 && other != idx:
				r.logger.Debug("ignoring content that duplicates another clip",
					zap.String("id", id), zap.String("existing", r.clips[other].ID))
			default:
				c.Content = *patch.Content
			}
		}
		if patch.Tags != nil {
			c.Tags = clip.NormalizeTags(patch.Tags)
		}
		if patch.Pinned != nil {
			c.IsPinned = *patch.Pinned
		}

		result, found = c.Clone(), true
		return true
	})
	return result, found
}

// Snapshot returns a deep copy of the collection in storage order.
func (r *Repository) Snapshot() []clip.Clip {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clip.CloneAll(r.clips)
}

// Get returns a copy of the clip with id.
func (r *Repository) Get(id string) (clip.Clip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx := r.indexByID(id); idx >= 0 {
		return r.clips[idx].Clone(), true
	}
	return clip.Clip{}, false
}

// Contains reports whether a clip with exactly this content exists.
func (r *Repository) Contains(content string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexByContent(content) >= 0
}

// Len returns the number of clips.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clips)
}

// Tags returns every distinct tag in use, sorted.
func (r *Repository) Tags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	tags := []string{}
	for _, c := range r.clips {
		for _, tag := range c.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}

// Err returns the error from the most recent persistence attempt, or nil
// if it succeeded.
func (r *Repository) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Subscribe registers fn to be called after each mutation. The returned
// function removes the subscription.
func (r *Repository) Subscribe(fn Observer) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextObs
	r.nextObs++
	r.observers[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.observers, id)
	}
}

// mutate runs fn under the lock. When fn reports a change the collection
// is persisted and observers are notified outside the lock.
func (r *Repository) mutate(op string, fn func() bool) {
	r.mu.Lock()
	if !fn() {
		r.mu.Unlock()
		return
	}

	r.persistLocked(op)
	snapshot := clip.CloneAll(r.clips)
	observers := make([]Observer, 0, len(r.observers))
	for _, obs := range r.observers {
		observers = append(observers, obs)
	}
	r.mu.Unlock()

	for _, obs := range observers {
		obs(clip.CloneAll(snapshot))
	}
}

// persistLocked writes the full collection. Callers hold r.mu.
func (r *Repository) persistLocked(op string) {
	raw, err := Encode(r.clips)
	if err == nil {
		err = r.kv.Set(StorageKey, raw)
	}
	if err != nil {
		r.logger.Warn("failed to persist clip history",
			zap.String("op", op), zap.Int("clips", len(r.clips)), zap.Error(err))
		r.lastErr = err
		return
	}

	r.lastErr = nil
	r.logger.Debug("persisted clip history", zap.String("op", op), zap.Int("clips", len(r.clips)))
}

func (r *Repository) indexByID(id string) int {
	return slices.IndexFunc(r.clips, func(c clip.Clip) bool { return c.ID == id })
}

func (r *Repository) indexByContent(content string) int {
	return slices.IndexFunc(r.clips, func(c clip.Clip) bool { return c.Content == content })
}

// newID draws ids until one is not already in use.
func (r *Repository) newID() string {
	id := r.ids.NewID()
	for i := 1; i < maxIDAttempts && r.indexByID(id) >= 0; i++ {
		id = r.ids.NewID()
	}
	return id
}
