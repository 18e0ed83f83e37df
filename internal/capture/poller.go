// Package capture polls the system clipboard and records new text as clips.
package capture

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/clipboard"
	"github.com/yiblet/clipstash/internal/history"
	"github.com/yiblet/clipstash/internal/schedule"
	"go.uber.org/zap"
)

const (
	// DefaultInterval is how often the clipboard is polled.
	DefaultInterval = 2 * time.Second
	// DefaultTag marks clips that were captured automatically.
	DefaultTag = "auto-captured"
)

// Repository is the part of the clip repository the poller needs.
type Repository interface {
	CreateIfAbsent(content string, tags []string, pinned bool) (clip.Clip, history.Outcome)
}

// Poller copies new clipboard text into a repository.
type Poller struct {
	repo     Repository
	board    clipboard.Clipboard
	tag      string
	interval time.Duration
	logger   *zap.Logger
}

// Option configures a Poller.
type Option func(*Poller)

// WithTag overrides DefaultTag. Blank tags are ignored.
func WithTag(tag string) Option {
	return func(p *Poller) {
		if tag = strings.TrimSpace(tag); tag != "" {
			p.tag = tag
		}
	}
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a poller reading from board and writing to repo.
func New(repo Repository, board clipboard.Clipboard, opts ...Option) *Poller {
	p := &Poller{
		repo:     repo,
		board:    board,
		tag:      DefaultTag,
		interval: DefaultInterval,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the configured poll interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Tag returns the tag applied to captured clips.
func (p *Poller) Tag() string {
	return p.tag
}

// Poll reads the clipboard once. New, non-blank text is stored with the
// capture tag and returned. Unreadable clipboards are skipped quietly.
func (p *Poller) Poll() (clip.Clip, bool) {
	text, err := clipboard.ReadText(p.board)
	if err != nil {
		p.logSkip(err)
		return clip.Clip{}, false
	}

	if strings.TrimSpace(text) == "" {
		return clip.Clip{}, false
	}

	c, outcome := p.repo.CreateIfAbsent(text, []string{p.tag}, false)
	if outcome != history.Inserted {
		return clip.Clip{}, false
	}
	p.logger.Debug("captured clipboard text", zap.String("id", c.ID), zap.Int("bytes", len(text)))
	return c, true
}

// Start polls every interval until ctx is cancelled or the task is stopped.
func (p *Poller) Start(ctx context.Context) *schedule.Task {
	return schedule.Every(ctx, p.interval, p.tick)
}

// StartWithTicks polls once for every value on ticks.
func (p *Poller) StartWithTicks(ctx context.Context, ticks <-chan time.Time) *schedule.Task {
	return schedule.Manual(ctx, ticks, p.tick)
}

func (p *Poller) tick(context.Context, time.Time) {
	p.Poll()
}

func (p *Poller) logSkip(err error) {
	reason := "error"
	switch {
	case errors.Is(err, clipboard.ErrUnsupported):
		reason = "unsupported"
	case errors.Is(err, clipboard.ErrAccessDenied):
		reason = "denied"
	case errors.Is(err, clipboard.ErrNotText):
		reason = "not text"
	case errors.Is(err, clipboard.ErrTooLarge):
		reason = "too large"
	}
	p.logger.Debug("skipping clipboard poll", zap.String("reason", reason), zap.Error(err))
}
