// Package clip defines the clip record stored by the history repository
// together with the small helpers that operate on a single clip: tag
// normalisation, list previews, share links and id generation.
package clip

import (
	"slices"
	"time"
)

// Clip is one stored text snippet. The JSON layout is the persisted
// record format and must stay stable.
type Clip struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id"`

	// Content is the snippet body and the natural key for deduplication.
	Content string `json:"content"`

	// Timestamp is the creation or last-refresh time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`

	// Tags are trimmed, non-empty labels in first-seen order.
	Tags []string `json:"tags"`

	// IsPinned exempts the clip from retention and sorts it first in
	// pinned mode.
	IsPinned bool `json:"isPinned"`
}

// Time returns the clip timestamp as a time.Time.
func (c Clip) Time() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// HasTag reports whether the clip carries tag exactly.
func (c Clip) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// Clone returns a copy that shares no memory with c.
func (c Clip) Clone() Clip {
	out := c
	out.Tags = slices.Clone(c.Tags)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

// CloneAll deep-copies a slice of clips.
func CloneAll(clips []Clip) []Clip {
	out := make([]Clip, len(clips))
	for i, c := range clips {
		out[i] = c.Clone()
	}
	return out
}
