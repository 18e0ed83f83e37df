// Package query turns a repository snapshot into the ordered list a view
// displays: text search, tag filtering and a two-key sort. It never
// modifies its input.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/yiblet/clipstash/internal/clip"
)

// SortMode selects the result ordering.
type SortMode string

const (
	// SortDate orders by timestamp, newest first, ignoring pin state.
	SortDate SortMode = "date"
	// SortPinned puts pinned clips first, each group newest first.
	SortPinned SortMode = "pinned"
)

// ParseSortMode validates a sort mode name. The empty string means SortDate.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortDate:
		return SortDate, nil
	case SortPinned:
		return SortPinned, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want %q or %q)", s, SortDate, SortPinned)
	}
}

// Next returns the other sort mode, for toggling in a UI.
func (m SortMode) Next() SortMode {
	if m == SortPinned {
		return SortDate
	}
	return SortPinned
}

// Options holds the filter and sort parameters of a query.
type Options struct {
	// Search is matched case-insensitively against content and tags.
	// Empty disables the search filter.
	Search string

	// Tags keeps clips carrying at least one of these tags. Empty
	// disables the tag filter.
	Tags []string

	// Sort selects the ordering. The zero value sorts by date.
	Sort SortMode
}

// Run applies opts to clips and returns a new slice. Clips must pass both
// the search and the tag filter. Equal sort keys keep their input order.
func Run(clips []clip.Clip, opts Options) []clip.Clip {
	needle := strings.ToLower(opts.Search)

	out := make([]clip.Clip, 0, len(clips))
	for _, c := range clips {
		if needle != "" && !matchesSearch(c, needle) {
			continue
		}
		if len(opts.Tags) > 0 && !matchesAnyTag(c, opts.Tags) {
			continue
		}
		out = append(out, c.Clone())
	}

	switch opts.Sort {
	case SortPinned:
		slices.SortStableFunc(out, func(a, b clip.Clip) int {
			if a.IsPinned != b.IsPinned {
				if a.IsPinned {
					return -1
				}
				return 1
			}
			return cmp.Compare(b.Timestamp, a.Timestamp)
		})
	default:
		slices.SortStableFunc(out, func(a, b clip.Clip) int {
			return cmp.Compare(b.Timestamp, a.Timestamp)
		})
	}

	return out
}

// matchesSearch reports whether the lowercase needle occurs in the clip's
// content or in any of its tags.
func matchesSearch(c clip.Clip, needle string) bool {
	if strings.Contains(strings.ToLower(c.Content), needle) {
		return true
	}
	return slices.ContainsFunc(c.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), needle)
	})
}

// matchesAnyTag reports whether the clip carries at least one of tags.
func matchesAnyTag(c clip.Clip, tags []string) bool {
	return slices.ContainsFunc(tags, c.HasTag)
}
