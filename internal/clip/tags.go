package clip

import (
	"strings"
)

// NormalizeTags trims every tag, drops empty ones and removes duplicates
// while keeping the first occurrence order. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ParseTags splits a comma separated tag list as typed into a form field.
func ParseTags(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(input, ","))
}

// JoinTags renders tags back into the comma separated form ParseTags reads.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
