package clip

import (
	"strings"
	"unicode"
)

// DefaultPreviewLength is the preview width used by list views.
const DefaultPreviewLength = 80

// Preview builds a one-line label for a clip: the first non-empty line of
// content, sanitised and truncated to maxLen characters.
func Preview(content string, maxLen int) string {
	for _, line := range strings.Split(content, "\n") {
		cleaned := strings.TrimSpace(line)
		if cleaned != "" {
			return Truncate(Sanitize(cleaned), maxLen)
		}
	}

	sanitized := Sanitize(content)
	if sanitized == "" {
		return "[empty]"
	}
	return Truncate(sanitized, maxLen)
}

// Truncate ensures s is at most maxLen runes, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	// Reserve 3 characters for "..."
	if maxLen < 3 {
		return strings.Repeat(".", max(maxLen, 0))
	}

	return string(runes[:maxLen-3]) + "..."
}

// Sanitize replaces control characters with spaces and collapses runs of
// whitespace so the result is safe to print on a single terminal line.
func Sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}
