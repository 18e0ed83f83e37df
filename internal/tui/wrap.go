package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// WrapText wraps text to fit within maxWidth terminal cells, breaking on
// word boundaries when possible. Input newlines are kept. Height
// truncation is the caller's job.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{}
	}

	var result []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if lipgloss.Width(line) <= maxWidth {
			result = append(result, line)
			continue
		}
		result = append(result, wrapLine(line, maxWidth)...)
	}

	return result
}

// wrapLine wraps a single over-long line
func wrapLine(line string, maxWidth int) []string {
	var result []string
	var current strings.Builder
	width := 0

	flush := func() {
		result = append(result, current.String())
		current.Reset()
		width = 0
	}

	for _, word := range strings.FieldsFunc(line, unicode.IsSpace) {
		wordWidth := lipgloss.Width(word)

		// Break words that cannot fit on any line
		if wordWidth > maxWidth {
			if width > 0 {
				flush()
			}
			for _, chunk := range chunkRunes(word, maxWidth) {
				result = append(result, chunk)
			}
			continue
		}

		needed := wordWidth
		if width > 0 {
			needed++
		}
		if width+needed > maxWidth {
			flush()
			needed = wordWidth
		}
		if width > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
		width += needed
	}

	if width > 0 {
		flush()
	}
	return result
}

// chunkRunes splits s into pieces no wider than maxWidth cells.
func chunkRunes(s string, maxWidth int) []string {
	var chunks []string
	var current strings.Builder
	width := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if width+w > maxWidth && width > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			width = 0
		}
		current.WriteRune(r)
		width += w
	}
	if width > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
