package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits", text: "Hello world", width: 20, want: []string{"Hello world"}},
		{name: "word wrap", text: "Hello world this is a test", width: 11, want: []string{"Hello world", "this is a", "test"}},
		{name: "newlines kept", text: "Line 1\nLine 2\nLine 3", width: 20, want: []string{"Line 1", "Line 2", "Line 3"}},
		{name: "empty lines", text: "Line 1\n\nLine 3", width: 20, want: []string{"Line 1", "", "Line 3"}},
		{name: "long word", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "crlf", text: "one\r\ntwo", width: 10, want: []string{"one", "two"}},
		{name: "zero width", text: "anything", width: 0, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("WrapText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapText_WideRunes(t *testing.T) {
	text := strings.Repeat("日本語", 5)
	for i, line := range WrapText(text, 7) {
		if w := lipgloss.Width(line); w > 7 {
			t.Errorf("line %d is %d cells wide: %q", i, w, line)
		}
	}
}

func TestWrapText_NeverExceedsWidth(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog and keeps running far past the fence"
	for width := 1; width <= 30; width++ {
		for _, line := range WrapText(text, width) {
			if lipgloss.Width(line) > width {
				t.Fatalf("width %d: line %q too wide", width, line)
			}
		}
	}
}
