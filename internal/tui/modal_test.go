package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/clipstash/internal/theme"
)

func TestModalModel_ShowHide(t *testing.T) {
	m := NewModalModel()
	m.Update(ShowDeleteConfirmation("some clip", true))

	if !m.Active || m.Title != "Delete Clip?" {
		t.Fatalf("modal not shown: %+v", m)
	}
	if !strings.Contains(m.Content, "(pinned)") {
		t.Error("pinned clips should be flagged")
	}

	m.Update(HideModalMsg{})
	if m.Active || m.Title != "" || m.Content != "" {
		t.Errorf("modal not reset: %+v", m)
	}
}

func TestModalView(t *testing.T) {
	background := strings.TrimSuffix(strings.Repeat(strings.Repeat("x", 80)+"\n", 24), "\n")
	frame := theme.NewStyles(theme.Dark()).Modal

	m := NewModalModel()
	if got := ModalView(m, background, 80, 24, frame); got != background {
		t.Error("inactive modal changed the background")
	}

	m.Update(ShowClearConfirmation(3))
	view := ModalView(m, background, 80, 24, frame)

	if !strings.Contains(view, "Clear History?") || !strings.Contains(view, "3 clip(s)") {
		t.Errorf("modal text missing:\n%s", view)
	}
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Errorf("view has %d lines, want 24", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 80 {
			t.Errorf("line %d is %d cells wide, want 80", i, w)
		}
	}
}
