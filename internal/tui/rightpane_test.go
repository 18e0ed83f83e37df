package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/theme"
)

func TestRightPaneModel_Scrolling(t *testing.T) {
	model := NewRightPaneModel(60, 20) // 14 visible lines

	model.Update(JumpMsg{Direction: "j", Lines: 5, MaxScroll: 30})
	if model.ViewPos != 5 {
		t.Errorf("ViewPos = %d, want 5", model.ViewPos)
	}
	model.Update(PageDownMsg{MaxScroll: 30})
	if model.ViewPos != 12 {
		t.Errorf("ViewPos = %d, want 12 after half page", model.ViewPos)
	}
	model.Update(PageUpMsg{})
	if model.ViewPos != 5 {
		t.Errorf("ViewPos = %d, want 5", model.ViewPos)
	}
	model.Update(JumpMsg{Direction: "j", Lines: 100, MaxScroll: 30})
	if model.ViewPos != 30 {
		t.Errorf("ViewPos = %d, want clamped 30", model.ViewPos)
	}
	model.Update(JumpMsg{Direction: "k", Lines: 100})
	if model.ViewPos != 0 {
		t.Errorf("ViewPos = %d, want 0", model.ViewPos)
	}
	model.Update(ScrollToBottomMsg{MaxScroll: 7})
	model.Update(ResetScrollMsg{})
	if model.ViewPos != 0 {
		t.Errorf("ViewPos = %d, want reset to 0", model.ViewPos)
	}
}

func TestGetMaxScroll(t *testing.T) {
	model := NewRightPaneModel(60, 20)

	if got := getMaxScroll(model, nil); got != 0 {
		t.Errorf("getMaxScroll(nil) = %d", got)
	}

	short := clip.Clip{Content: "one line"}
	if got := getMaxScroll(model, &short); got != 0 {
		t.Errorf("short clip scroll = %d, want 0", got)
	}

	long := clip.Clip{Content: strings.Repeat("line\n", 29) + "line"}
	// 4 header lines + 30 content lines - 14 visible
	if got := getMaxScroll(model, &long); got != 20 {
		t.Errorf("long clip scroll = %d, want 20", got)
	}
}

func TestRightPaneView(t *testing.T) {
	c := clip.Clip{ID: "c7", Content: "hello world", Tags: []string{"work", "notes"}, IsPinned: true}
	styles := theme.NewStyles(theme.Dark())

	view := RightPaneView(NewRightPaneModel(60, 20), &c, "", styles, true, false)

	for _, want := range []string{"Clip c7", "hello world", "Pinned: yes", "Tags:   work, notes"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	empty := RightPaneView(NewRightPaneModel(60, 20), nil, "", styles, false, false)
	if !strings.Contains(empty, "No clip selected") {
		t.Error("nil clip should render placeholder")
	}
}

func TestHighlightMatches(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)

	if got := highlightMatches("plain text", "", style); got != "plain text" {
		t.Errorf("empty term changed line: %q", got)
	}
	if got := highlightMatches("plain text", "zzz", style); got != "plain text" {
		t.Errorf("no match changed line: %q", got)
	}

	got := highlightMatches("Hello hello", "HELLO", style)
	want := style.Render("Hello") + " " + style.Render("hello")
	if got != want {
		t.Errorf("highlightMatches() = %q, want %q", got, want)
	}
}
