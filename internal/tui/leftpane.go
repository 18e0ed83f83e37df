package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/theme"
)

// LeftPaneMsg represents messages that the left pane component handles
type LeftPaneMsg interface {
	isLeftPaneMsg()
}

// Left pane message implementations
type NavigateUpMsg struct{}

func (NavigateUpMsg) isLeftPaneMsg() {}

type NavigateDownMsg struct {
	MaxIndex int // Maximum valid index for bounds checking
}

func (NavigateDownMsg) isLeftPaneMsg() {}

type SelectItemMsg struct {
	Index int
}

func (SelectItemMsg) isLeftPaneMsg() {}

type GoToTopMsg struct{}

func (GoToTopMsg) isLeftPaneMsg() {}

type GoToBottomMsg struct {
	MaxIndex int
}

func (GoToBottomMsg) isLeftPaneMsg() {}

type JumpToIndexMsg struct {
	Index    int
	MaxIndex int
}

func (JumpToIndexMsg) isLeftPaneMsg() {}

type ResizeLeftPaneMsg struct {
	Width  int
	Height int
}

func (ResizeLeftPaneMsg) isLeftPaneMsg() {}

// LeftPaneModel holds the state for the left pane (clip list)
type LeftPaneModel struct {
	Cursor int // Index of the highlighted clip in the display list
	Width  int // Pane width
	Height int // Pane height
}

// NewLeftPaneModel creates a new left pane model with default values
func NewLeftPaneModel(width, height int) LeftPaneModel {
	return LeftPaneModel{
		Cursor: 0,
		Width:  width,
		Height: height,
	}
}

// Update applies a left pane message
func (l *LeftPaneModel) Update(msg LeftPaneMsg) {
	switch m := msg.(type) {
	case NavigateUpMsg:
		if l.Cursor > 0 {
			l.Cursor--
		}
	case NavigateDownMsg:
		if l.Cursor < m.MaxIndex {
			l.Cursor++
		}
	case GoToTopMsg:
		l.Cursor = 0
	case GoToBottomMsg:
		if m.MaxIndex >= 0 {
			l.Cursor = m.MaxIndex
		}
	case JumpToIndexMsg:
		if m.Index >= 0 && m.Index <= m.MaxIndex {
			l.Cursor = m.Index
		}
	case SelectItemMsg:
		// Parent validates against the clip count
		if m.Index >= 0 {
			l.Cursor = m.Index
		}
	case ResizeLeftPaneMsg:
		l.Width = m.Width
		l.Height = m.Height
	}
}

// visibleRows is how many list rows fit below the title.
func (l LeftPaneModel) visibleRows() int {
	return max(l.Height-6, 1)
}

// offset is the first row drawn so the cursor stays on screen.
func (l LeftPaneModel) offset() int {
	return max(l.Cursor-l.visibleRows()+1, 0)
}

// LeftPaneView renders the clip list as a pure function
func LeftPaneView(model LeftPaneModel, clips []clip.Clip, styles theme.Styles, focused bool) string {
	borderColor := styles.Palette.Border
	if focused {
		borderColor = styles.Palette.Focus
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(model.Width).
		Height(model.Height - 4).
		Inline(false)

	var content strings.Builder
	title := fmt.Sprintf("Clips (%d)", len(clips))
	if focused {
		title = "● " + title
	}
	content.WriteString(styles.Title.Render(title) + "\n\n")

	if len(clips) == 0 {
		content.WriteString(styles.Muted.Render("nothing here"))
		return style.Render(content.String())
	}

	// Two columns for the pin marker
	available := max(model.Width-4, 4)
	start := model.offset()
	end := min(start+model.visibleRows(), len(clips))

	for i := start; i < end; i++ {
		c := clips[i]
		marker := "  "
		if c.IsPinned {
			marker = "* "
		}
		line := marker + clip.Preview(c.Content, available-2)

		switch {
		case i == model.Cursor:
			line = styles.Selected.Width(available).Render(line)
		case c.IsPinned:
			line = styles.Pinned.Render(line)
		}
		content.WriteString(line + "\n")
	}

	return style.Render(strings.TrimSuffix(content.String(), "\n"))
}
