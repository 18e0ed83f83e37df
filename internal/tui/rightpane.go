package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/theme"
)

// RightPaneMsg represents messages that the right pane component handles
type RightPaneMsg interface {
	isRightPaneMsg()
}

// Right pane message implementations
type ScrollToTopMsg struct{}

func (ScrollToTopMsg) isRightPaneMsg() {}

type ScrollToBottomMsg struct {
	MaxScroll int
}

func (ScrollToBottomMsg) isRightPaneMsg() {}

type PageUpMsg struct{}

func (PageUpMsg) isRightPaneMsg() {}

type PageDownMsg struct {
	MaxScroll int
}

func (PageDownMsg) isRightPaneMsg() {}

type JumpMsg struct {
	Direction string // "j" for down, "k" for up
	Lines     int
	MaxScroll int
}

func (JumpMsg) isRightPaneMsg() {}

type ResizeRightPaneMsg struct {
	Width  int
	Height int
}

func (ResizeRightPaneMsg) isRightPaneMsg() {}

// ResetScrollMsg is sent when a different clip is selected
type ResetScrollMsg struct{}

func (ResetScrollMsg) isRightPaneMsg() {}

// RightPaneModel holds the state for the right pane (clip detail)
type RightPaneModel struct {
	Width   int // Pane width
	Height  int // Pane height
	ViewPos int // First visible line
}

// NewRightPaneModel creates a new right pane model with default values
func NewRightPaneModel(width, height int) RightPaneModel {
	return RightPaneModel{
		Width:   width,
		Height:  height,
		ViewPos: 0,
	}
}

// Update applies a right pane message
func (r *RightPaneModel) Update(msg RightPaneMsg) {
	switch m := msg.(type) {
	case ScrollToTopMsg, ResetScrollMsg:
		r.ViewPos = 0
	case ScrollToBottomMsg:
		r.ViewPos = m.MaxScroll
	case PageUpMsg:
		pageSize := r.availableHeight() / 2
		r.ViewPos = max(r.ViewPos-pageSize, 0)
	case PageDownMsg:
		pageSize := r.availableHeight() / 2
		r.ViewPos = min(r.ViewPos+pageSize, m.MaxScroll)
	case JumpMsg:
		switch m.Direction {
		case "j":
			r.ViewPos = min(r.ViewPos+m.Lines, m.MaxScroll)
		case "k":
			r.ViewPos = max(r.ViewPos-m.Lines, 0)
		}
	case ResizeRightPaneMsg:
		r.Width = m.Width
		r.Height = m.Height
	}
}

// availableHeight is the number of body lines below the title
func (r RightPaneModel) availableHeight() int {
	return max(r.Height-6, 1)
}

// textWidth is the width body lines wrap to
func (r RightPaneModel) textWidth() int {
	return max(r.Width-6, 1)
}

// detailLines lays out a clip's metadata followed by its wrapped content
func detailLines(c clip.Clip, width int) []string {
	pinned := "no"
	if c.IsPinned {
		pinned = "yes"
	}
	tags := clip.JoinTags(c.Tags)
	if tags == "" {
		tags = "(none)"
	}

	lines := []string{
		"Saved:  " + c.Time().Local().Format(time.DateTime),
		"Pinned: " + pinned,
		"Tags:   " + tags,
		"",
	}
	return append(lines, WrapText(c.Content, width)...)
}

// getMaxScroll returns the maximum scroll position (pure function)
func getMaxScroll(model RightPaneModel, c *clip.Clip) int {
	if c == nil {
		return 0
	}
	total := len(detailLines(*c, model.textWidth()))
	return max(total-model.availableHeight(), 0)
}

// RightPaneView renders the selected clip as a pure function
func RightPaneView(model RightPaneModel, c *clip.Clip, search string, styles theme.Styles, focused, searching bool) string {
	borderColor := styles.Palette.Border
	if focused {
		borderColor = styles.Palette.Focus
	}
	if searching {
		borderColor = styles.Palette.Searching
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(model.Width - 2).
		Height(model.Height - 4)

	var b strings.Builder
	if c == nil {
		b.WriteString(styles.Title.Render("Clip") + "\n\n")
		b.WriteString(styles.Muted.Render("No clip selected"))
		return style.Render(b.String())
	}

	title := "Clip " + c.ID
	if focused {
		title = "● " + title
	}

	lines := detailLines(*c, model.textWidth())
	available := model.availableHeight()
	if len(lines) > available {
		bottom := min(model.ViewPos+available, len(lines))
		title += fmt.Sprintf(" (%d-%d/%d)", model.ViewPos+1, bottom, len(lines))
	}
	b.WriteString(styles.Title.Render(title) + "\n\n")

	end := min(model.ViewPos+available, len(lines))
	for i := model.ViewPos; i < end; i++ {
		b.WriteString(highlightMatches(lines[i], search, styles.Match) + "\n")
	}

	return style.Render(strings.TrimSuffix(b.String(), "\n"))
}

// highlightMatches styles every case-insensitive occurrence of term in line
func highlightMatches(line, term string, style lipgloss.Style) string {
	if term == "" {
		return line
	}
	lower, needle := strings.ToLower(line), strings.ToLower(term)
	// Case folding that changes byte length would misalign offsets
	if len(lower) != len(line) || len(needle) != len(term) {
		return line
	}

	var out strings.Builder
	rest := 0
	for {
		idx := strings.Index(lower[rest:], needle)
		if idx < 0 {
			break
		}
		start := rest + idx
		end := start + len(needle)
		out.WriteString(line[rest:start])
		out.WriteString(style.Render(line[start:end]))
		rest = end
	}
	if rest == 0 {
		return line
	}
	out.WriteString(line[rest:])
	return out.String()
}
