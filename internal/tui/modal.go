package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ModalMsg represents messages that the modal component handles
type ModalMsg interface {
	isModalMsg()
}

// Modal message implementations
type ShowModalMsg struct {
	Title   string
	Content string
	Options string
}

func (ShowModalMsg) isModalMsg() {}

type HideModalMsg struct{}

func (HideModalMsg) isModalMsg() {}

// ModalModel holds the state for modal dialogs
type ModalModel struct {
	Active  bool
	Title   string
	Content string
	Options string
	Width   int
	Height  int
}

// NewModalModel creates a new modal model
func NewModalModel() ModalModel {
	return ModalModel{
		Active: false,
		Width:  60,
		Height: 10,
	}
}

// Update handles modal messages
func (m *ModalModel) Update(msg ModalMsg) {
	switch msg := msg.(type) {
	case ShowModalMsg:
		m.Active = true
		m.Title = msg.Title
		m.Content = msg.Content
		m.Options = msg.Options
	case HideModalMsg:
		m.Active = false
		m.Title = ""
		m.Content = ""
		m.Options = ""
	}
}

// ModalView draws the modal centered over backgroundView
func ModalView(model ModalModel, backgroundView string, windowWidth, windowHeight int, frame lipgloss.Style) string {
	if !model.Active {
		return backgroundView
	}

	body := model.Title
	if model.Content != "" {
		body += "\n\n" + model.Content
	}
	if model.Options != "" {
		body += "\n\n" + model.Options
	}

	// Ensure modal fits within window
	modalWidth := min(model.Width, windowWidth-4)
	modalHeight := min(model.Height, windowHeight-4)

	modal := frame.
		Width(modalWidth).
		Height(modalHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)

	backgroundLines := strings.Split(backgroundView, "\n")
	modalLines := strings.Split(modal, "\n")

	startY := max((windowHeight-len(modalLines))/2, 0)
	startX := max((windowWidth-lipgloss.Width(modalLines[0]))/2, 0)

	for i, modalLine := range modalLines {
		y := startY + i
		if y >= len(backgroundLines) {
			backgroundLines = append(backgroundLines, "")
		}
		bg := backgroundLines[y]
		endX := startX + lipgloss.Width(modalLine)

		var line strings.Builder
		before := ansi.Truncate(bg, startX, "")
		line.WriteString(before)
		// Pad short background lines so the modal stays centered
		line.WriteString(strings.Repeat(" ", startX-lipgloss.Width(before)))
		line.WriteString(modalLine)
		if lipgloss.Width(bg) > endX {
			line.WriteString(ansi.TruncateLeft(bg, endX, ""))
		}
		backgroundLines[y] = line.String()
	}

	return strings.Join(backgroundLines, "\n")
}

// ShowDeleteConfirmation creates a delete confirmation modal
func ShowDeleteConfirmation(preview string, pinned bool) ShowModalMsg {
	content := fmt.Sprintf("Clip: %s", preview)
	if pinned {
		content += "\n(pinned)"
	}
	return ShowModalMsg{
		Title:   "Delete Clip?",
		Content: content + "\n\nAre you sure you want to delete this clip?",
		Options: "[Y] Yes, delete    [N] No, cancel",
	}
}

// ShowClearConfirmation creates a clear-all confirmation modal
func ShowClearConfirmation(count int) ShowModalMsg {
	return ShowModalMsg{
		Title:   "Clear History?",
		Content: fmt.Sprintf("This deletes all %d clip(s), pinned ones included.", count),
		Options: "[Y] Yes, clear    [N] No, cancel",
	}
}
