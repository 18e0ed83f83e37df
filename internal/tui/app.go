// Package tui is the interactive clip browser: a clip list on the left, the
// selected clip on the right, with search, tag filtering, sorting and
// pin/delete/copy actions.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/clipboard"
	"github.com/yiblet/clipstash/internal/history"
	"github.com/yiblet/clipstash/internal/query"
	"github.com/yiblet/clipstash/internal/theme"
)

// Repository is the clip repository as the browser uses it.
type Repository interface {
	Snapshot() []clip.Clip
	Tags() []string
	Delete(id string) bool
	ClearAll() int
	TogglePin(id string) (clip.Clip, bool)
	Subscribe(fn history.Observer) (cancel func())
	Err() error
}

// Deps are the collaborators the browser acts on.
type Deps struct {
	Repo  Repository
	Board clipboard.Clipboard
	Theme *theme.Preference
}

// PaneType represents which pane is focused
type PaneType int

const (
	LeftPane PaneType = iota
	RightPane
)

// UIMode represents the current modal state of the application
type UIMode int

const (
	NormalMode UIMode = iota
	SearchMode
	HelpMode
	NumberInputMode
	ConfirmMode
	QRMode
)

// confirmAction is what a confirmation modal will do on "y".
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDelete
	confirmClear
)

// ClipsChangedMsg tells the browser the repository changed.
type ClipsChangedMsg struct{}

type flashExpiredMsg struct{}

const flashDuration = 2 * time.Second

// AppModel orchestrates all sub-models
type AppModel struct {
	Width       int      // Window width
	Height      int      // Window height
	LeftWidth   int      // Left pane width
	RightWidth  int      // Right pane width
	ActivePane  PaneType // Currently focused pane
	CurrentMode UIMode   // Current modal state

	// Sub-models
	LeftPane  LeftPaneModel
	RightPane RightPaneModel
	Search    SearchModel
	Modal     ModalModel

	// Query state and its result
	Options query.Options
	Clips   []clip.Clip // display list
	all     []clip.Clip // repository snapshot

	// Number input mode for multi-digit commands like "10j"
	NumberBuffer string
	BufferPane   PaneType

	// Flash message for temporary notifications
	FlashMessage string
	FlashExpiry  time.Time

	DarkMode bool
	Styles   theme.Styles

	// QR code of the selected clip while in QRMode
	QRCode  string
	QRTitle string

	pending   confirmAction
	pendingID string

	repo  Repository
	board clipboard.Clipboard
	prefs *theme.Preference
}

// NewAppModel creates a new app model showing the repository's clips
func NewAppModel(deps Deps) *AppModel {
	// Default dimensions that will be properly set on first resize
	defaultWidth := 120
	defaultHeight := 20
	defaultLeftWidth := 40
	defaultRightWidth := defaultWidth - defaultLeftWidth - 2

	a := &AppModel{
		Width:       defaultWidth,
		Height:      defaultHeight,
		LeftWidth:   defaultLeftWidth,
		RightWidth:  defaultRightWidth,
		ActivePane:  LeftPane,
		CurrentMode: NormalMode,
		LeftPane:    NewLeftPaneModel(defaultLeftWidth, defaultHeight),
		RightPane:   NewRightPaneModel(defaultRightWidth, defaultHeight),
		Search:      NewSearchModel(),
		Modal:       NewModalModel(),
		Options:     query.Options{Sort: query.SortDate},
		repo:        deps.Repo,
		board:       deps.Board,
		prefs:       deps.Theme,
	}

	if a.prefs != nil {
		a.DarkMode = a.prefs.DarkMode()
	} else {
		a.DarkMode = true
	}
	a.Styles = theme.NewStyles(theme.For(a.DarkMode))
	a.setClips(a.repo.Snapshot())
	return a
}

// Init initializes the app model (required by tea.Model interface)
func (a *AppModel) Init() tea.Cmd {
	return nil
}

// Update handles app-level messages and routes to appropriate sub-models
func (a *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.handleWindowResize(m)
		return a, nil
	case tea.KeyMsg:
		return a.handleKeyPress(m)
	case ClipsChangedMsg:
		a.setClips(a.repo.Snapshot())
		return a, nil
	case flashExpiredMsg:
		if !time.Now().Before(a.FlashExpiry) {
			a.FlashMessage = ""
			a.FlashExpiry = time.Time{}
		}
		return a, nil
	}

	return a, nil
}

// Selected returns the clip under the cursor.
func (a *AppModel) Selected() (clip.Clip, bool) {
	if a.LeftPane.Cursor < 0 || a.LeftPane.Cursor >= len(a.Clips) {
		return clip.Clip{}, false
	}
	return a.Clips[a.LeftPane.Cursor], true
}

// setClips replaces the snapshot and re-runs the query, keeping the
// cursor on the same clip when it is still listed.
func (a *AppModel) setClips(all []clip.Clip) {
	a.all = all
	a.refresh()
}

// refresh re-runs the query over the current snapshot.
func (a *AppModel) refresh() {
	selected, hadSelection := a.Selected()

	a.Clips = query.Run(a.all, a.Options)

	if hadSelection {
		for i, c := range a.Clips {
			if c.ID == selected.ID {
				a.LeftPane.Cursor = i
				return
			}
		}
		a.RightPane.Update(ResetScrollMsg{})
	}
	a.LeftPane.Cursor = min(a.LeftPane.Cursor, max(len(a.Clips)-1, 0))
}

// handleWindowResize processes window resize events
func (a *AppModel) handleWindowResize(msg tea.WindowSizeMsg) {
	a.Width = max(msg.Width, 30)
	a.Height = msg.Height

	minLeftWidth := 15
	minRightWidth := 20
	borderSpacing := 2

	if a.Width < minLeftWidth+minRightWidth+borderSpacing {
		a.LeftWidth = minLeftWidth
		a.RightWidth = max(a.Width-a.LeftWidth-borderSpacing, minRightWidth)
	} else {
		a.LeftWidth = max(min(40, a.Width/3), minLeftWidth)
		a.RightWidth = a.Width - a.LeftWidth - borderSpacing
		if a.RightWidth < minRightWidth {
			a.RightWidth = minRightWidth
			a.LeftWidth = a.Width - a.RightWidth - borderSpacing
		}
	}

	a.LeftPane.Update(ResizeLeftPaneMsg{Width: a.LeftWidth, Height: a.Height})
	a.RightPane.Update(ResizeRightPaneMsg{Width: a.RightWidth, Height: a.Height})
	a.RightPane.Update(ResetScrollMsg{})
}

// handleKeyPress processes key press events using mode-first architecture
func (a *AppModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.CurrentMode {
	case SearchMode:
		return a.handleSearchModeKeys(msg)
	case HelpMode:
		return a.handleHelpModeKeys(key)
	case NumberInputMode:
		return a.handleNumberInputModeKeys(key)
	case ConfirmMode:
		return a.handleConfirmModeKeys(key)
	case QRMode:
		return a.handleQRModeKeys(key)
	default:
		return a.handleNormalModeKeys(key)
	}
}

// handleSearchModeKeys filters the list live as the user types
func (a *AppModel) handleSearchModeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.Search.Update(CancelSearchMsg{})
	case "enter":
		a.Search.Update(ExecuteSearchMsg{})
	case "backspace", "ctrl+h":
		if runes := []rune(a.Search.Input); len(runes) > 0 {
			a.Search.Update(UpdateSearchInputMsg{Input: string(runes[:len(runes)-1])})
		}
	case "ctrl+u":
		a.Search.Update(UpdateSearchInputMsg{Input: ""})
	default:
		switch msg.Type {
		case tea.KeyRunes:
			a.Search.Update(UpdateSearchInputMsg{Input: a.Search.Input + string(msg.Runes)})
		case tea.KeySpace:
			a.Search.Update(UpdateSearchInputMsg{Input: a.Search.Input + " "})
		}
	}

	if !a.Search.IsActive() {
		a.CurrentMode = NormalMode
	}
	a.Options.Search = a.Search.Term()
	a.refresh()
	return a, nil
}

// handleHelpModeKeys processes keys when in help mode
func (a *AppModel) handleHelpModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "?", "esc", "q":
		a.CurrentMode = NormalMode
	}
	return a, nil
}

// handleQRModeKeys closes the QR view
func (a *AppModel) handleQRModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "Q", "esc", "q", "enter":
		a.CurrentMode = NormalMode
		a.QRCode, a.QRTitle = "", ""
	}
	return a, nil
}

// handleNumberInputModeKeys processes keys when in number input mode
func (a *AppModel) handleNumberInputModeKeys(key string) (tea.Model, tea.Cmd) {
	switch {
	case key == "esc":
		a.NumberBuffer = ""
		a.CurrentMode = NormalMode
	case key == "backspace":
		if len(a.NumberBuffer) > 1 {
			a.NumberBuffer = a.NumberBuffer[:len(a.NumberBuffer)-1]
		} else {
			a.NumberBuffer = ""
			a.CurrentMode = NormalMode
		}
	case key >= "0" && key <= "9" && len(key) == 1:
		a.NumberBuffer += key
	case isMovementCommand(key):
		multiplier := 1
		if num, err := strconv.Atoi(a.NumberBuffer); err == nil {
			multiplier = num
		}
		a.NumberBuffer = ""
		a.CurrentMode = NormalMode
		return a.executeCommand(multiplier, key, a.ActivePane)
	default:
		a.NumberBuffer = ""
		a.CurrentMode = NormalMode
	}
	return a, nil
}

// handleConfirmModeKeys processes keys while a confirmation modal is open
func (a *AppModel) handleConfirmModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		action, id := a.pending, a.pendingID
		a.closeConfirm()
		switch action {
		case confirmDelete:
			if a.repo.Delete(id) {
				a.setClips(a.repo.Snapshot())
				return a, a.flashPersisted("Clip deleted")
			}
			return a, a.setFlashMessage("Clip no longer exists")
		case confirmClear:
			n := a.repo.ClearAll()
			a.setClips(a.repo.Snapshot())
			return a, a.flashPersisted(fmt.Sprintf("Cleared %d clip(s)", n))
		}
	case "n", "N", "esc":
		a.closeConfirm()
	}
	return a, nil
}

func (a *AppModel) closeConfirm() {
	a.Modal.Update(HideModalMsg{})
	a.pending = confirmNone
	a.pendingID = ""
	a.CurrentMode = NormalMode
}

// handleNormalModeKeys processes keys when in normal mode
func (a *AppModel) handleNormalModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "esc":
		if a.Options.Search != "" || len(a.Options.Tags) > 0 {
			a.Search.Update(ClearSearchMsg{})
			a.Options.Search = ""
			a.Options.Tags = nil
			a.refresh()
			return a, nil
		}
		return a, tea.Quit
	case "?":
		a.CurrentMode = HelpMode
		return a, nil
	case "/":
		a.Search.Update(StartSearchMsg{})
		a.CurrentMode = SearchMode
		return a, nil
	case "t":
		return a, a.cycleTagFilter()
	case "s":
		a.Options.Sort = a.Options.Sort.Next()
		a.refresh()
		return a, a.setFlashMessage("Sorted by " + string(a.Options.Sort))
	case "p":
		return a, a.togglePin()
	case "d":
		if c, ok := a.Selected(); ok {
			a.pending, a.pendingID = confirmDelete, c.ID
			a.Modal.Update(ShowDeleteConfirmation(clip.Preview(c.Content, 40), c.IsPinned))
			a.CurrentMode = ConfirmMode
		}
		return a, nil
	case "D":
		if len(a.all) > 0 {
			a.pending = confirmClear
			a.Modal.Update(ShowClearConfirmation(len(a.all)))
			a.CurrentMode = ConfirmMode
		}
		return a, nil
	case "c":
		return a, a.copyToClipboard()
	case "T":
		return a, a.toggleTheme()
	case "Q":
		return a, a.showQR()
	case "tab":
		if a.ActivePane == LeftPane {
			a.ActivePane = RightPane
		} else {
			a.ActivePane = LeftPane
		}
		return a, nil
	case "h", "left":
		a.ActivePane = LeftPane
		return a, nil
	case "l", "right":
		a.ActivePane = RightPane
		return a, nil
	}

	// Handle number input (digits 1-9, 0 only after other digits)
	if key >= "1" && key <= "9" && len(key) == 1 {
		a.NumberBuffer += key
		a.BufferPane = a.ActivePane
		a.CurrentMode = NumberInputMode
		return a, nil
	}

	if isMovementCommand(key) {
		return a.executeCommand(1, key, a.ActivePane)
	}

	if a.ActivePane == RightPane {
		c, _ := a.selectedPtr()
		maxScroll := getMaxScroll(a.RightPane, c)
		switch key {
		case "ctrl+u":
			a.RightPane.Update(PageUpMsg{})
		case "ctrl+d":
			a.RightPane.Update(PageDownMsg{MaxScroll: maxScroll})
		}
	}
	return a, nil
}

func (a *AppModel) selectedPtr() (*clip.Clip, bool) {
	c, ok := a.Selected()
	if !ok {
		return nil, false
	}
	return &c, true
}

// cycleTagFilter steps the tag filter through no filter and each known tag.
func (a *AppModel) cycleTagFilter() tea.Cmd {
	tags := a.repo.Tags()
	if len(tags) == 0 {
		a.Options.Tags = nil
		a.refresh()
		return a.setFlashMessage("No tags to filter by")
	}

	next := 0
	if len(a.Options.Tags) == 1 {
		next = len(tags)
		for i, tag := range tags {
			if tag == a.Options.Tags[0] {
				next = i + 1
				break
			}
		}
	}

	if next >= len(tags) {
		a.Options.Tags = nil
		a.refresh()
		return a.setFlashMessage("Showing all tags")
	}
	a.Options.Tags = []string{tags[next]}
	a.refresh()
	return a.setFlashMessage("Tag: " + tags[next])
}

func (a *AppModel) togglePin() tea.Cmd {
	c, ok := a.Selected()
	if !ok {
		return a.setFlashMessage("No clip selected")
	}
	updated, ok := a.repo.TogglePin(c.ID)
	if !ok {
		return a.setFlashMessage("Clip no longer exists")
	}
	a.setClips(a.repo.Snapshot())
	if updated.IsPinned {
		return a.flashPersisted("Pinned")
	}
	return a.flashPersisted("Unpinned")
}

// showQR switches to a full-screen QR code of the selected clip.
func (a *AppModel) showQR() tea.Cmd {
	c, ok := a.Selected()
	if !ok {
		return nil
	}
	code, err := clip.QRText(c.Content, !a.DarkMode)
	if err != nil {
		if errors.Is(err, clip.ErrTooLongForQR) {
			return a.setFlashMessage("Clip is too long for a QR code")
		}
		return a.setFlashMessage("QR code failed: " + err.Error())
	}
	a.QRCode = code
	a.QRTitle = clip.Preview(c.Content, 40)
	a.CurrentMode = QRMode
	return nil
}

func (a *AppModel) toggleTheme() tea.Cmd {
	a.DarkMode = !a.DarkMode
	a.Styles = theme.NewStyles(theme.For(a.DarkMode))
	if a.prefs != nil {
		if err := a.prefs.SetDarkMode(a.DarkMode); err != nil {
			return a.setFlashMessage(fmt.Sprintf("Theme not saved: %v", err))
		}
	}
	return a.setFlashMessage("Theme: " + theme.Name(a.DarkMode))
}

// copyToClipboard copies the selected clip's content to the clipboard
func (a *AppModel) copyToClipboard() tea.Cmd {
	c, ok := a.Selected()
	if !ok {
		return a.setFlashMessage("No clip selected")
	}
	if a.board == nil {
		return a.setFlashMessage("Clipboard not available")
	}
	if err := clipboard.WriteText(a.board, c.Content); err != nil {
		return a.setFlashMessage(fmt.Sprintf("Copy failed: %v", err))
	}
	return a.setFlashMessage(fmt.Sprintf("Copied %d bytes to clipboard", len(c.Content)))
}

// flashPersisted reports msg, or the storage warning if the last write failed
func (a *AppModel) flashPersisted(msg string) tea.Cmd {
	if err := a.repo.Err(); err != nil {
		return a.setFlashMessage(fmt.Sprintf("%s (not saved: %v)", msg, err))
	}
	return a.setFlashMessage(msg)
}

// setFlashMessage sets a flash message that disappears after flashDuration
func (a *AppModel) setFlashMessage(message string) tea.Cmd {
	a.FlashMessage = message
	a.FlashExpiry = time.Now().Add(flashDuration)
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{}
	})
}

// isMovementCommand checks if a key is a movement command that can use multipliers
func isMovementCommand(key string) bool {
	switch key {
	case "up", "k", "down", "j", "g", "G":
		return true
	}
	return false
}

// executeCommand executes a movement with a number multiplier on the given pane
func (a *AppModel) executeCommand(multiplier int, key string, pane PaneType) (tea.Model, tea.Cmd) {
	maxIndex := len(a.Clips) - 1
	before := a.LeftPane.Cursor

	if pane == LeftPane {
		switch key {
		case "up", "k":
			a.LeftPane.Update(JumpToIndexMsg{Index: max(a.LeftPane.Cursor-multiplier, 0), MaxIndex: maxIndex})
		case "down", "j":
			a.LeftPane.Update(JumpToIndexMsg{Index: min(a.LeftPane.Cursor+multiplier, maxIndex), MaxIndex: maxIndex})
		case "g":
			if multiplier > 1 {
				a.LeftPane.Update(JumpToIndexMsg{Index: min(multiplier-1, maxIndex), MaxIndex: maxIndex})
			} else {
				a.LeftPane.Update(GoToTopMsg{})
			}
		case "G":
			a.LeftPane.Update(GoToBottomMsg{MaxIndex: maxIndex})
		}
		if a.LeftPane.Cursor != before {
			a.RightPane.Update(ResetScrollMsg{})
		}
		return a, nil
	}

	c, _ := a.selectedPtr()
	maxScroll := getMaxScroll(a.RightPane, c)
	switch key {
	case "up", "k":
		a.RightPane.Update(JumpMsg{Direction: "k", Lines: multiplier, MaxScroll: maxScroll})
	case "down", "j":
		a.RightPane.Update(JumpMsg{Direction: "j", Lines: multiplier, MaxScroll: maxScroll})
	case "g":
		if multiplier > 1 {
			a.RightPane.ViewPos = min(multiplier-1, maxScroll)
		} else {
			a.RightPane.Update(ScrollToTopMsg{})
		}
	case "G":
		a.RightPane.Update(ScrollToBottomMsg{MaxScroll: maxScroll})
	}
	return a, nil
}

// View renders the complete application
func (a *AppModel) View() string {
	return AppView(*a)
}

// AppView renders the complete application using pure functions
func AppView(model AppModel) string {
	if model.Width == 0 {
		return "Initializing..."
	}

	if model.CurrentMode == HelpMode {
		return renderHelpView(model) + "\n\n" + renderStatusLine(model)
	}
	if model.CurrentMode == QRMode {
		return renderQRView(model) + "\n\n" + renderStatusLine(model)
	}

	normalView := renderNormalView(model)
	if model.Modal.Active {
		return ModalView(model.Modal, normalView, model.Width, model.Height, model.Styles.Modal)
	}
	return normalView
}

// renderNormalView renders the dual-pane view
func renderNormalView(model AppModel) string {
	var selected *clip.Clip
	if c, ok := model.Selected(); ok {
		selected = &c
	}

	left := LeftPaneView(model.LeftPane, model.Clips, model.Styles, model.ActivePane == LeftPane)
	right := RightPaneView(model.RightPane, selected, model.Options.Search, model.Styles,
		model.ActivePane == RightPane, model.CurrentMode == SearchMode)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n\n" + renderStatusLine(model)
}

// renderStatusLine renders the bottom status line (pure function)
func renderStatusLine(model AppModel) string {
	style := lipgloss.NewStyle().Width(model.Width)

	if model.FlashMessage != "" && time.Now().Before(model.FlashExpiry) {
		return model.Styles.Flash.Width(model.Width).Render(model.FlashMessage)
	}

	var parts []string
	switch {
	case model.NumberBuffer != "":
		parts = append(parts, model.NumberBuffer)
	case model.Search.IsActive():
		parts = append(parts, "/"+model.Search.Input+" (Enter to keep, Esc to cancel)")
	case model.CurrentMode == HelpMode:
		parts = append(parts, "Help - press ? to return, q to quit")
	case model.CurrentMode == QRMode:
		parts = append(parts, "QR code - press Q or Esc to return")
	default:
		parts = append(parts, "sort: "+string(model.Options.Sort))
		if model.Options.Search != "" {
			parts = append(parts, fmt.Sprintf("search: %q", model.Options.Search))
		}
		if len(model.Options.Tags) > 0 {
			parts = append(parts, "tag: "+strings.Join(model.Options.Tags, ","))
		}
		parts = append(parts, fmt.Sprintf("%d/%d clips", len(model.Clips), len(model.all)))
		parts = append(parts, "? for help")
	}

	return style.Render(strings.Join(parts, " | "))
}

const helpContent = `clipstash - clipboard history

NAVIGATION:
  j, ↓        Next clip (right pane: scroll down)
  k, ↑        Previous clip (right pane: scroll up)
  g / G       Top / bottom (with number: go to N)
  #j, #k      Move N rows (e.g. 5j)
  Tab, h, l   Switch panes
  Ctrl+u/d    Half page up/down (right pane)

FILTERING:
  /           Search content and tags as you type
  t           Cycle tag filter
  s           Toggle sort: date / pinned first
  Esc         Clear search and tag filter

CLIPS:
  p           Pin or unpin
  c           Copy to clipboard
  Q           Show as QR code
  d           Delete (asks first)
  D           Clear all clips (asks first)

OTHER:
  T           Toggle dark / light theme
  ?           Toggle this help
  q           Quit

Unpinned clips older than the retention period are removed automatically.
New clipboard text is captured in the background.`

// renderHelpView renders the help content as a single pane (pure function)
func renderHelpView(model AppModel) string {
	return model.Styles.HelpFrame.
		Width(max(model.Width-4, 10)).
		Height(max(model.Height-4, 5)).
		Render(helpContent)
}

// renderQRView renders the QR code of the selected clip (pure function)
func renderQRView(model AppModel) string {
	body := model.Styles.Title.Render(model.QRTitle) + "\n\n" + strings.TrimRight(model.QRCode, "\n")
	return model.Styles.HelpFrame.
		Width(max(model.Width-4, 10)).
		Align(lipgloss.Center).
		Render(body)
}
