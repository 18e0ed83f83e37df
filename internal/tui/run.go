package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yiblet/clipstash/internal/clip"
)

// Run shows the browser until the user quits or ctx is cancelled.
// Repository changes made elsewhere, such as by the capture poller,
// refresh the view.
func Run(ctx context.Context, deps Deps, opts ...tea.ProgramOption) error {
	model := NewAppModel(deps)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)

	// Observers run on the mutating goroutine, which may be the program's
	// own update loop, so Send must not block it.
	cancel := deps.Repo.Subscribe(func([]clip.Clip) {
		go p.Send(ClipsChangedMsg{})
	})
	defer cancel()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
