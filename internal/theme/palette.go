package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors the browser draws with.
type Palette struct {
	Border      lipgloss.Color
	Focus       lipgloss.Color
	Searching   lipgloss.Color
	SelectionBg lipgloss.Color
	SelectionFg lipgloss.Color
	Match       lipgloss.Color
	MatchFg     lipgloss.Color
	Pinned      lipgloss.Color
	Tag         lipgloss.Color
	Muted       lipgloss.Color
	Flash       lipgloss.Color
	Danger      lipgloss.Color
}

// Dark is tuned for dark terminal backgrounds.
func Dark() Palette {
	return Palette{
		Border:      "62",
		Focus:       "205",
		Searching:   "220",
		SelectionBg: "62",
		SelectionFg: "230",
		Match:       "11",
		MatchFg:     "0",
		Pinned:      "214",
		Tag:         "39",
		Muted:       "245",
		Flash:       "10",
		Danger:      "9",
	}
}

// Light is tuned for light terminal backgrounds.
func Light() Palette {
	return Palette{
		Border:      "60",
		Focus:       "162",
		Searching:   "136",
		SelectionBg: "189",
		SelectionFg: "16",
		Match:       "228",
		MatchFg:     "16",
		Pinned:      "166",
		Tag:         "25",
		Muted:       "242",
		Flash:       "28",
		Danger:      "160",
	}
}

// For returns the palette for the given mode.
func For(dark bool) Palette {
	if dark {
		return Dark()
	}
	return Light()
}

// Styles are the lipgloss styles built from a palette.
type Styles struct {
	Palette   Palette
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Pinned    lipgloss.Style
	Tag       lipgloss.Style
	Muted     lipgloss.Style
	Flash     lipgloss.Style
	Match     lipgloss.Style
	Modal     lipgloss.Style
	HelpFrame lipgloss.Style
}

// NewStyles builds Styles for p.
func NewStyles(p Palette) Styles {
	return Styles{
		Palette:  p,
		Title:    lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Background(p.SelectionBg).Foreground(p.SelectionFg),
		Pinned:   lipgloss.NewStyle().Foreground(p.Pinned).Bold(true),
		Tag:      lipgloss.NewStyle().Foreground(p.Tag),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Flash:    lipgloss.NewStyle().Foreground(p.Flash),
		Match:    lipgloss.NewStyle().Background(p.Match).Foreground(p.MatchFg),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Danger).
			Padding(1, 2),
		HelpFrame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1),
	}
}
