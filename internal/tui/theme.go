package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines all colors used by the comparison UI.
// Use DarkTheme() or LightTheme() to get a pre-built theme,
// or construct a custom Theme.
type Theme struct {
	Primary   lipgloss.Color // focused pane title, cursor
	Secondary lipgloss.Color // selected row text
	Accent    lipgloss.Color // prompt border
	Error     lipgloss.Color // failed operations
	OnlyHere  lipgloss.Color // entries missing from the other pane
	Text      lipgloss.Color // primary text
	TextMuted lipgloss.Color // struck rows, hints, status
	Selected  lipgloss.Color // selected row background
	Border    lipgloss.Color // separators
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#fab283"),
		Secondary: lipgloss.Color("#5c9cf5"),
		Accent:    lipgloss.Color("#9d7cd8"),
		Error:     lipgloss.Color("#e06c75"),
		OnlyHere:  lipgloss.Color("#f5a742"),
		Text:      lipgloss.Color("#eeeeee"),
		TextMuted: lipgloss.Color("#808080"),
		Selected:  lipgloss.Color("#1e1e1e"),
		Border:    lipgloss.Color("#484848"),
	}
}

// LightTheme returns a light theme for bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#b35c00"),
		Secondary: lipgloss.Color("#0550ae"),
		Accent:    lipgloss.Color("#6639ba"),
		Error:     lipgloss.Color("#cf222e"),
		OnlyHere:  lipgloss.Color("#bf8700"),
		Text:      lipgloss.Color("#1f2328"),
		TextMuted: lipgloss.Color("#656d76"),
		Selected:  lipgloss.Color("#f6f8fa"),
		Border:    lipgloss.Color("#d0d7de"),
	}
}

// ThemeByName returns a theme by name. Defaults to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DarkTheme()
	}
}

// styles holds all lipgloss styles derived from a Theme.
type styles struct {
	title      lipgloss.Style
	titleDim   lipgloss.Style
	header     lipgloss.Style
	selected   lipgloss.Style
	onlyHere   lipgloss.Style
	struck     lipgloss.Style
	text       lipgloss.Style
	dim        lipgloss.Style
	err        lipgloss.Style
	status     lipgloss.Style
	promptBox  lipgloss.Style
	promptHead lipgloss.Style

	hintKey  lipgloss.Style
	hintDesc lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		titleDim:   lipgloss.NewStyle().Foreground(t.TextMuted),
		header:     lipgloss.NewStyle().Foreground(t.Border),
		selected:   lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Background(t.Selected),
		onlyHere:   lipgloss.NewStyle().Foreground(t.OnlyHere),
		struck:     lipgloss.NewStyle().Strikethrough(true).Foreground(t.TextMuted),
		text:       lipgloss.NewStyle().Foreground(t.Text),
		dim:        lipgloss.NewStyle().Foreground(t.TextMuted),
		err:        lipgloss.NewStyle().Foreground(t.Error),
		status:     lipgloss.NewStyle().Foreground(t.TextMuted),
		promptBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Accent).Padding(0, 1),
		promptHead: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),

		hintKey:  lipgloss.NewStyle().Foreground(t.Text),
		hintDesc: lipgloss.NewStyle().Foreground(t.TextMuted),
	}
}
