package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/backtest-console/internal/prefs"
)

// Styles carries the lipgloss styles for the active theme.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	FieldErr  lipgloss.Style
	Success   lipgloss.Style
	Failure   lipgloss.Style
	StatusBar lipgloss.Style
	Panel     lipgloss.Style
}

// NewStyles builds the style set for a theme preference. The system theme
// uses adaptive colours and follows the terminal background.
func NewStyles(theme prefs.Theme) Styles {
	var accent, muted, good, bad lipgloss.TerminalColor

	switch theme {
	case prefs.ThemeLight:
		accent = lipgloss.Color("26")
		muted = lipgloss.Color("243")
		good = lipgloss.Color("28")
		bad = lipgloss.Color("124")
	case prefs.ThemeDark:
		accent = lipgloss.Color("39")
		muted = lipgloss.Color("245")
		good = lipgloss.Color("42")
		bad = lipgloss.Color("203")
	default: // system
		accent = lipgloss.AdaptiveColor{Light: "26", Dark: "39"}
		muted = lipgloss.AdaptiveColor{Light: "243", Dark: "245"}
		good = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
		bad = lipgloss.AdaptiveColor{Light: "124", Dark: "203"}
	}

	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Header:    lipgloss.NewStyle().Bold(true).Underline(true),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		FieldErr:  lipgloss.NewStyle().Foreground(bad),
		Success:   lipgloss.NewStyle().Foreground(good),
		Failure:   lipgloss.NewStyle().Foreground(bad),
		StatusBar: lipgloss.NewStyle().Foreground(muted),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
