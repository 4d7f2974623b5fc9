package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Text          string
	Muted         string
	Accent        string
	Success       string
	Warning       string
	Danger        string
	Border        string
	SelectionBg   string
	SelectionText string
}

var themes = []Theme{
	{
		Name:          "Dracula",
		Text:          "#f8f8f2",
		Muted:         "#6272a4",
		Accent:        "#bd93f9",
		Success:       "#50fa7b",
		Warning:       "#f1fa8c",
		Danger:        "#ff5555",
		Border:        "#44475a",
		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",
	},
	{
		Name:          "Slate",
		Text:          "#e2e8f0",
		Muted:         "#64748b",
		Accent:        "#7dd3fc",
		Success:       "#86efac",
		Warning:       "#fde047",
		Danger:        "#fca5a5",
		Border:        "#334155",
		SelectionBg:   "#334155",
		SelectionText: "#f1f5f9",
	},
}

// GetTheme returns the named theme, defaulting to the first one.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name following the given one, wrapping around.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// Styles returns Lipgloss styles for this theme.
type Styles struct {
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Danger   lipgloss.Style
	Selected lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
}

// Styles builds the style set for the theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Tab: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		TabOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Underline(true),
	}
}
