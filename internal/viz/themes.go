package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the replay color scheme.
type Theme struct {
	Name    string
	Frame   lipgloss.Color
	Title   lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	Warning lipgloss.Color
	Bad     lipgloss.Color
}

var (
	ThemeMission = Theme{
		Name:    "mission",
		Frame:   lipgloss.Color("#00ffcc"),
		Title:   lipgloss.Color("#00ffff"),
		Label:   lipgloss.Color("#888899"),
		Value:   lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#444466"),
		Good:    lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Bad:     lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Frame:   lipgloss.Color("#00ff00"),
		Title:   lipgloss.Color("#88ff88"),
		Label:   lipgloss.Color("#00aa00"),
		Value:   lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Good:    lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Bad:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Frame:   lipgloss.Color("#ffffff"),
		Title:   lipgloss.Color("#ffffff"),
		Label:   lipgloss.Color("#888888"),
		Value:   lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#555555"),
		Good:    lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Bad:     lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeMission,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// styles derived from a theme for one render.
type themeStyles struct {
	canvas, title, label, value, muted, good, warning, bad lipgloss.Style
}

func (t Theme) styles() themeStyles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return themeStyles{
		canvas:  fg(t.Frame).Padding(1, 2),
		title:   fg(t.Title).Bold(true).MarginBottom(1),
		label:   fg(t.Label).Width(12),
		value:   fg(t.Value),
		muted:   fg(t.Muted),
		good:    fg(t.Good).Bold(true),
		warning: fg(t.Warning).Bold(true),
		bad:     fg(t.Bad).Bold(true),
	}
}
