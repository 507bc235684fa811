package viz

import "github.com/charmbracelet/lipgloss"

// Theme carries the presentation colors. The physics types know nothing
// about these; color is associated with a pendulum here, not stored on it.
type Theme struct {
	Name   string
	LinkA  lipgloss.Color
	LinkB  lipgloss.Color
	Trail  lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	// ThemeCatppuccin mirrors the palette of the original renderer.
	ThemeCatppuccin = Theme{
		Name:   "catppuccin",
		LinkA:  lipgloss.Color("#f38ba8"),
		LinkB:  lipgloss.Color("#a6e3a1"),
		Trail:  lipgloss.Color("#cba6f7"),
		Accent: lipgloss.Color("#89dceb"),
		Muted:  lipgloss.Color("#6c7086"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		LinkA:  lipgloss.Color("#00ff00"),
		LinkB:  lipgloss.Color("#00cc00"),
		Trail:  lipgloss.Color("#88ff88"),
		Accent: lipgloss.Color("#ffff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		LinkA:  lipgloss.Color("#ffffff"),
		LinkB:  lipgloss.Color("#cccccc"),
		Trail:  lipgloss.Color("#888888"),
		Accent: lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#444444"),
	}
)

var themes = []Theme{ThemeCatppuccin, ThemeRetroGreen, ThemeMinimal}

// CurrentTheme is the active color scheme.
var CurrentTheme = ThemeCatppuccin

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

func SetTheme(name string) {
	for _, t := range themes {
		if t.Name == name {
			CurrentTheme = t
			return
		}
	}
}

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)
