package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plife/internal/life"
)

// Theme pairs a particle palette with the panel colors.
type Theme struct {
	Name    string
	Palette [life.NumColors]lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:    "classic",
		Palette: [life.NumColors]lipgloss.Color{"#ff0000", "#00ff00", "#0000ff", "#ffff00"},
		Accent:  lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#666688"),
	}

	ThemeNeon = Theme{
		Name:    "neon",
		Palette: [life.NumColors]lipgloss.Color{"#ff2a6d", "#05ffa1", "#01cdfe", "#fffb96"},
		Accent:  lipgloss.Color("#ff00ff"),
		Muted:   lipgloss.Color("#555577"),
	}

	ThemePastel = Theme{
		Name:    "pastel",
		Palette: [life.NumColors]lipgloss.Color{"#ff9aa2", "#b5ead7", "#9ad0f5", "#ffdac1"},
		Accent:  lipgloss.Color("#c7ceea"),
		Muted:   lipgloss.Color("#8b8b99"),
	}

	CurrentTheme = ThemeClassic

	Themes = []Theme{ThemeClassic, ThemeNeon, ThemePastel}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme switches CurrentTheme to the one after it in Themes.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeClassic
}

func (t Theme) ParticleStyles() [life.NumColors]lipgloss.Style {
	var styles [life.NumColors]lipgloss.Style
	for i, c := range t.Palette {
		styles[i] = lipgloss.NewStyle().Foreground(c)
	}
	return styles
}
