package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/san-kum/termrain/internal/rain"
)

// Theme defines the colour of each tier. Colours follow lipgloss notation:
// "0"-"15" are the ANSI palette, "#rrggbb" is true colour.
type Theme struct {
	Name        string
	Foreground  lipgloss.Color // plain mode
	Background  lipgloss.Color
	DimGreen    lipgloss.Color
	BrightGreen lipgloss.Color
	DimWhite    lipgloss.Color
	BrightWhite lipgloss.Color
}

// Available themes
var (
	// ThemeClassic uses the basic ANSI palette so it works on any colour
	// terminal.
	ThemeClassic = Theme{
		Name:        "classic",
		Foreground:  lipgloss.Color("2"),
		Background:  lipgloss.Color("2"),
		DimGreen:    lipgloss.Color("2"),
		BrightGreen: lipgloss.Color("10"),
		DimWhite:    lipgloss.Color("7"),
		BrightWhite: lipgloss.Color("15"),
	}

	ThemeRetroGreen = Theme{
		Name:        "retro",
		Foreground:  lipgloss.Color("#00cc00"),
		Background:  lipgloss.Color("#003300"),
		DimGreen:    lipgloss.Color("#005500"),
		BrightGreen: lipgloss.Color("#00ff00"),
		DimWhite:    lipgloss.Color("#88ff88"),
		BrightWhite: lipgloss.Color("#eeffee"),
	}

	ThemeOcean = Theme{
		Name:        "ocean",
		Foreground:  lipgloss.Color("#0077be"),
		Background:  lipgloss.Color("#001a33"),
		DimGreen:    lipgloss.Color("#0077be"), // Ocean blue
		BrightGreen: lipgloss.Color("#00a8cc"),
		DimWhite:    lipgloss.Color("#4488aa"),
		BrightWhite: lipgloss.Color("#e0f0ff"),
	}

	ThemeSunset = Theme{
		Name:        "sunset",
		Foreground:  lipgloss.Color("#ff6b6b"),
		Background:  lipgloss.Color("#2d1b2e"),
		DimGreen:    lipgloss.Color("#8b6b8c"),
		BrightGreen: lipgloss.Color("#ff6b6b"), // Coral
		DimWhite:    lipgloss.Color("#feca57"),
		BrightWhite: lipgloss.Color("#fff5f5"),
	}

	ThemeMinimal = Theme{
		Name:        "minimal",
		Foreground:  lipgloss.Color("#cccccc"),
		Background:  lipgloss.Color("#000000"),
		DimGreen:    lipgloss.Color("#444444"),
		BrightGreen: lipgloss.Color("#888888"),
		DimWhite:    lipgloss.Color("#cccccc"),
		BrightWhite: lipgloss.Color("#ffffff"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
		ThemeMinimal,
	}
)

// LookupTheme returns a theme by name.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	if t, ok := LookupTheme(name); ok {
		return t
	}
	return ThemeClassic
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) color(tier rain.Tier) lipgloss.Color {
	switch tier {
	case rain.DimGreen:
		return t.DimGreen
	case rain.BrightGreen:
		return t.BrightGreen
	case rain.DimWhite:
		return t.DimWhite
	case rain.BrightWhite:
		return t.BrightWhite
	default:
		return t.Background
	}
}

// Styles converts the theme into foreground escape sequences for the given
// colour profile. Colours are degraded to what the profile supports; the
// Ascii profile yields no tokens at all.
func (t Theme) Styles(p termenv.Profile) rain.Styles {
	var s rain.Styles
	if p == termenv.Ascii {
		return s
	}
	s.Foreground = token(p, t.Foreground)
	for _, tier := range rain.Tiers() {
		s.Tiers[tier] = token(p, t.color(tier))
	}
	return s
}

func token(p termenv.Profile, c lipgloss.Color) string {
	col := p.Color(string(c))
	if col == nil {
		return ""
	}
	seq := col.Sequence(false)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}
