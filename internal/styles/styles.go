package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is drawn with.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Faint   lipgloss.Color
	Success lipgloss.Color
	Danger  lipgloss.Color
}

// Theme is a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// Themes is the fixed cycle order. The first entry is the default.
var Themes = []Theme{
	{"flatly", Palette{
		Primary: "#2C3E50", Accent: "#18BC9C", Text: "#212529",
		Muted: "#7B8A8B", Faint: "#B4BCC2", Success: "#18BC9C", Danger: "#E74C3C",
	}},
	{"darkly", Palette{
		Primary: "#375A7F", Accent: "#00BC8C", Text: "#FFFFFF",
		Muted: "#ADB5BD", Faint: "#444444", Success: "#00BC8C", Danger: "#E74C3C",
	}},
	{"cosmo", Palette{
		Primary: "#2780E3", Accent: "#9954BB", Text: "#373A3C",
		Muted: "#868E96", Faint: "#CED4DA", Success: "#3FB618", Danger: "#FF0039",
	}},
	{"cyborg", Palette{
		Primary: "#2A9FD6", Accent: "#9933CC", Text: "#ADAFAE",
		Muted: "#888888", Faint: "#3D4250", Success: "#77B300", Danger: "#CC0000",
	}},
	{"solar", Palette{
		Primary: "#B58900", Accent: "#2AA198", Text: "#839496",
		Muted: "#657B83", Faint: "#073642", Success: "#2AA198", Danger: "#D33682",
	}},
	{"superhero", Palette{
		Primary: "#DF691A", Accent: "#5BC0DE", Text: "#EBEBEB",
		Muted: "#8A8F98", Faint: "#4E5D6C", Success: "#5CB85C", Danger: "#D9534F",
	}},
}

// Lookup finds a theme by case-insensitive name, falling back to the default.
func Lookup(name string) Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// Next returns the theme after name in the cycle. Unknown names restart it.
func Next(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)].Name
		}
	}
	return Themes[0].Name
}

// Styles are the rendered styles for one theme.
type Styles struct {
	Theme string

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Selected     lipgloss.Style
	Dimmed       lipgloss.Style
	Success      lipgloss.Style
	Err          lipgloss.Style
	Help         lipgloss.Style
	Box          lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	Badge        lipgloss.Style
	Path         lipgloss.Style
	Status       lipgloss.Style
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
}

// New builds the styles for the named theme.
func New(name string) Styles {
	t := Lookup(name)
	p := t.Palette

	return Styles{
		Theme: t.Name,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.Accent),

		Selected: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Dimmed: lipgloss.NewStyle().
			Foreground(p.Muted),

		Success: lipgloss.NewStyle().
			Foreground(p.Success),

		Err: lipgloss.NewStyle().
			Foreground(p.Danger),

		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Faint).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),

		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),

		Badge: lipgloss.NewStyle().
			Foreground(p.Muted),

		Path: lipgloss.NewStyle().
			Foreground(p.Faint),

		Status: lipgloss.NewStyle().
			Foreground(p.Muted),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Danger).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Danger),
	}
}
