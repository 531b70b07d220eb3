package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds every style the dashboard renders with. It is passed down from
// the root model; nothing reads a package-level theme.
type Theme struct {
	Name string

	Primary  lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Border   lipgloss.Color

	Panel       lipgloss.Style
	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	MutedText   lipgloss.Style
	Error       lipgloss.Style
	Up          lipgloss.Style
	Down        lipgloss.Style
	CloseLine   lipgloss.Style
	OpenLine    lipgloss.Style
	Axis        lipgloss.Style
	PresetKey   lipgloss.Style
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
}

type palette struct {
	name     string
	primary  string
	positive string
	negative string
	text     string
	muted    string
	border   string
	accent   string
	barBg    string
}

var (
	darkPalette = palette{
		name:     "dark",
		primary:  "#7C3AED",
		positive: "#22C55E",
		negative: "#F87171",
		text:     "#E4E4E7",
		muted:    "#A1A1AA",
		border:   "#3F3F46",
		accent:   "#F59E0B",
		barBg:    "#1F2937",
	}
	lightPalette = palette{
		name:     "light",
		primary:  "#6D28D9",
		positive: "#16A34A",
		negative: "#DC3545",
		text:     "#212529",
		muted:    "#6C757D",
		border:   "#CED4DA",
		accent:   "#B45309",
		barBg:    "#E9ECEF",
	}
)

// DarkTheme is the default theme
func DarkTheme() Theme { return newTheme(darkPalette) }

// LightTheme is for light terminal backgrounds
func LightTheme() Theme { return newTheme(lightPalette) }

// ThemeByName resolves "dark" or "light"
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t.Name == lightPalette.name {
		return DarkTheme()
	}
	return LightTheme()
}

func newTheme(p palette) Theme {
	primary := lipgloss.Color(p.primary)
	positive := lipgloss.Color(p.positive)
	negative := lipgloss.Color(p.negative)
	text := lipgloss.Color(p.text)
	muted := lipgloss.Color(p.muted)
	border := lipgloss.Color(p.border)
	accent := lipgloss.Color(p.accent)

	return Theme{
		Name:     p.name,
		Primary:  primary,
		Positive: positive,
		Negative: negative,
		Text:     text,
		Muted:    muted,
		Border:   border,

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			Background(primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),
		Label:     lipgloss.NewStyle().Foreground(muted),
		Value:     lipgloss.NewStyle().Bold(true).Foreground(text),
		MutedText: lipgloss.NewStyle().Foreground(muted),
		Error:     lipgloss.NewStyle().Foreground(negative),
		Up:        lipgloss.NewStyle().Bold(true).Foreground(positive),
		Down:      lipgloss.NewStyle().Bold(true).Foreground(negative),
		CloseLine: lipgloss.NewStyle().Foreground(primary),
		OpenLine:  lipgloss.NewStyle().Foreground(accent),
		Axis:      lipgloss.NewStyle().Foreground(muted),
		PresetKey: lipgloss.NewStyle().Bold(true).Foreground(accent),
		StatusBar: lipgloss.NewStyle().
			Foreground(text).
			Background(lipgloss.Color(p.barBg)).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Background(lipgloss.Color(p.barBg)),
	}
}
