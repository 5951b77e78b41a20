// Package theme defines color themes for the bookfees terminal views.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used by the browser and its widgets.
type Theme struct {
	Name        string
	Surface     lipgloss.Color // Card/panel backgrounds
	Selected    lipgloss.Color // Highlighted table row
	Border      lipgloss.Color // Card and table borders
	TextDim     lipgloss.Color // Hints, zero-fee rows
	TextMuted   lipgloss.Color // Labels
	TextPrimary lipgloss.Color
	Accent      lipgloss.Color // Headers, spinner
	Fee         lipgloss.Color // Non-zero fee amounts
	Warn        lipgloss.Color // Late counts
	Error       lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:        "flexoki-dark",
	Surface:     lipgloss.Color("#1C1B1A"),
	Selected:    lipgloss.Color("#282726"),
	Border:      lipgloss.Color("#403E3C"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#878580"),
	TextPrimary: lipgloss.Color("#FFFCF0"),
	Accent:      lipgloss.Color("#3AA99F"),
	Fee:         lipgloss.Color("#879A39"),
	Warn:        lipgloss.Color("#DA702C"),
	Error:       lipgloss.Color("#D14D41"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:        "catppuccin-mocha",
	Surface:     lipgloss.Color("#313244"),
	Selected:    lipgloss.Color("#45475A"),
	Border:      lipgloss.Color("#585B70"),
	TextDim:     lipgloss.Color("#6C7086"),
	TextMuted:   lipgloss.Color("#A6ADC8"),
	TextPrimary: lipgloss.Color("#CDD6F4"),
	Accent:      lipgloss.Color("#89B4FA"),
	Fee:         lipgloss.Color("#A6E3A1"),
	Warn:        lipgloss.Color("#FAB387"),
	Error:       lipgloss.Color("#F38BA8"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:        "terminal",
	Surface:     lipgloss.Color("0"),
	Selected:    lipgloss.Color("8"),
	Border:      lipgloss.Color("8"),
	TextDim:     lipgloss.Color("8"),
	TextMuted:   lipgloss.Color("7"),
	TextPrimary: lipgloss.Color("15"),
	Accent:      lipgloss.Color("6"),
	Fee:         lipgloss.Color("2"),
	Warn:        lipgloss.Color("3"),
	Error:       lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
