// Package theme defines the light and dark palettes.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrUnknownTheme is returned by ParseStrict for names other than dark and light.
var ErrUnknownTheme = errors.New("unknown theme")

// Name identifies a theme.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// Default is used when nothing has been saved.
const Default = Dark

// Parse interprets a persisted theme value. An empty value selects the
// default; any value other than "dark" selects the light theme.
func Parse(saved string) Name {
	switch strings.TrimSpace(saved) {
	case "":
		return Default
	case string(Dark):
		return Dark
	default:
		return Light
	}
}

// ParseStrict accepts only "dark" or "light", for user input.
func ParseStrict(name string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(name))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return "", fmt.Errorf("%w %q, must be dark or light", ErrUnknownTheme, name)
}

// Toggle returns the other theme.
func Toggle(n Name) Name {
	if n == Dark {
		return Light
	}
	return Dark
}

// Icon returns the glyph shown on the theme toggle: the moon while dark,
// the sun while light.
func (n Name) Icon() string {
	if n == Dark {
		return "☾"
	}
	return "☀"
}

// Palette holds the colors of a theme.
type Palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Done       lipgloss.Color
	Accent     lipgloss.Color
	Drag       lipgloss.Color
}

// PaletteFor returns the colors of theme n.
func PaletteFor(n Name) Palette {
	if n == Light {
		return Palette{
			Background: lipgloss.Color("#FAFAFA"),
			Surface:    lipgloss.Color("#FFFFFF"),
			Text:       lipgloss.Color("#494C6B"),
			Muted:      lipgloss.Color("#9495A5"),
			Done:       lipgloss.Color("#D1D2DA"),
			Accent:     lipgloss.Color("#3A7CFD"),
			Drag:       lipgloss.Color("#E3E4F1"),
		}
	}
	return Palette{
		Background: lipgloss.Color("#171823"),
		Surface:    lipgloss.Color("#25273D"),
		Text:       lipgloss.Color("#C8CBE7"),
		Muted:      lipgloss.Color("#767992"),
		Done:       lipgloss.Color("#4D5067"),
		Accent:     lipgloss.Color("#3A7CFD"),
		Drag:       lipgloss.Color("#393A4B"),
	}
}

// Styles are the lipgloss styles used by the terminal UI.
type Styles struct {
	Title     lipgloss.Style
	Item      lipgloss.Style
	Completed lipgloss.Style
	Dragged   lipgloss.Style
	Selected  lipgloss.Style
	Footer    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Error     lipgloss.Style
}

// StylesFor builds the styles for theme n.
func StylesFor(n Name) Styles {
	p := PaletteFor(n)
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.Text).MarginBottom(1),
		Item:      lipgloss.NewStyle().Foreground(p.Text),
		Completed: lipgloss.NewStyle().Foreground(p.Done).Strikethrough(true),
		Dragged:   lipgloss.NewStyle().Foreground(p.Text).Background(p.Drag).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(p.Accent),
		Footer:    lipgloss.NewStyle().Foreground(p.Muted),
		Tab:       lipgloss.NewStyle().Foreground(p.Muted),
		ActiveTab: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E05555")),
	}
}
