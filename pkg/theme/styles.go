package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles is the set of lipgloss styles the gallery view draws with.
type Styles struct {
	Title       lipgloss.Style
	Error       lipgloss.Style
	Label       lipgloss.Style
	Caption     lipgloss.Style
	Activity    lipgloss.Style
	Button      lipgloss.Style
	Radio       lipgloss.Style
	RadioOn     lipgloss.Style
	Thumb       lipgloss.Style
	ThumbOn     lipgloss.Style
	Canvas      lipgloss.Style
	SliderFocus lipgloss.Style
	Footer      lipgloss.Style
}

// NewStyles builds the gallery styles for t.
func NewStyles(t Theme) Styles {
	fg := lipgloss.Color(t.Foreground)
	dim := lipgloss.Color(t.Dim)
	accent := lipgloss.Color(t.Accent)
	sel := lipgloss.Color(t.Selected)

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Error)),
		Label:    lipgloss.NewStyle().Foreground(fg),
		Caption:  lipgloss.NewStyle().Foreground(dim),
		Activity: lipgloss.NewStyle().Italic(true).Foreground(dim),
		Button: lipgloss.NewStyle().
			Foreground(fg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Radio:   lipgloss.NewStyle().Foreground(dim),
		RadioOn: lipgloss.NewStyle().Bold(true).Foreground(sel),
		Thumb: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Foreground(fg),
		ThumbOn: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(sel).
			Foreground(fg).
			Bold(true),
		Canvas: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),
		SliderFocus: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Footer:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.HelpDesc)),
	}
}

// ApplyProfile sets the lipgloss colour profile from the output's detected
// capabilities. A noColor request forces the ASCII profile.
func ApplyProfile(noColor bool) termenv.Profile {
	p := termenv.EnvColorProfile()
	if noColor {
		p = termenv.Ascii
	}
	lipgloss.SetColorProfile(p)
	return p
}
