package views

import (
	"github.com/charmbracelet/lipgloss"

	"glitchterm/internal/profile"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Handle        lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Input         lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	HighlightBg   lipgloss.Style
	Badge         lipgloss.Style
	Note          lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	FieldName     lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	Popup         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Handle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		HighlightBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Badge:         lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("244")).Padding(0, 1),
		Note:          lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		TabActive:     lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("99")),
		TabInactive:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FieldName:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
	}
}

// FieldMarker returns the glyph shown before a profile field value
func FieldMarker(icon profile.FieldIcon) string {
	switch icon {
	case profile.IconVerified:
		return "✓ "
	case profile.IconLink:
		return "↗ "
	default:
		return ""
	}
}
