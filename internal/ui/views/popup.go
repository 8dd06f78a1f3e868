package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{styles: styles}
}

// RenderPopupOverlay centres popupContent over a greyed-out mainContent
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - modalH) / 2
	if y < 0 {
		y = 0
	}

	// Modal lines replace whole base lines; the left margin stays blank
	pad := strings.Repeat(" ", x)
	for i, line := range strings.Split(styledPopup, "\n") {
		if y+i >= len(base) {
			base = append(base, pad+line)
			continue
		}
		base[y+i] = pad + line
	}
	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes colour and style escapes
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(StripANSI(s), "\n")
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = grey.Render(line)
	}
	return strings.Join(lines, "\n")
}
