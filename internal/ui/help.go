package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Search", []helpEntry{
		{"type", "Search accounts as you type"},
		{"Enter", "Search now"},
		{"↑/↓", "Move through results"},
		{"Tab/Esc", "Leave the search box"},
		{"/", "Back to the search box"},
	}},
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Navigate up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "Go to top/bottom"},
		{"Enter", "Open profile"},
	}},
	{"Profile", []helpEntry{
		{"Tab", "Switch followers/following"},
		{"m", "Load more"},
		{"p", "Open profile in pager"},
		{"Esc", "Back"},
	}},
	{"Other", []helpEntry{
		{"?", "Toggle this help"},
		{"q", "Quit"},
		{"Ctrl+C", "Quit immediately"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// Content renders the full help text
func (r *HelpRenderer) Content() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("glitchterm Help"))
	help.WriteString("\n")
	for _, section := range helpSections {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// Render returns the part of the help that fits in height, from scrollOffset
func (r *HelpRenderer) Render(height, scrollOffset int) string {
	content := r.Content()
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// Account for popup border and padding
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if totalLines <= visibleHeight {
		return content
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	visibleLines := lines[scrollOffset : scrollOffset+visibleHeight]

	more := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if scrollOffset > 0 {
		visibleLines[0] = more.Render("↑ (more above)")
	}
	if scrollOffset+visibleHeight < totalLines {
		visibleLines[len(visibleLines)-1] = more.Render("↓ (more below)")
	}
	return strings.Join(visibleLines, "\n")
}
