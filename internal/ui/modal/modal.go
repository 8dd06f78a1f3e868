// Package modal is the confirmation dialog shared by the TUI and the CLI
// prompts.
package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const DefaultCancel = "Cancel"

// Options describes a confirmation dialog
type Options struct {
	Title     string
	Message   string
	Confirm   string
	Cancel    string // defaults to DefaultCancel
	Secondary string // no secondary button when empty

	// KeepOpenOnConfirm leaves the modal open after confirming
	KeepOpenOnConfirm bool
	Disabled          bool

	OnConfirm   func() tea.Cmd
	OnSecondary func() tea.Cmd
	OnClose     func()
}

// Modal is an open or closed confirmation dialog
type Modal struct {
	opts     Options
	open     bool
	updating bool
}

func New(opts Options) *Modal {
	if opts.Cancel == "" {
		opts.Cancel = DefaultCancel
	}
	return &Modal{opts: opts, open: true}
}

func (m *Modal) IsOpen() bool { return m != nil && m.open }

func (m *Modal) Title() string { return m.opts.Title }

// SetUpdating marks the confirm action as in flight
func (m *Modal) SetUpdating(updating bool) { m.updating = updating }

func (m *Modal) Updating() bool { return m.updating }

// SetDisabled toggles whether confirm and secondary are accepted
func (m *Modal) SetDisabled(disabled bool) { m.opts.Disabled = disabled }

// Confirm closes the modal (unless KeepOpenOnConfirm) and then runs OnConfirm.
// It is a no-op while disabled or updating.
func (m *Modal) Confirm() tea.Cmd {
	if !m.IsOpen() || m.opts.Disabled || m.updating {
		return nil
	}
	if !m.opts.KeepOpenOnConfirm {
		m.close()
	}
	if m.opts.OnConfirm == nil {
		return nil
	}
	return m.opts.OnConfirm()
}

// Secondary closes the modal and then runs OnSecondary
func (m *Modal) Secondary() tea.Cmd {
	if !m.IsOpen() || m.opts.Secondary == "" || m.opts.Disabled {
		return nil
	}
	m.close()
	if m.opts.OnSecondary == nil {
		return nil
	}
	return m.opts.OnSecondary()
}

// Cancel closes the modal without confirming
func (m *Modal) Cancel() {
	if !m.IsOpen() {
		return
	}
	m.close()
}

func (m *Modal) close() {
	m.open = false
	if m.opts.OnClose != nil {
		m.opts.OnClose()
	}
}

// Styles for the dialog box and its buttons
type Styles struct {
	Box      lipgloss.Style
	Title    lipgloss.Style
	Button   lipgloss.Style
	Primary  lipgloss.Style
	Disabled lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Button:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Primary:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		Disabled: lipgloss.NewStyle().Faint(true),
	}
}

// Content renders the dialog body without the surrounding box
func (m *Modal) Content(st Styles) string {
	var b strings.Builder
	if m.opts.Title != "" {
		b.WriteString(st.Title.Render(m.opts.Title))
		b.WriteString("\n\n")
	}
	if m.opts.Message != "" {
		b.WriteString(m.opts.Message)
		b.WriteString("\n\n")
	}

	actionStyle := st.Primary
	if m.opts.Disabled {
		actionStyle = st.Disabled
	}

	buttons := []string{st.Button.Render("[n] " + m.opts.Cancel)}
	if m.opts.Secondary != "" {
		buttons = append(buttons, actionStyle.Render("[s] "+m.opts.Secondary))
	}
	confirm := m.opts.Confirm
	if m.updating {
		confirm += "…"
	}
	buttons = append(buttons, actionStyle.Render("[y] "+confirm))
	b.WriteString(strings.Join(buttons, "   "))
	return b.String()
}

// View renders the boxed dialog
func (m *Modal) View(st Styles) string {
	return st.Box.Render(m.Content(st))
}
