package modal

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// Choice is the outcome of a standalone prompt
type Choice int

const (
	Cancelled Choice = iota
	Confirmed
	SecondaryChosen
)

func (c Choice) String() string {
	switch c {
	case Confirmed:
		return "confirmed"
	case SecondaryChosen:
		return "secondary"
	default:
		return "cancelled"
	}
}

// promptModel runs a Modal as its own bubbletea program
type promptModel struct {
	modal  *Modal
	styles Styles
	choice Choice
}

func newPromptModel(opts Options) *promptModel {
	p := &promptModel{styles: DefaultStyles()}
	opts.OnConfirm = func() tea.Cmd {
		p.choice = Confirmed
		return nil
	}
	opts.OnSecondary = func() tea.Cmd {
		p.choice = SecondaryChosen
		return nil
	}
	opts.OnClose = nil
	opts.KeepOpenOnConfirm = false
	p.modal = New(opts)
	return p
}

func (p *promptModel) Init() tea.Cmd { return nil }

func (p *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		p.modal.Confirm()
	case "s", "S":
		p.modal.Secondary()
	case "n", "N", "esc", "q", "ctrl+c":
		p.modal.Cancel()
	}
	if !p.modal.IsOpen() {
		return p, tea.Quit
	}
	return p, nil
}

func (p *promptModel) View() string {
	if !p.modal.IsOpen() {
		return ""
	}
	return p.modal.View(p.styles) + "\n"
}

// Prompt shows the dialog on out, reads keys from in and reports the choice
func Prompt(ctx context.Context, opts Options, in io.Reader, out io.Writer) (Choice, error) {
	p := newPromptModel(opts)
	program := tea.NewProgram(p,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		return Cancelled, errors.Wrap(err, "run confirmation prompt")
	}
	return p.choice, nil
}
