package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"glitchterm/internal/ui/input/types"
)

// SearchMode owns the search box. Arrow keys still move through results so
// the list can be browsed without leaving the input.
type SearchMode struct {
	textInput *textinput.Model
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{textInput: ti}
}

func (m *SearchMode) Name() string { return "search" }

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Focus()
	}
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "up", "ctrl+k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "ctrl+j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "esc", "tab":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "enter":
		text := ""
		if m.textInput != nil {
			text = m.textInput.Value()
		}
		return []types.Action{types.SubmitTextAction{Text: text, Mode: types.ModeSearch}}, true
	default:
		// Handled by the shared text input
		return nil, false
	}
}
