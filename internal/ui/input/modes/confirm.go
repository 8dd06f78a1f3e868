package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"glitchterm/internal/ui/input/types"
)

// ConfirmMode routes keys to the open confirmation modal
type ConfirmMode struct{}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string { return "confirm" }

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action { return nil }

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action { return nil }

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "y", "Y", "enter":
		return []types.Action{types.ConfirmAction{}}, true
	case "s", "S":
		return []types.Action{types.SecondaryAction{}}, true
	case "n", "N", "esc":
		return []types.Action{types.DismissAction{}}, true
	}
	// Modal swallows everything else
	return nil, true
}
