package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"glitchterm/internal/ui/input/types"
)

// NormalMode moves through search results and profile lists
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string { return "normal" }

func (m *NormalMode) Enter(ctx types.Context) []types.Action { return nil }

func (m *NormalMode) Exit(ctx types.Context) []types.Action { return nil }

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "pgup", "ctrl+u":
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case "pgdown", "ctrl+d":
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case "home", "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "end", "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "enter":
		if id := ctx.CurrentAccountID(); id != "" {
			return []types.Action{types.OpenProfileAction{AccountID: id}}, true
		}
		return nil, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	}

	if ctx.Screen() != types.ScreenProfile {
		return nil, false
	}

	switch msg.String() {
	case "esc", "backspace":
		return []types.Action{types.BackAction{}}, true
	case "tab":
		return []types.Action{types.ToggleListAction{}}, true
	case "m":
		return []types.Action{types.LoadMoreAction{}}, true
	case "p":
		return []types.Action{types.OpenPagerAction{}}, true
	}
	return nil, false
}
