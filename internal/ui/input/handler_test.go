package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchterm/internal/ui/input/types"
)

type fakeContext struct {
	screen    types.Screen
	accountID string
}

func (c fakeContext) Screen() types.Screen     { return c.screen }
func (c fakeContext) CurrentIndex() int        { return 0 }
func (c fakeContext) TotalItems() int          { return 1 }
func (c fakeContext) CurrentAccountID() string { return c.accountID }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingUpdatesQuery(t *testing.T) {
	h := New()
	ctx := fakeContext{}

	actions, _ := h.HandleKey(runes("a"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "a"}, actions[0])

	actions, _ = h.HandleKey(runes("b"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "ab"}}, actions)
	assert.Equal(t, "ab", h.TextInput().Value())
}

func TestEnterSubmitsSearch(t *testing.T) {
	h := New()
	h.TextInput().SetValue("alice")

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, fakeContext{})
	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "alice", Mode: types.ModeSearch}}, actions)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
}

func TestTabLeavesSearchAndSlashReturns(t *testing.T) {
	h := New()
	ctx := fakeContext{accountID: "7"}

	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	// Letters are commands in normal mode
	actions, _ := h.HandleKey(runes("j"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)
	assert.Empty(t, h.TextInput().Value())

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.OpenProfileAction{AccountID: "7"}}, actions)

	h.HandleKey(runes("/"), ctx)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
}

func TestProfileKeysOnlyOnProfileScreen(t *testing.T) {
	h := New()
	h.ChangeMode(types.ModeNormal, fakeContext{})

	actions, _ := h.HandleKey(runes("p"), fakeContext{screen: types.ScreenSearch})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("p"), fakeContext{screen: types.ScreenProfile})
	assert.Equal(t, []types.Action{types.OpenPagerAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, fakeContext{screen: types.ScreenProfile})
	assert.Equal(t, []types.Action{types.ToggleListAction{}}, actions)
}

func TestConfirmModeKeys(t *testing.T) {
	h := New()
	ctx := fakeContext{}
	h.ChangeMode(types.ModeConfirm, ctx)

	tests := []struct {
		key  tea.KeyMsg
		want []types.Action
	}{
		{runes("y"), []types.Action{types.ConfirmAction{}}},
		{tea.KeyMsg{Type: tea.KeyEnter}, []types.Action{types.ConfirmAction{}}},
		{runes("s"), []types.Action{types.SecondaryAction{}}},
		{tea.KeyMsg{Type: tea.KeyEsc}, []types.Action{types.DismissAction{}}},
		{runes("x"), nil},
	}
	for _, tt := range tests {
		actions, _ := h.HandleKey(tt.key, ctx)
		assert.Equal(t, tt.want, actions, tt.key.String())
	}
}
