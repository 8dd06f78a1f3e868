package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeConfirm
)

// Screen is the page the model is showing
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenProfile
)

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	Screen() Screen
	CurrentIndex() int
	TotalItems() int
	CurrentAccountID() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	Enter(ctx Context) []Action
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
