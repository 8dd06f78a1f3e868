package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Profile actions
type OpenProfileAction struct {
	AccountID string
}

func (a OpenProfileAction) Type() string { return "open_profile" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type ToggleListAction struct{}

func (a ToggleListAction) Type() string { return "toggle_list" }

type LoadMoreAction struct{}

func (a LoadMoreAction) Type() string { return "load_more" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// Modal actions
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

type SecondaryAction struct{}

func (a SecondaryAction) Type() string { return "secondary" }

type DismissAction struct{}

func (a DismissAction) Type() string { return "dismiss" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
