package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSettled    EventType = "SearchSettled"
	EventAccountsImported EventType = "AccountsImported"
	EventReblogCompleted  EventType = "ReblogCompleted"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSettledEvent is emitted once a query's outcome is known.
// Query is empty when the input was cleared.
type SearchSettledEvent struct {
	Query string
}

func (e SearchSettledEvent) Type() EventType { return EventSearchSettled }

// AccountsImportedEvent is emitted after accounts were merged into the store
type AccountsImportedEvent struct {
	IDs []string
}

func (e AccountsImportedEvent) Type() EventType { return EventAccountsImported }

// ReblogCompletedEvent is emitted after a reblog or unreblog call succeeded
type ReblogCompletedEvent struct {
	StatusID  string
	Reblogged bool
}

func (e ReblogCompletedEvent) Type() EventType { return EventReblogCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	InstanceURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
