package ui

import (
	"glitchterm/internal/api"
	"glitchterm/internal/domain"
	"glitchterm/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// profileLoadedMsg carries the account and, when logged in, the relationship
type profileLoadedMsg struct {
	accountID    string
	account      *domain.Account
	relationship *domain.Relationship
	err          error
}

// listPageMsg carries one page of followers or following
type listPageMsg struct {
	accountID string
	tab       listTab
	page      *api.AccountPage
	err       error
}

// pagerMsg reports the pager exiting
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
