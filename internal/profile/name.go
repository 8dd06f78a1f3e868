// Package profile turns accounts and relationships into the presentation
// decisions of a profile page: title, name line, header blocks, fields and
// follower lists. Nothing here renders; the UI draws what it is told.
package profile

import (
	"fmt"
	"strings"

	"glitchterm/internal/domain"
)

// DisplayName falls back to the username when the display name is blank
func DisplayName(a *domain.Account) string {
	if strings.TrimSpace(a.DisplayName) == "" {
		return a.Username
	}
	return a.DisplayName
}

// Title is the page title: "Name (@user@domain)"
func Title(a *domain.Account, localDomain string) string {
	acct := a.Acct
	if a.Acct == a.Username {
		acct = a.Username + "@" + localDomain
	}
	return fmt.Sprintf("%s (@%s)", DisplayName(a), acct)
}

// SplitAcct splits "user@domain"; a bare local acct gets localDomain
func SplitAcct(acct, localDomain string) (username, domain string) {
	username, domain, found := strings.Cut(acct, "@")
	if !found || domain == "" {
		domain = localDomain
	}
	return username, domain
}

// IsLocal reports whether the account lives on this server
func IsLocal(a *domain.Account) bool {
	return !strings.Contains(a.Acct, "@")
}

// Robots is the robots directive for the profile page
func Robots(a *domain.Account) string {
	if IsLocal(a) && !a.Noindex {
		return "all"
	}
	return "noindex"
}

// RemoteDomain is the domain part of a remote acct, "" for local accounts
func RemoteDomain(a *domain.Account) string {
	_, domain, _ := strings.Cut(a.Acct, "@")
	return domain
}

// NameLine is the handle shown under the display name
type NameLine struct {
	DisplayName string
	Username    string
	Domain      string
	IsSelf      bool
	Locked      bool
}

// Handle renders "@user@domain"
func (n NameLine) Handle() string {
	return "@" + n.Username + "@" + n.Domain
}

// BuildNameLine prepares the account name block. me is the logged-in account id.
func BuildNameLine(a *domain.Account, me, localDomain string) NameLine {
	username, domain := SplitAcct(a.Acct, localDomain)
	return NameLine{
		DisplayName: DisplayName(a),
		Username:    username,
		Domain:      domain,
		IsSelf:      me != "" && me == a.ID,
		Locked:      a.Locked,
	}
}
