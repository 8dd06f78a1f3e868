package profile

import (
	"fmt"
	"time"

	"glitchterm/internal/domain"
)

var visibilityLabels = map[domain.Visibility]string{
	domain.VisibilityPublic:   "🌐 public",
	domain.VisibilityUnlisted: "🔓 unlisted",
	domain.VisibilityPrivate:  "🔒 followers",
	domain.VisibilityDirect:   "✉ direct",
}

// StatusVisibilityLabel is the marker for a status visibility, "" for unknown values
func StatusVisibilityLabel(v domain.Visibility) string {
	return visibilityLabels[v]
}

// EditedAt is the hover text of the edited marker
func EditedAt(t time.Time) string {
	return fmt.Sprintf("Edited %s", t.Format("Jan 02, 2006, 15:04"))
}

// Byline is the status header: author, and the boosting friend when given
func Byline(s *domain.Status, friend *domain.Account) string {
	if s == nil || s.Account == nil {
		return ""
	}
	line := fmt.Sprintf("%s @%s", DisplayName(s.Account), s.Account.Acct)
	if friend != nil {
		line += fmt.Sprintf(" (boosted by @%s)", friend.Acct)
	}
	if label := StatusVisibilityLabel(s.Visibility); label != "" {
		line += "  " + label
	}
	if s.EditedAt != nil {
		line += " *"
	}
	return line
}
