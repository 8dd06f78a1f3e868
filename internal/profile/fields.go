package profile

import (
	"net/url"
	"time"

	"glitchterm/internal/domain"
)

// FieldIcon marks a profile field
type FieldIcon int

const (
	IconNone FieldIcon = iota
	IconVerified
	IconLink
)

// Field is a profile field ready for display
type Field struct {
	Name  string
	Value string
	Icon  FieldIcon
}

// IconFor picks the marker for a field: verified wins over link
func IconFor(verifiedAt *time.Time, valuePlain string) FieldIcon {
	if verifiedAt != nil {
		return IconVerified
	}
	if valuePlain != "" && IsValidURL(valuePlain) {
		return IconLink
	}
	return IconNone
}

// IsValidURL accepts absolute http and https URLs
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fields converts the account's HTML fields to plain text with markers
func Fields(a *domain.Account) []Field {
	fields := make([]Field, 0, len(a.Fields))
	for _, f := range a.Fields {
		value := PlainText(f.Value)
		fields = append(fields, Field{
			Name:  PlainText(f.Name),
			Value: value,
			Icon:  IconFor(f.VerifiedAt, value),
		})
	}
	return fields
}

// Joined formats the account creation date, e.g. "Mar 07, 2023"
func Joined(a *domain.Account) string {
	if a.CreatedAt.IsZero() {
		return ""
	}
	return a.CreatedAt.Format("Jan 02, 2006")
}
