package domain

import "github.com/pkg/errors"

// Visibility is the audience of a status
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
	VisibilityDirect   Visibility = "direct"
)

// Visibilities lists every known visibility, widest first
var Visibilities = []Visibility{
	VisibilityPublic,
	VisibilityUnlisted,
	VisibilityPrivate,
	VisibilityDirect,
}

// IsValid reports whether v is one of the known visibilities
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate, VisibilityDirect:
		return true
	}
	return false
}

// ParseVisibility converts a user supplied string. Empty means "server default".
func ParseVisibility(s string) (Visibility, error) {
	if s == "" {
		return "", nil
	}
	v := Visibility(s)
	if !v.IsValid() {
		return "", errors.Errorf("unknown visibility %q (want public, unlisted, private or direct)", s)
	}
	return v, nil
}
