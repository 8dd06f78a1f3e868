package profile

import "glitchterm/internal/domain"

const (
	AvatarSizeClassic  = 92
	AvatarSizeRedesign = 80
)

// HeaderInput is everything the profile header depends on
type HeaderInput struct {
	Account      *domain.Account
	Relationship *domain.Relationship
	Me           string // logged-in account id, "" when anonymous
	LocalDomain  string
	Hidden       bool
	Redesign     bool
	AutoplayGIF  bool
	HideTabs     bool
}

// Header lists which blocks of the profile header are shown and with what
type Header struct {
	Title     string
	Robots    string
	Canonical string
	Name      NameLine
	Inactive  bool // account has moved

	ShowMemorial          bool
	ShowMovedNote         bool
	MovedToID             string
	ShowFollowRequestNote bool
	ShowInfo              bool

	HeaderImage string // empty when the image is withheld
	Avatar      string // empty when the avatar is withheld
	AvatarSize  int

	ShowFamiliarFollowers bool
	ShowPersonalNote      bool
	ShowExtra             bool // bio and fields
	ShowTabs              bool

	Bio    string
	Fields []Field
	Joined string
}

// AccountHidden reports whether a limited account stays hidden from the viewer
func AccountHidden(a *domain.Account, rel *domain.Relationship, me string) bool {
	if a == nil || !a.Limited {
		return false
	}
	if me != "" && a.ID == me {
		return false
	}
	return rel == nil || !rel.Following
}

// BuildHeader decides the profile header layout. ok is false when there is
// no account to show yet.
func BuildHeader(in HeaderInput) (h Header, ok bool) {
	a := in.Account
	if a == nil {
		return Header{}, false
	}

	suspendedOrHidden := in.Hidden || a.Suspended
	isMe := in.Me != "" && a.ID == in.Me
	rel := in.Relationship

	h = Header{
		Title:     Title(a, in.LocalDomain),
		Robots:    Robots(a),
		Canonical: a.URL,
		Name:      BuildNameLine(a, in.Me, in.LocalDomain),
		Inactive:  a.Moved != nil,

		ShowMemorial:          !in.Hidden && a.Memorial,
		ShowMovedNote:         !in.Hidden && a.Moved != nil,
		ShowFollowRequestNote: !suspendedOrHidden && a.Moved == nil && rel != nil && rel.RequestedBy,
		ShowInfo:              in.Me != a.ID && rel != nil && !in.Redesign,

		AvatarSize: AvatarSizeClassic,

		ShowFamiliarFollowers: !isMe && !suspendedOrHidden,
		ShowPersonalNote:      !suspendedOrHidden && in.Me != "" && !isMe,
		ShowExtra:             !suspendedOrHidden,
		ShowTabs:              !in.HideTabs && !in.Hidden,
	}
	if a.Moved != nil {
		h.MovedToID = a.Moved.ID
	}
	if in.Redesign {
		h.AvatarSize = AvatarSizeRedesign
	}

	if !suspendedOrHidden {
		h.HeaderImage = a.HeaderStatic
		if in.AutoplayGIF {
			h.HeaderImage = a.Header
		}
		h.Avatar = a.AvatarStatic
		if in.AutoplayGIF {
			h.Avatar = a.Avatar
		}
		h.Bio = PlainText(a.Note)
		h.Fields = Fields(a)
		h.Joined = Joined(a)
	}

	return h, true
}

// Badges lists the relationship facts shown in the classic header info block
func Badges(rel *domain.Relationship) []string {
	if rel == nil {
		return nil
	}
	var badges []string
	if rel.FollowedBy {
		badges = append(badges, "Follows you")
	}
	if rel.Blocking {
		badges = append(badges, "Blocked")
	}
	if rel.Muting {
		badges = append(badges, "Muted")
	}
	if rel.DomainBlocking {
		badges = append(badges, "Domain blocked")
	}
	return badges
}
