package domain

import "time"

// Account represents a remote or local account as returned by the server
type Account struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Acct           string    `json:"acct"`
	DisplayName    string    `json:"display_name"`
	Locked         bool      `json:"locked"`
	Bot            bool      `json:"bot"`
	Group          bool      `json:"group"`
	CreatedAt      time.Time `json:"created_at"`
	Note           string    `json:"note"` // HTML
	URL            string    `json:"url"`
	Avatar         string    `json:"avatar"`
	AvatarStatic   string    `json:"avatar_static"`
	Header         string    `json:"header"`
	HeaderStatic   string    `json:"header_static"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	StatusesCount  int       `json:"statuses_count"`
	Emojis         []Emoji   `json:"emojis"`
	Fields         []Field   `json:"fields"`
	Moved          *Account  `json:"moved,omitempty"`
	Suspended      bool      `json:"suspended,omitempty"`
	Limited        bool      `json:"limited,omitempty"`
	Memorial       bool      `json:"memorial,omitempty"`
	Noindex        bool      `json:"noindex,omitempty"`
}

// Field is a profile metadata entry
type Field struct {
	Name       string     `json:"name"`
	Value      string     `json:"value"` // HTML
	VerifiedAt *time.Time `json:"verified_at"`
}

// Emoji is a custom emoji referenced from account or status text
type Emoji struct {
	Shortcode       string `json:"shortcode"`
	URL             string `json:"url"`
	StaticURL       string `json:"static_url"`
	VisibleInPicker bool   `json:"visible_in_picker"`
}

// Relationship describes how the logged-in user relates to an account
type Relationship struct {
	ID             string `json:"id"`
	Following      bool   `json:"following"`
	ShowingReblogs bool   `json:"showing_reblogs"`
	Notifying      bool   `json:"notifying"`
	FollowedBy     bool   `json:"followed_by"`
	Blocking       bool   `json:"blocking"`
	BlockedBy      bool   `json:"blocked_by"`
	Muting         bool   `json:"muting"`
	Requested      bool   `json:"requested"`
	RequestedBy    bool   `json:"requested_by"`
	DomainBlocking bool   `json:"domain_blocking"`
	Endorsed       bool   `json:"endorsed"`
	Note           string `json:"note"`
}

// Status is a post. Reblogs wrap the original in Reblog.
type Status struct {
	ID           string     `json:"id"`
	URI          string     `json:"uri"`
	URL          string     `json:"url"`
	CreatedAt    time.Time  `json:"created_at"`
	EditedAt     *time.Time `json:"edited_at"`
	Account      *Account   `json:"account"`
	Content      string     `json:"content"`
	Visibility   Visibility `json:"visibility"`
	Reblog       *Status    `json:"reblog"`
	Reblogged    bool       `json:"reblogged"`
	ReblogsCount int        `json:"reblogs_count"`
}
