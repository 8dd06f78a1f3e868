package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchterm/internal/domain"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		account domain.Account
		want    string
	}{
		{"local acct gets local domain", domain.Account{Username: "alice", Acct: "alice", DisplayName: "Alice"}, "Alice (@alice@example.social)"},
		{"remote acct kept", domain.Account{Username: "bob", Acct: "bob@remote.tld", DisplayName: "Bob"}, "Bob (@bob@remote.tld)"},
		{"blank display name", domain.Account{Username: "carol", Acct: "carol", DisplayName: "  "}, "carol (@carol@example.social)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(&tt.account, "example.social"))
		})
	}
}

func TestSplitAcctAndRobots(t *testing.T) {
	u, d := SplitAcct("bob@remote.tld", "example.social")
	assert.Equal(t, "bob", u)
	assert.Equal(t, "remote.tld", d)

	u, d = SplitAcct("alice", "example.social")
	assert.Equal(t, "alice", u)
	assert.Equal(t, "example.social", d)

	assert.Equal(t, "all", Robots(&domain.Account{Acct: "alice"}))
	assert.Equal(t, "noindex", Robots(&domain.Account{Acct: "alice", Noindex: true}))
	assert.Equal(t, "noindex", Robots(&domain.Account{Acct: "bob@remote.tld"}))
}

func TestNameLine(t *testing.T) {
	a := &domain.Account{ID: "7", Username: "alice", Acct: "alice", Locked: true}
	line := BuildNameLine(a, "7", "example.social")
	assert.True(t, line.IsSelf)
	assert.True(t, line.Locked)
	assert.Equal(t, "@alice@example.social", line.Handle())

	assert.False(t, BuildNameLine(a, "", "example.social").IsSelf)
}

func TestIconFor(t *testing.T) {
	now := time.Now()
	assert.Equal(t, IconVerified, IconFor(&now, "https://x.tld"))
	assert.Equal(t, IconLink, IconFor(nil, "https://x.tld/path"))
	assert.Equal(t, IconNone, IconFor(nil, "not a link"))
	assert.Equal(t, IconNone, IconFor(nil, "ftp://x.tld"))
	assert.Equal(t, IconNone, IconFor(nil, ""))
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"<p>one</p><p>two<br>three</p>", "one\n\ntwo\nthree"},
		{`<a href="https://x.tld"><span>x.tld</span></a>`, "x.tld"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<p>unclosed", "unclosed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PlainText(tt.in), tt.in)
	}
}

func TestFields(t *testing.T) {
	verified := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &domain.Account{Fields: []domain.Field{
		{Name: "Site", Value: `<a href="https://me.tld">https://me.tld</a>`, VerifiedAt: &verified},
		{Name: "Blog", Value: `<a href="https://blog.tld">https://blog.tld</a>`},
		{Name: "Pronouns", Value: "they/them"},
	}}
	fields := Fields(a)
	require.Len(t, fields, 3)
	assert.Equal(t, IconVerified, fields[0].Icon)
	assert.Equal(t, IconLink, fields[1].Icon)
	assert.Equal(t, "https://blog.tld", fields[1].Value)
	assert.Equal(t, IconNone, fields[2].Icon)
}

func TestBuildHeader(t *testing.T) {
	base := func() *domain.Account {
		return &domain.Account{
			ID: "1", Username: "alice", Acct: "alice", DisplayName: "Alice",
			Note: "<p>hi</p>", Avatar: "a.gif", AvatarStatic: "a.png",
			Header: "h.gif", HeaderStatic: "h.png",
		}
	}

	t.Run("no account", func(t *testing.T) {
		_, ok := BuildHeader(HeaderInput{})
		assert.False(t, ok)
	})

	t.Run("someone else, classic layout", func(t *testing.T) {
		h, ok := BuildHeader(HeaderInput{
			Account:      base(),
			Relationship: &domain.Relationship{ID: "1", RequestedBy: true},
			Me:           "2",
			LocalDomain:  "example.social",
		})
		require.True(t, ok)
		assert.Equal(t, "Alice (@alice@example.social)", h.Title)
		assert.Equal(t, "all", h.Robots)
		assert.True(t, h.ShowInfo)
		assert.True(t, h.ShowFollowRequestNote)
		assert.True(t, h.ShowFamiliarFollowers)
		assert.True(t, h.ShowPersonalNote)
		assert.True(t, h.ShowExtra)
		assert.True(t, h.ShowTabs)
		assert.Equal(t, AvatarSizeClassic, h.AvatarSize)
		assert.Equal(t, "h.png", h.HeaderImage)
		assert.Equal(t, "hi", h.Bio)
	})

	t.Run("self, redesign, autoplay", func(t *testing.T) {
		h, _ := BuildHeader(HeaderInput{Account: base(), Me: "1", Redesign: true, AutoplayGIF: true})
		assert.False(t, h.ShowInfo)
		assert.False(t, h.ShowFamiliarFollowers)
		assert.False(t, h.ShowPersonalNote)
		assert.Equal(t, AvatarSizeRedesign, h.AvatarSize)
		assert.Equal(t, "h.gif", h.HeaderImage)
		assert.Equal(t, "a.gif", h.Avatar)
	})

	t.Run("info hidden in redesign", func(t *testing.T) {
		h, _ := BuildHeader(HeaderInput{Account: base(), Relationship: &domain.Relationship{}, Me: "2", Redesign: true})
		assert.False(t, h.ShowInfo)
	})

	t.Run("suspended", func(t *testing.T) {
		a := base()
		a.Suspended = true
		h, _ := BuildHeader(HeaderInput{Account: a, Relationship: &domain.Relationship{RequestedBy: true}, Me: "2"})
		assert.False(t, h.ShowExtra)
		assert.False(t, h.ShowFollowRequestNote)
		assert.False(t, h.ShowFamiliarFollowers)
		assert.Empty(t, h.HeaderImage)
		assert.Empty(t, h.Bio)
		assert.True(t, h.ShowTabs)
	})

	t.Run("hidden", func(t *testing.T) {
		a := base()
		a.Memorial = true
		a.Moved = &domain.Account{ID: "9"}
		h, _ := BuildHeader(HeaderInput{Account: a, Hidden: true})
		assert.False(t, h.ShowMemorial)
		assert.False(t, h.ShowMovedNote)
		assert.False(t, h.ShowTabs)
		assert.True(t, h.Inactive)
	})

	t.Run("moved and memorial", func(t *testing.T) {
		a := base()
		a.Memorial = true
		a.Moved = &domain.Account{ID: "9"}
		h, _ := BuildHeader(HeaderInput{Account: a, Relationship: &domain.Relationship{RequestedBy: true}, Me: "2"})
		assert.True(t, h.ShowMemorial)
		assert.True(t, h.ShowMovedNote)
		assert.Equal(t, "9", h.MovedToID)
		assert.False(t, h.ShowFollowRequestNote)
	})

	t.Run("hide tabs", func(t *testing.T) {
		h, _ := BuildHeader(HeaderInput{Account: base(), HideTabs: true})
		assert.False(t, h.ShowTabs)
	})
}

func TestAccountHidden(t *testing.T) {
	limited := &domain.Account{ID: "1", Limited: true}
	assert.True(t, AccountHidden(limited, nil, "2"))
	assert.False(t, AccountHidden(limited, &domain.Relationship{Following: true}, "2"))
	assert.False(t, AccountHidden(limited, nil, "1"))
	assert.False(t, AccountHidden(&domain.Account{ID: "1"}, nil, "2"))
}

func TestBuildList(t *testing.T) {
	id := "1"
	empty := ""
	account := &domain.Account{ID: "1", Acct: "bob@remote.tld"}
	list := &AccountList{Items: []string{"5", "6"}, HasMore: true}

	t.Run("routing error", func(t *testing.T) {
		assert.Equal(t, ListRoutingError, BuildList(ListInput{}).State)
	})

	t.Run("loading while id resolves", func(t *testing.T) {
		v := BuildList(ListInput{AccountID: &empty})
		assert.Equal(t, ListLoading, v.State)
		assert.True(t, v.IsLoading)
	})

	t.Run("loading without account", func(t *testing.T) {
		assert.Equal(t, ListLoading, BuildList(ListInput{AccountID: &id}).State)
	})

	t.Run("ready with prepend", func(t *testing.T) {
		v := BuildList(ListInput{AccountID: &id, Account: account, List: list, PrependAccountID: "1"})
		assert.Equal(t, ListReady, v.State)
		assert.Equal(t, []ListItem{{ID: "1", Minimal: true}, {ID: "5"}, {ID: "6"}}, v.Items)
		assert.True(t, v.HasMore)
		assert.False(t, v.IsLoading)
		assert.Equal(t, "remote.tld", v.RemoteDomain)
	})

	t.Run("list not fetched yet is loading", func(t *testing.T) {
		v := BuildList(ListInput{AccountID: &id, Account: account})
		assert.True(t, v.IsLoading)
		assert.Empty(t, v.Items)
	})

	t.Run("force empty", func(t *testing.T) {
		v := BuildList(ListInput{
			AccountID:        &id,
			Account:          account,
			List:             list,
			Visibility:       Visibility{BlockedBy: true},
			PrependAccountID: "1",
		})
		assert.Empty(t, v.Items)
		assert.False(t, v.HasMore)
	})
}

func TestVisibilityFor(t *testing.T) {
	a := &domain.Account{ID: "1", Suspended: true}
	v := VisibilityFor(a, &domain.Relationship{BlockedBy: true}, "2")
	assert.True(t, v.BlockedBy)
	assert.True(t, v.Suspended)
	assert.False(t, v.Hidden)
	assert.True(t, v.ForceEmpty())
	assert.False(t, Visibility{}.ForceEmpty())
}

func TestStatusLabels(t *testing.T) {
	assert.Empty(t, StatusVisibilityLabel("bogus"))
	assert.NotEmpty(t, StatusVisibilityLabel(domain.VisibilityPrivate))

	edited := time.Date(2024, 3, 7, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "Edited Mar 07, 2024, 14:05", EditedAt(edited))

	s := &domain.Status{
		Account:    &domain.Account{Acct: "bob@remote.tld", Username: "bob"},
		Visibility: domain.VisibilityPublic,
		EditedAt:   &edited,
	}
	line := Byline(s, &domain.Account{Acct: "alice"})
	assert.Contains(t, line, "bob @bob@remote.tld")
	assert.Contains(t, line, "boosted by @alice")
	assert.Contains(t, line, "*")
	assert.Empty(t, Byline(nil, nil))
}
