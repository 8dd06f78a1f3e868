package views

import (
	"fmt"
	"strings"

	"glitchterm/internal/domain"
	"glitchterm/internal/profile"
)

// Renderer draws the screens from plain state snapshots
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{styles: styles}
}

func (r *Renderer) Styles() *Styles { return r.styles }

// SearchState is a snapshot of the search screen
type SearchState struct {
	Input       string
	Focused     bool
	Query       string
	Results     []*domain.Account
	Cursor      int
	Loading     bool
	Failed      bool
	Settled     bool // a search for Query has completed
	Spinner     string
	LocalDomain string
	Height      int
}

// RenderSearch renders the search box and its results
func (r *Renderer) RenderSearch(s SearchState) string {
	st := r.styles
	var b strings.Builder

	b.WriteString(st.Title.Render("Search"))
	b.WriteString("\n")
	input := st.Input
	if s.Focused {
		input = input.BorderForeground(st.Title.GetForeground())
	}
	b.WriteString(input.Render(s.Input))
	b.WriteString("\n")

	switch {
	case s.Loading:
		b.WriteString(st.StatusLoading.Render(s.Spinner + " Searching…"))
		b.WriteString("\n")
	case s.Failed:
		b.WriteString(st.StatusError.Render("Search failed. Keep typing to retry."))
		b.WriteString("\n")
	case s.Settled && strings.TrimSpace(s.Query) != "" && len(s.Results) == 0:
		b.WriteString(st.Dim.Render("No results"))
		b.WriteString("\n")
	}

	start, end := Window(len(s.Results), s.Cursor, s.Height)
	if start > 0 {
		b.WriteString(st.Scroll.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(r.accountRow(s.Results[i], s.LocalDomain, i == s.Cursor && !s.Focused))
		b.WriteString("\n")
	}
	if end < len(s.Results) {
		b.WriteString(st.Scroll.Render(fmt.Sprintf("  ↓ %d more", len(s.Results)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) accountRow(a *domain.Account, localDomain string, selected bool) string {
	name := profile.BuildNameLine(a, "", localDomain)
	row := fmt.Sprintf("  %s %s", r.styles.FieldName.Render(name.DisplayName), r.styles.Handle.Render(name.Handle()))
	if a.Bot {
		row += " " + r.styles.Dim.Render("[bot]")
	}
	if selected {
		return r.styles.HighlightBg.Render("▶" + row[1:])
	}
	return row
}

// ProfileState is a snapshot of the profile screen
type ProfileState struct {
	Loading      bool
	Err          string
	Spinner      string
	Header       profile.Header
	HasHeader    bool
	Account      *domain.Account
	Relationship *domain.Relationship
	ShowBadges   bool
	Tab          string
	List         profile.ListView
	Lookup       func(id string) *domain.Account
	Cursor       int
	LocalDomain  string
	Height       int
}

// RenderProfile renders the profile header and the active account list
func (r *Renderer) RenderProfile(s ProfileState) string {
	st := r.styles
	var b strings.Builder

	switch {
	case s.Err != "":
		b.WriteString(st.StatusError.Render(s.Err))
		return b.String()
	case !s.HasHeader:
		b.WriteString(st.StatusLoading.Render(s.Spinner + " Loading profile…"))
		return b.String()
	}

	h := s.Header
	if h.ShowMemorial {
		b.WriteString(st.Note.Render("In memoriam."))
		b.WriteString("\n")
	}
	if h.ShowMovedNote {
		b.WriteString(st.Note.Render("This account has moved."))
		b.WriteString("\n")
	}
	if h.ShowFollowRequestNote {
		b.WriteString(st.Note.Render("This account has requested to follow you."))
		b.WriteString("\n")
	}

	title := st.Title.Render(h.Name.DisplayName) + " " + st.Handle.Render(h.Name.Handle())
	if h.Name.Locked {
		title += " 🔒"
	}
	if h.Name.IsSelf {
		title += " " + st.Dim.Render("(you)")
	}
	b.WriteString(title)
	b.WriteString("\n")

	if h.ShowInfo && s.ShowBadges {
		var badges []string
		for _, badge := range profile.Badges(s.Relationship) {
			badges = append(badges, st.Badge.Render(badge))
		}
		if len(badges) > 0 {
			b.WriteString(strings.Join(badges, " "))
			b.WriteString("\n")
		}
	}

	if h.ShowExtra {
		if h.Bio != "" {
			b.WriteString("\n")
			b.WriteString(h.Bio)
			b.WriteString("\n")
		}
		if len(h.Fields) > 0 {
			b.WriteString("\n")
			for _, f := range h.Fields {
				b.WriteString(fmt.Sprintf("%s  %s%s\n", st.FieldName.Render(f.Name), FieldMarker(f.Icon), f.Value))
			}
		}
		if h.Joined != "" {
			b.WriteString(st.Dim.Render("Joined " + h.Joined))
			b.WriteString("\n")
		}
	}

	if s.Account != nil {
		b.WriteString(st.Dim.Render(fmt.Sprintf("%d posts · %d following · %d followers",
			s.Account.StatusesCount, s.Account.FollowingCount, s.Account.FollowersCount)))
		b.WriteString("\n")
	}

	if !h.ShowTabs {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(r.tabs(s.Tab))
	b.WriteString("\n")
	b.WriteString(r.list(s))
	return b.String()
}

func (r *Renderer) tabs(active string) string {
	var parts []string
	for _, tab := range []string{"followers", "following"} {
		label := strings.ToUpper(tab[:1]) + tab[1:]
		if tab == active {
			parts = append(parts, r.styles.TabActive.Render(label))
		} else {
			parts = append(parts, r.styles.TabInactive.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) list(s ProfileState) string {
	st := r.styles
	v := s.List
	var b strings.Builder

	switch v.State {
	case profile.ListRoutingError:
		b.WriteString(st.StatusError.Render("Account not found"))
		return b.String()
	case profile.ListLoading:
		b.WriteString(st.StatusLoading.Render(s.Spinner + " Loading…"))
		return b.String()
	}

	if len(v.Items) == 0 && !v.IsLoading {
		if v.RemoteDomain != "" {
			b.WriteString(st.Dim.Render(fmt.Sprintf("Nothing to show. Lists from %s may be incomplete.", v.RemoteDomain)))
		} else {
			b.WriteString(st.Dim.Render("Nothing to show."))
		}
		return b.String()
	}

	start, end := Window(len(v.Items), s.Cursor, s.Height)
	for i := start; i < end; i++ {
		item := v.Items[i]
		var a *domain.Account
		if s.Lookup != nil {
			a = s.Lookup(item.ID)
		}
		if a == nil {
			b.WriteString(st.Dim.Render("  …"))
			b.WriteString("\n")
			continue
		}
		row := r.accountRow(a, s.LocalDomain, i == s.Cursor)
		if item.Minimal {
			row = st.Dim.Render(StripANSI(row))
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	switch {
	case v.IsLoading:
		b.WriteString(st.StatusLoading.Render(s.Spinner + " Loading…"))
	case v.HasMore:
		b.WriteString(st.Scroll.Render("  m: load more"))
	}
	if v.RemoteDomain != "" {
		b.WriteString("\n")
		b.WriteString(st.Dim.Render("Some accounts from " + v.RemoteDomain + " may be missing."))
	}
	return b.String()
}

// ProfileText is the plain-text profile handed to the pager
func ProfileText(h profile.Header, a *domain.Account) string {
	var b strings.Builder
	b.WriteString(h.Title)
	b.WriteString("\n")
	if h.Canonical != "" {
		b.WriteString(h.Canonical)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if h.ShowExtra {
		if h.Bio != "" {
			b.WriteString(h.Bio)
			b.WriteString("\n\n")
		}
		for _, f := range h.Fields {
			b.WriteString(fmt.Sprintf("%s: %s%s\n", f.Name, FieldMarker(f.Icon), f.Value))
		}
		if h.Joined != "" {
			b.WriteString("\nJoined " + h.Joined + "\n")
		}
	}
	if a != nil {
		b.WriteString(fmt.Sprintf("\nPosts: %d\nFollowing: %d\nFollowers: %d\n",
			a.StatusesCount, a.FollowingCount, a.FollowersCount))
	}
	return b.String()
}

// Window returns the visible slice [start, end) of total rows keeping cursor
// in view. size <= 0 shows everything.
func Window(total, cursor, size int) (start, end int) {
	if size <= 0 || total <= size {
		return 0, total
	}
	start = cursor - size/2
	if start < 0 {
		start = 0
	}
	end = start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}
