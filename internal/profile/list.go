package profile

import "glitchterm/internal/domain"

// Visibility summarizes why a profile's lists may be withheld
type Visibility struct {
	BlockedBy bool
	Hidden    bool
	Suspended bool
}

// ForceEmpty reports whether lists must render empty regardless of content
func (v Visibility) ForceEmpty() bool {
	return v.BlockedBy || v.Hidden || v.Suspended
}

// VisibilityFor derives the visibility of account for the viewer me
func VisibilityFor(a *domain.Account, rel *domain.Relationship, me string) Visibility {
	if a == nil {
		return Visibility{}
	}
	return Visibility{
		BlockedBy: rel != nil && rel.BlockedBy,
		Hidden:    AccountHidden(a, rel, me),
		Suspended: a.Suspended,
	}
}

// AccountList is a paginated follower or following list
type AccountList struct {
	Items     []string
	HasMore   bool
	IsLoading bool
}

// ListState is the overall state of a list column
type ListState int

const (
	ListLoading ListState = iota
	ListRoutingError
	ListReady
)

// ListItem is one row; Minimal rows are rendered compact
type ListItem struct {
	ID      string
	Minimal bool
}

// ListInput is everything an account list column depends on
type ListInput struct {
	// AccountID is nil when the acct does not exist and "" while it resolves
	AccountID        *string
	Account          *domain.Account
	Visibility       Visibility
	List             *AccountList
	PrependAccountID string
}

// ListView is what the column shows
type ListView struct {
	State        ListState
	Items        []ListItem
	HasMore      bool
	IsLoading    bool
	RemoteDomain string
}

// BuildList decides the content of a follower/following column
func BuildList(in ListInput) ListView {
	if in.AccountID == nil {
		return ListView{State: ListRoutingError}
	}
	if *in.AccountID == "" || in.Account == nil {
		return ListView{State: ListLoading, IsLoading: true}
	}

	forceEmpty := in.Visibility.ForceEmpty()
	view := ListView{
		State:        ListReady,
		IsLoading:    true,
		RemoteDomain: RemoteDomain(in.Account),
	}
	if in.List != nil {
		view.IsLoading = in.List.IsLoading
		view.HasMore = !forceEmpty && in.List.HasMore
	}
	if forceEmpty {
		view.Items = []ListItem{}
		return view
	}

	view.Items = make([]ListItem, 0, 1)
	if in.PrependAccountID != "" {
		view.Items = append(view.Items, ListItem{ID: in.PrependAccountID, Minimal: true})
	}
	if in.List != nil {
		for _, id := range in.List.Items {
			view.Items = append(view.Items, ListItem{ID: id})
		}
	}
	return view
}
