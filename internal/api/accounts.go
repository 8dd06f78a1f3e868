package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"glitchterm/internal/domain"
)

// SearchOptions are the optional parameters of an account search
type SearchOptions struct {
	Resolve bool
	Limit   int
}

// SearchAccounts runs GET /api/v1/accounts/search
func (c *Client) SearchAccounts(ctx context.Context, q string, opts SearchOptions) ([]domain.Account, error) {
	params := url.Values{}
	params.Set("q", q)
	if opts.Resolve {
		params.Set("resolve", "true")
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	var accounts []domain.Account
	if _, err := c.do(ctx, request{
		name:   "accounts/search",
		method: http.MethodGet,
		path:   "v1/accounts/search",
		params: params,
	}, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Account fetches one account by id
func (c *Client) Account(ctx context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, errors.New("account id is empty")
	}
	var account domain.Account
	if _, err := c.do(ctx, request{
		name:   "accounts/show",
		method: http.MethodGet,
		path:   "v1/accounts/" + url.PathEscape(id),
	}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// LookupAccount resolves a webfinger-style acct (user or user@domain)
func (c *Client) LookupAccount(ctx context.Context, acct string) (*domain.Account, error) {
	params := url.Values{}
	params.Set("acct", acct)

	var account domain.Account
	if _, err := c.do(ctx, request{
		name:   "accounts/lookup",
		method: http.MethodGet,
		path:   "v1/accounts/lookup",
		params: params,
	}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Relationships fetches the logged-in user's relationships with ids
func (c *Client) Relationships(ctx context.Context, ids ...string) ([]domain.Relationship, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	params := url.Values{}
	for _, id := range ids {
		params.Add("id[]", id)
	}

	var rels []domain.Relationship
	if _, err := c.do(ctx, request{
		name:   "accounts/relationships",
		method: http.MethodGet,
		path:   "v1/accounts/relationships",
		params: params,
	}, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

// Page selects a slice of a paginated list
type Page struct {
	MaxID string
	Limit int
}

func (p Page) values() url.Values {
	params := url.Values{}
	if p.MaxID != "" {
		params.Set("max_id", p.MaxID)
	}
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
	return params
}

// AccountPage is one page of a follower or following list
type AccountPage struct {
	Accounts []domain.Account
	// Next is the page after this one; only meaningful when HasMore
	Next    Page
	HasMore bool
}

// Followers lists the accounts following id
func (c *Client) Followers(ctx context.Context, id string, page Page) (*AccountPage, error) {
	return c.accountList(ctx, "accounts/followers", id, "followers", page)
}

// Following lists the accounts id follows
func (c *Client) Following(ctx context.Context, id string, page Page) (*AccountPage, error) {
	return c.accountList(ctx, "accounts/following", id, "following", page)
}

func (c *Client) accountList(ctx context.Context, name, id, kind string, page Page) (*AccountPage, error) {
	if id == "" {
		return nil, errors.New("account id is empty")
	}
	var accounts []domain.Account
	header, err := c.do(ctx, request{
		name:   name,
		method: http.MethodGet,
		path:   "v1/accounts/" + url.PathEscape(id) + "/" + kind,
		params: page.values(),
	}, &accounts)
	if err != nil {
		return nil, err
	}

	result := &AccountPage{Accounts: accounts}
	if next, ok := parseLinkHeader(header.Get("Link"))["next"]; ok {
		if maxID := next.Query().Get("max_id"); maxID != "" {
			result.HasMore = true
			result.Next = Page{MaxID: maxID, Limit: page.Limit}
		}
	}
	return result, nil
}
