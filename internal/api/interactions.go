package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"glitchterm/internal/domain"
)

type reblogBody struct {
	Visibility domain.Visibility `json:"visibility,omitempty"`
}

// Reblog boosts statusID. An empty visibility leaves the choice to the server.
// The returned status is the new reblog; its Reblog field holds the original.
func (c *Client) Reblog(ctx context.Context, statusID string, visibility domain.Visibility) (*domain.Status, error) {
	if statusID == "" {
		return nil, errors.New("status id is empty")
	}
	if visibility != "" && !visibility.IsValid() {
		return nil, errors.Errorf("invalid visibility %q", visibility)
	}

	var status domain.Status
	if _, err := c.do(ctx, request{
		name:   "statuses/reblog",
		method: http.MethodPost,
		path:   "v1/statuses/" + url.PathEscape(statusID) + "/reblog",
		body:   reblogBody{Visibility: visibility},
	}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Unreblog removes the logged-in user's boost of statusID
func (c *Client) Unreblog(ctx context.Context, statusID string) (*domain.Status, error) {
	if statusID == "" {
		return nil, errors.New("status id is empty")
	}

	var status domain.Status
	if _, err := c.do(ctx, request{
		name:   "statuses/unreblog",
		method: http.MethodPost,
		path:   "v1/statuses/" + url.PathEscape(statusID) + "/unreblog",
	}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Status fetches a single status
func (c *Client) Status(ctx context.Context, statusID string) (*domain.Status, error) {
	if statusID == "" {
		return nil, errors.New("status id is empty")
	}

	var status domain.Status
	if _, err := c.do(ctx, request{
		name:   "statuses/show",
		method: http.MethodGet,
		path:   "v1/statuses/" + url.PathEscape(statusID),
	}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
