// Package clickup implements ports.TaskService against the ClickUp v2 REST API.
package clickup

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aretw0/groundwork/pkg/adapters/rest"
	"github.com/aretw0/groundwork/pkg/ports"
)

// Service is the name reported in errors and metrics.
const Service = "clickup"

// Client talks to the ClickUp API. ClickUp personal tokens are sent as-is, without a scheme.
type Client struct {
	rest *rest.Client
}

var _ ports.TaskService = (*Client)(nil)

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.rest.HTTP = hc
	}
}

// New creates a client for baseURL (e.g. https://api.clickup.com/api/v2).
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		rest: &rest.Client{
			Service: Service,
			BaseURL: baseURL,
			Header:  http.Header{"Authorization": {token}},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type featureToggle struct {
	Enabled bool `json:"enabled"`
}

type spaceFeatures struct {
	DueDates featureToggle `json:"due_dates"`
}

type createSpaceRequest struct {
	Name              string        `json:"name"`
	MultipleAssignees bool          `json:"multiple_assignees"`
	Features          spaceFeatures `json:"features"`
}

type createListRequest struct {
	Name string `json:"name"`
}

// ListTeams returns the teams (workspaces) visible to the token, in API order.
func (c *Client) ListTeams(ctx context.Context) ([]ports.Team, error) {
	var out struct {
		Teams []ports.Team `json:"teams"`
	}
	if err := c.rest.Do(ctx, "list teams", http.MethodGet, "/team", nil, &out); err != nil {
		return nil, err
	}
	return out.Teams, nil
}

// ListSpaces returns the spaces of a team.
func (c *Client) ListSpaces(ctx context.Context, teamID string) ([]ports.Container, error) {
	var out struct {
		Spaces []ports.Container `json:"spaces"`
	}
	if err := c.rest.Do(ctx, "list spaces", http.MethodGet, "/team/"+url.PathEscape(teamID)+"/space", nil, &out); err != nil {
		return nil, err
	}
	return out.Spaces, nil
}

// CreateSpace creates a space in a team.
func (c *Client) CreateSpace(ctx context.Context, teamID string, req ports.SpaceRequest) (ports.Container, error) {
	body := createSpaceRequest{
		Name:              req.Name,
		MultipleAssignees: req.MultipleAssignees,
		Features:          spaceFeatures{DueDates: featureToggle{Enabled: req.DueDates}},
	}
	var out ports.Container
	if err := c.rest.Do(ctx, "create space", http.MethodPost, "/team/"+url.PathEscape(teamID)+"/space", body, &out); err != nil {
		return ports.Container{}, err
	}
	return out, nil
}

// ListLists returns the folderless lists of a space.
func (c *Client) ListLists(ctx context.Context, spaceID string) ([]ports.Container, error) {
	var out struct {
		Lists []ports.Container `json:"lists"`
	}
	if err := c.rest.Do(ctx, "list lists", http.MethodGet, "/space/"+url.PathEscape(spaceID)+"/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Lists, nil
}

// CreateList creates a folderless list in a space.
func (c *Client) CreateList(ctx context.Context, spaceID, name string) (ports.Container, error) {
	var out ports.Container
	if err := c.rest.Do(ctx, "create list", http.MethodPost, "/space/"+url.PathEscape(spaceID)+"/list", createListRequest{Name: name}, &out); err != nil {
		return ports.Container{}, err
	}
	return out, nil
}
