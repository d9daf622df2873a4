// Package notion implements ports.DocumentService against the Notion REST API.
package notion

import (
	"context"
	"net/http"

	"github.com/aretw0/groundwork/pkg/adapters/rest"
	"github.com/aretw0/groundwork/pkg/ports"
)

// Service is the name reported in errors and metrics.
const Service = "notion"

// Client creates pages through the Notion API.
type Client struct {
	rest *rest.Client
}

var _ ports.DocumentService = (*Client)(nil)

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.rest.HTTP = hc
	}
}

// New creates a client for baseURL (e.g. https://api.notion.com/v1).
func New(baseURL, token, version string, opts ...Option) *Client {
	c := &Client{
		rest: &rest.Client{
			Service: Service,
			BaseURL: baseURL,
			Header: http.Header{
				"Authorization":  {"Bearer " + token},
				"Notion-Version": {version},
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Text textContent `json:"text"`
}

type pageParent struct {
	PageID string `json:"page_id"`
}

type createPageRequest struct {
	Parent     pageParent            `json:"parent"`
	Properties map[string][]richText `json:"properties"`
	Children   []map[string]any      `json:"children,omitempty"`
}

type page struct {
	Object string `json:"object"`
	ID     string `json:"id"`
}

// CreatePage creates a page titled req.Title under req.ParentID.
func (c *Client) CreatePage(ctx context.Context, req ports.PageRequest) (string, error) {
	body := createPageRequest{
		Parent: pageParent{PageID: req.ParentID},
		Properties: map[string][]richText{
			"title": {{Text: textContent{Content: req.Title}}},
		},
		Children: req.Children,
	}

	var out page
	if err := c.rest.Do(ctx, "create page", http.MethodPost, "/pages", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}
