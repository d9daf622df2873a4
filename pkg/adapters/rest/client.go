// Package rest is the JSON-over-HTTP plumbing shared by the workspace clients.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aretw0/groundwork/pkg/domain"
)

// maxErrorBody bounds how much of an error response is kept in the message.
const maxErrorBody = 4 << 10

// Client issues authenticated JSON requests against one service.
type Client struct {
	Service string
	BaseURL string
	Header  http.Header
	HTTP    *http.Client
}

// Do sends in as JSON (when non-nil) to BaseURL+path and decodes the response into out (when non-nil).
// Every failure is returned as a *domain.RemoteError.
func (c *Client) Do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &domain.RemoteError{Service: c.Service, Operation: op, Kind: domain.KindValidation, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return &domain.RemoteError{Service: c.Service, Operation: op, Kind: domain.KindValidation, Err: err}
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return &domain.RemoteError{Service: c.Service, Operation: op, Kind: domain.KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.RemoteError{
			Service:    c.Service,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Kind:       domain.KindFromStatus(resp.StatusCode),
			Message:    errorMessage(raw),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &domain.RemoteError{Service: c.Service, Operation: op, StatusCode: resp.StatusCode, Kind: domain.KindDecode, Err: err}
	}
	return nil
}

// errorMessage extracts the human readable part of an error body.
// Notion uses {"message": ...}, ClickUp uses {"err": ...}.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"err"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Err != "" {
			return body.Err
		}
	}
	return strings.TrimSpace(string(raw))
}
