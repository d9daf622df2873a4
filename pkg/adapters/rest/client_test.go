package rest_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/groundwork/pkg/adapters/rest"
	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/things", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "token", r.Header.Get("X-Key"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"a"}`, string(body))
		w.Write([]byte(`{"id":"t-1"}`))
	}))
	defer srv.Close()

	c := &rest.Client{Service: "test", BaseURL: srv.URL, Header: http.Header{"X-Key": {"token"}}}
	var out struct {
		ID string `json:"id"`
	}
	err := c.Do(context.Background(), "create thing", http.MethodPost, "/things", map[string]string{"name": "a"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "t-1", out.ID)
}

func TestClient_Do_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    domain.ErrorKind
		message string
	}{
		{"notion validation", 400, `{"object":"error","code":"validation_error","message":"title is required"}`, domain.KindValidation, "title is required"},
		{"clickup auth", 401, `{"err":"Token invalid","ECODE":"OAUTH_025"}`, domain.KindAuth, "Token invalid"},
		{"not found", 404, `nope`, domain.KindNotFound, "nope"},
		{"rate limited", 429, `{}`, domain.KindRateLimited, "{}"},
		{"server", 503, ``, domain.KindServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := &rest.Client{Service: "test", BaseURL: srv.URL}
			err := c.Do(context.Background(), "op", http.MethodGet, "/", nil, nil)
			require.Error(t, err)

			var re *domain.RemoteError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.kind, re.Kind)
			assert.Equal(t, tt.status, re.StatusCode)
			assert.Equal(t, tt.message, re.Message)
		})
	}
}

func TestClient_Do_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := &rest.Client{Service: "test", BaseURL: url}
	err := c.Do(context.Background(), "op", http.MethodGet, "/", nil, nil)
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}

func TestClient_Do_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	c := &rest.Client{Service: "test", BaseURL: srv.URL}
	var out map[string]any
	err := c.Do(context.Background(), "op", http.MethodGet, "/", nil, &out)
	assert.Equal(t, domain.KindDecode, domain.KindOf(err))
}
