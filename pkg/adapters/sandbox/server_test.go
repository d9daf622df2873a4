package sandbox_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/groundwork/pkg/adapters/clickup"
	"github.com/aretw0/groundwork/pkg/adapters/notion"
	"github.com/aretw0/groundwork/pkg/adapters/sandbox"
	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/aretw0/groundwork/pkg/ports"
)

func startSandbox(t *testing.T, opts ...sandbox.Option) (*httptest.Server, *sandbox.Store) {
	t.Helper()
	srv, store, err := sandbox.Open(context.Background(), "", opts...)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		store.Close()
	})
	return ts, store
}

func TestSandbox_NotionPages(t *testing.T) {
	ts, store := startSandbox(t, sandbox.WithFailingTitles("Campaigns"))
	client := notion.New(ts.URL+sandbox.NotionPrefix, "secret", "2022-06-28")
	ctx := context.Background()

	id, err := client.CreatePage(ctx, ports.PageRequest{ParentID: sandbox.DefaultRootID, Title: "Marketing Cognition System"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	children, err := store.Children(ctx, sandbox.DefaultRootID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, id, children[0].ID)

	t.Run("configured failure", func(t *testing.T) {
		_, err := client.CreatePage(ctx, ports.PageRequest{ParentID: id, Title: "Campaigns"})
		var remote *domain.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
		assert.Equal(t, domain.KindValidation, remote.Kind)
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := client.CreatePage(ctx, ports.PageRequest{ParentID: "nope", Title: "Beliefs"})
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("empty title fails validation", func(t *testing.T) {
		_, err := client.CreatePage(ctx, ports.PageRequest{ParentID: id, Title: ""})
		var remote *domain.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
		assert.Contains(t, remote.Message, "content")
	})
}

func TestSandbox_RequiresAuthHeaders(t *testing.T) {
	ts, _ := startSandbox(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+sandbox.NotionPrefix+"/pages", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "Notion-Version is required")

	resp, err = http.Get(ts.URL + sandbox.ClickUpPrefix + "/team")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, err = clickup.New(ts.URL+sandbox.ClickUpPrefix, "").ListTeams(context.Background())
	assert.Equal(t, domain.KindAuth, domain.KindOf(err))
}

func TestSandbox_ClickUpWorkspace(t *testing.T) {
	ts, _ := startSandbox(t)
	client := clickup.New(ts.URL+sandbox.ClickUpPrefix, "pk_secret")
	ctx := context.Background()

	teams, err := client.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, sandbox.DefaultTeamID, teams[0].ID)

	spaces, err := client.ListSpaces(ctx, teams[0].ID)
	require.NoError(t, err)
	assert.Empty(t, spaces)

	space, err := client.CreateSpace(ctx, teams[0].ID, ports.SpaceRequest{Name: "Marketing Cognition", MultipleAssignees: true, DueDates: true})
	require.NoError(t, err)
	assert.Equal(t, "Marketing Cognition", space.Name)

	spaces, err = client.ListSpaces(ctx, teams[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []ports.Container{space}, spaces)

	list, err := client.CreateList(ctx, space.ID, "Daily Ops")
	require.NoError(t, err)
	assert.Equal(t, "Daily Ops", list.Name)

	lists, err := client.ListLists(ctx, space.ID)
	require.NoError(t, err)
	assert.Equal(t, []ports.Container{list}, lists)

	_, err = client.CreateList(ctx, "12345", "Weekly Ops")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = client.CreateSpace(ctx, teams[0].ID, ports.SpaceRequest{})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestSandbox_ServesOpenAPIDocument(t *testing.T) {
	ts, _ := startSandbox(t)

	resp, err := http.Get(ts.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/yaml", resp.Header.Get("Content-Type"))
}
