package config_test

import (
	"testing"

	"github.com/aretw0/groundwork/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := config.FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.False(t, cfg.HasNotion())
	assert.False(t, cfg.HasClickUp())
	assert.Equal(t, config.DefaultNotionBaseURL, cfg.NotionBaseURL)
	assert.Equal(t, config.DefaultNotionVersion, cfg.NotionVersion)
	assert.Equal(t, config.DefaultClickUpBaseURL, cfg.ClickUpBaseURL)
}

func TestFromLookup_ReadsAndTrims(t *testing.T) {
	cfg, err := config.FromLookup(lookupFrom(map[string]string{
		"NOTION_API_KEY":      " secret_abc ",
		"NOTION_ROOT_PAGE_ID": "anchor-1",
		"CLICKUP_API_KEY":     "pk_1",
		"CLICKUP_TEAM_ID":     "42",
		"CLICKUP_BASE_URL":    "http://localhost:9000/api/v2/",
	}))
	require.NoError(t, err)

	assert.Equal(t, "secret_abc", cfg.NotionAPIKey)
	assert.Equal(t, "anchor-1", cfg.NotionRootPageID)
	assert.Equal(t, "pk_1", cfg.ClickUpAPIKey)
	assert.Equal(t, "42", cfg.ClickUpTeamID)
	assert.Equal(t, "http://localhost:9000/api/v2", cfg.ClickUpBaseURL)
}

func TestFromLookup_BlankIsAbsent(t *testing.T) {
	cfg, err := config.FromLookup(lookupFrom(map[string]string{
		"NOTION_API_KEY": "   ",
	}))
	require.NoError(t, err)
	assert.False(t, cfg.HasNotion())
}

func TestWithSandbox(t *testing.T) {
	cfg, err := config.FromLookup(lookupFrom(map[string]string{
		"CLICKUP_API_KEY": "pk_real",
	}))
	require.NoError(t, err)

	sb := cfg.WithSandbox("http://127.0.0.1:8086/", "root-anchor")
	assert.Equal(t, "http://127.0.0.1:8086/notion/v1", sb.NotionBaseURL)
	assert.Equal(t, "http://127.0.0.1:8086/clickup/api/v2", sb.ClickUpBaseURL)
	assert.Equal(t, "pk_real", sb.ClickUpAPIKey, "existing credentials are kept")
	assert.True(t, sb.HasNotion())
	assert.Equal(t, "root-anchor", sb.NotionRootPageID)
}
