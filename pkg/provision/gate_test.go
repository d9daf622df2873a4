package provision_test

import (
	"testing"

	"github.com/aretw0/groundwork/internal/testutils"
	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/aretw0/groundwork/pkg/provision"
	"github.com/stretchr/testify/assert"
)

func TestCheckCredentials(t *testing.T) {
	both := testutils.Config()
	assert.NoError(t, provision.CheckCredentials(both))

	notionOnly := testutils.Config()
	notionOnly.ClickUpAPIKey = ""
	assert.NoError(t, provision.CheckCredentials(notionOnly))

	clickupOnly := testutils.Config()
	clickupOnly.NotionAPIKey = ""
	assert.NoError(t, provision.CheckCredentials(clickupOnly))

	none := testutils.Config()
	none.NotionAPIKey, none.ClickUpAPIKey = "", ""
	assert.ErrorIs(t, provision.CheckCredentials(none), domain.ErrNoCredentials)

	assert.ErrorIs(t, provision.CheckCredentials(nil), domain.ErrNoCredentials)
}
