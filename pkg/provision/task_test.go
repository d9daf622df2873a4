package provision_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/groundwork/internal/testutils"
	"github.com/aretw0/groundwork/pkg/blueprint"
	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/aretw0/groundwork/pkg/ports"
	"github.com/aretw0/groundwork/pkg/provision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTaskProvisioner(t *testing.T, svc ports.TaskService) (*provision.TaskProvisioner, *testutils.LogBuffer) {
	t.Helper()
	logger, logs := testutils.NewLogger(t)
	return provision.NewTaskProvisioner(testutils.Config(), svc, blueprint.Default().Tasks, logger), logs
}

func countCalls(svc *testutils.MockTaskService, method string) int {
	n := 0
	for _, c := range svc.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func TestTaskProvisioner_ResolveTeamID(t *testing.T) {
	t.Run("first team wins", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListTeams", mock.Anything).Return([]ports.Team{{ID: "42"}, {ID: "99"}}, nil)
		p, _ := newTaskProvisioner(t, svc)

		id, err := p.ResolveTeamID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "42", id)
	})

	t.Run("empty list is an error", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListTeams", mock.Anything).Return([]ports.Team{}, nil)
		p, _ := newTaskProvisioner(t, svc)

		_, err := p.ResolveTeamID(context.Background())
		assert.ErrorIs(t, err, domain.ErrNoTeams)
	})

	t.Run("listing failure", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListTeams", mock.Anything).Return(nil, errors.New("offline"))
		p, _ := newTaskProvisioner(t, svc)

		_, err := p.ResolveTeamID(context.Background())
		assert.EqualError(t, err, "offline")
	})
}

func TestTaskProvisioner_EnsureSpace(t *testing.T) {
	t.Run("reuses an exact match", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListSpaces", mock.Anything, "42").Return([]ports.Container{
			{ID: "s-0", Name: "marketing cognition"},
			{ID: "s-1", Name: "Marketing Cognition"},
		}, nil)
		p, logs := newTaskProvisioner(t, svc)

		res, err := p.EnsureSpace(context.Background(), "42")
		require.NoError(t, err)
		assert.Equal(t, "s-1", res.ID, "match is case-sensitive")
		assert.Equal(t, domain.StatusReused, res.Status)
		assert.Equal(t, 1, countCalls(svc, "ListSpaces"))
		assert.Equal(t, 0, countCalls(svc, "CreateSpace"))
		assert.True(t, logs.Contains("Using Existing ClickUp Space"))
	})

	t.Run("creates when absent", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListSpaces", mock.Anything, "42").Return([]ports.Container{{ID: "s-0", Name: "Other"}}, nil)
		svc.On("CreateSpace", mock.Anything, "42", ports.SpaceRequest{
			Name:              "Marketing Cognition",
			MultipleAssignees: true,
			DueDates:          true,
		}).Return(ports.Container{ID: "s-new", Name: "Marketing Cognition"}, nil).Once()
		p, logs := newTaskProvisioner(t, svc)

		res, err := p.EnsureSpace(context.Background(), "42")
		require.NoError(t, err)
		assert.Equal(t, "s-new", res.ID)
		assert.Equal(t, domain.StatusCreated, res.Status)
		assert.Equal(t, 1, countCalls(svc, "ListSpaces"))
		assert.Equal(t, 1, countCalls(svc, "CreateSpace"))
		assert.True(t, logs.Contains("Created ClickUp Space"))
		svc.AssertExpectations(t)
	})

	t.Run("create failure", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListSpaces", mock.Anything, "42").Return(nil, nil)
		svc.On("CreateSpace", mock.Anything, "42", mock.Anything).Return(ports.Container{}, errors.New("forbidden"))
		p, _ := newTaskProvisioner(t, svc)

		res, err := p.EnsureSpace(context.Background(), "42")
		assert.ErrorContains(t, err, "forbidden")
		assert.Equal(t, domain.StatusFailed, res.Status)
	})
}

func TestTaskProvisioner_EnsureLists_NoDeduplication(t *testing.T) {
	svc := &testutils.MockTaskService{}
	svc.On("ListLists", mock.Anything, "s-1").Return([]ports.Container{}, nil).Once()
	svc.On("ListLists", mock.Anything, "s-1").Return([]ports.Container{{ID: "l-1", Name: "Daily Ops"}}, nil)
	svc.On("CreateList", mock.Anything, "s-1", mock.Anything).Return(ports.Container{ID: "l-x"}, nil)
	p, logs := newTaskProvisioner(t, svc)
	ctx := context.Background()

	first := p.EnsureLists(ctx, "s-1")
	second := p.EnsureLists(ctx, "s-1")

	assert.Len(t, first, 6)
	assert.Len(t, second, 6)
	assert.Equal(t, 12, countCalls(svc, "CreateList"), "running twice duplicates every list")
	assert.True(t, logs.Contains("duplicates will be created"))

	var names []string
	for _, c := range svc.Calls {
		if c.Method == "CreateList" {
			names = append(names, c.Arguments.String(2))
		}
	}
	assert.Equal(t, []string{"Daily Ops", "Weekly Ops", "Campaigns", "Content Production", "Signals Triage", "Experiments"}, names[:6])
}

func TestTaskProvisioner_EnsureLists_LogsEveryAttempt(t *testing.T) {
	svc := &testutils.MockTaskService{}
	svc.On("ListLists", mock.Anything, "s-1").Return(nil, errors.New("listing is best effort"))
	svc.On("CreateList", mock.Anything, "s-1", "Weekly Ops").Return(ports.Container{}, errors.New("boom"))
	svc.On("CreateList", mock.Anything, "s-1", mock.Anything).Return(ports.Container{ID: "l-x"}, nil)
	p, logs := newTaskProvisioner(t, svc)

	results := p.EnsureLists(context.Background(), "s-1")

	require.Len(t, results, 6)
	assert.Equal(t, domain.StatusFailed, results[1].Status)
	assert.Equal(t, domain.StatusCreated, results[2].Status)
	assert.True(t, logs.Contains(`msg="Created List" name="Weekly Ops"`), "a line is logged even when the call failed")

	created := 0
	for _, l := range logs.Lines() {
		if strings.HasPrefix(l, "[SETUP] ") && strings.Contains(l, `msg="Created List"`) {
			created++
		}
	}
	assert.Equal(t, 6, created)
}

func TestTaskProvisioner_Provision(t *testing.T) {
	t.Run("skips without key", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		cfg := testutils.Config()
		cfg.ClickUpAPIKey = ""
		logger, logs := testutils.NewLogger(t)

		report := provision.NewTaskProvisioner(cfg, svc, blueprint.Default().Tasks, logger).Provision(context.Background())

		assert.Equal(t, domain.OutcomeSkipped, report.Outcome)
		assert.Empty(t, svc.Calls)
		assert.True(t, logs.Contains("Skipping ClickUp setup (No API Key)"))
	})

	t.Run("discovers team and creates everything", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListTeams", mock.Anything).Return([]ports.Team{{ID: "42"}}, nil)
		svc.On("ListSpaces", mock.Anything, "42").Return([]ports.Container{}, nil)
		svc.On("CreateSpace", mock.Anything, "42", mock.Anything).Return(ports.Container{ID: "s-1"}, nil)
		svc.On("ListLists", mock.Anything, "s-1").Return([]ports.Container{}, nil)
		svc.On("CreateList", mock.Anything, "s-1", mock.Anything).Return(ports.Container{ID: "l"}, nil)
		p, logs := newTaskProvisioner(t, svc)

		report := p.Provision(context.Background())

		assert.Equal(t, domain.OutcomeCompleted, report.Outcome)
		assert.Len(t, report.Results, 7)
		assert.True(t, logs.Contains(`msg="Using ClickUp Team" team_id=42`))
	})

	t.Run("explicit team skips discovery", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListSpaces", mock.Anything, "7").Return([]ports.Container{{ID: "s-1", Name: "Marketing Cognition"}}, nil)
		svc.On("ListLists", mock.Anything, "s-1").Return([]ports.Container{}, nil)
		svc.On("CreateList", mock.Anything, "s-1", mock.Anything).Return(ports.Container{ID: "l"}, nil)
		cfg := testutils.Config()
		cfg.ClickUpTeamID = "7"

		report := provision.NewTaskProvisioner(cfg, svc, blueprint.Default().Tasks, nil).Provision(context.Background())

		assert.Equal(t, domain.OutcomeCompleted, report.Outcome)
		assert.Equal(t, 0, countCalls(svc, "ListTeams"))
		assert.Equal(t, domain.StatusReused, report.Results[0].Status)
	})

	t.Run("errors are swallowed and logged", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListTeams", mock.Anything).Return([]ports.Team{}, nil)
		p, logs := newTaskProvisioner(t, svc)

		report := p.Provision(context.Background())

		assert.Equal(t, domain.OutcomeFailed, report.Outcome)
		assert.ErrorIs(t, report.Err, domain.ErrNoTeams)
		assert.True(t, logs.Contains("ClickUp Setup Error"))
		assert.Equal(t, 0, countCalls(svc, "ListSpaces"))
	})

	t.Run("panics are recovered", func(t *testing.T) {
		svc := &testutils.MockTaskService{}
		svc.On("ListTeams", mock.Anything).Return([]ports.Team{{ID: "42"}}, nil)
		svc.On("ListSpaces", mock.Anything, "42").Return([]ports.Container{}, nil)
		svc.On("CreateSpace", mock.Anything, "42", mock.Anything).Panic("driver exploded")
		p, logs := newTaskProvisioner(t, svc)

		var report domain.StepReport
		assert.NotPanics(t, func() { report = p.Provision(context.Background()) })
		assert.Equal(t, domain.OutcomeFailed, report.Outcome)
		assert.ErrorContains(t, report.Err, "driver exploded")
		assert.True(t, logs.Contains("ClickUp Setup Error"))
	})
}
