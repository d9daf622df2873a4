package observability

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/groundwork/internal/testutils"
	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/aretw0/groundwork/pkg/ports"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInstrumentDocuments_CountsByResult(t *testing.T) {
	m := NewMetrics()
	svc := &testutils.MockDocumentService{}
	svc.On("CreatePage", mock.Anything, ports.PageRequest{Title: "ok"}).Return("p-1", nil)
	svc.On("CreatePage", mock.Anything, ports.PageRequest{Title: "denied"}).
		Return("", &domain.RemoteError{Kind: domain.KindAuth, StatusCode: 401})
	svc.On("CreatePage", mock.Anything, ports.PageRequest{Title: "plain"}).Return("", errors.New("boom"))

	docs := InstrumentDocuments(svc, "notion", m)
	ctx := context.Background()
	docs.CreatePage(ctx, ports.PageRequest{Title: "ok"})
	docs.CreatePage(ctx, ports.PageRequest{Title: "ok"})
	docs.CreatePage(ctx, ports.PageRequest{Title: "denied"})
	docs.CreatePage(ctx, ports.PageRequest{Title: "plain"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calls.WithLabelValues("notion", "create_page", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("notion", "create_page", "auth")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("notion", "create_page", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestInstrumentTasks_PassesThrough(t *testing.T) {
	m := NewMetrics()
	svc := &testutils.MockTaskService{}
	svc.On("ListTeams", mock.Anything).Return([]ports.Team{{ID: "42"}}, nil)
	svc.On("CreateList", mock.Anything, "s", "a").Return(ports.Container{ID: "l"}, nil)

	tasks := InstrumentTasks(svc, "clickup", m)
	teams, err := tasks.ListTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", teams[0].ID)
	list, _ := tasks.CreateList(context.Background(), "s", "a")
	assert.Equal(t, "l", list.ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("clickup", "list_teams", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("clickup", "create_list", "ok")))
}

func TestInstrument_NilMetricsIsIdentity(t *testing.T) {
	svc := &testutils.MockDocumentService{}
	assert.Same(t, svc, InstrumentDocuments(svc, "notion", nil))
}

func TestObserveReport_AndTextfile(t *testing.T) {
	m := NewMetrics()
	report := &domain.Report{
		Gate:      domain.OutcomeCompleted,
		Documents: domain.StepReport{Provisioner: "notion", Outcome: domain.OutcomeSkipped},
		Tasks: domain.StepReport{Provisioner: "clickup", Outcome: domain.OutcomeCompleted, Results: []domain.Result{
			{Kind: domain.ResourceSpace, Status: domain.StatusReused},
			{Kind: domain.ResourceList, Status: domain.StatusCreated},
			{Kind: domain.ResourceList, Status: domain.StatusCreated},
		}},
	}
	m.ObserveReport(report)
	m.ObserveReport(report)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcome.WithLabelValues("clickup", "completed")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.resources.WithLabelValues("list", "created")))

	path := filepath.Join(t.TempDir(), "groundwork.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `groundwork_provisioner_outcome{outcome="skipped",provisioner="notion"} 1`)
	assert.Contains(t, string(data), "groundwork_last_run_timestamp_seconds")
}
