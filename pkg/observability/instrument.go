package observability

import (
	"context"
	"time"

	"github.com/aretw0/groundwork/pkg/ports"
)

type documents struct {
	next    ports.DocumentService
	metrics *Metrics
	service string
}

// InstrumentDocuments wraps a DocumentService so each call is recorded.
func InstrumentDocuments(next ports.DocumentService, service string, m *Metrics) ports.DocumentService {
	if m == nil || next == nil {
		return next
	}
	return &documents{next: next, metrics: m, service: service}
}

func (d *documents) CreatePage(ctx context.Context, req ports.PageRequest) (string, error) {
	start := time.Now()
	id, err := d.next.CreatePage(ctx, req)
	d.metrics.ObserveCall(d.service, "create_page", time.Since(start), err)
	return id, err
}

type tasks struct {
	next    ports.TaskService
	metrics *Metrics
	service string
}

// InstrumentTasks wraps a TaskService so each call is recorded.
func InstrumentTasks(next ports.TaskService, service string, m *Metrics) ports.TaskService {
	if m == nil || next == nil {
		return next
	}
	return &tasks{next: next, metrics: m, service: service}
}

func (t *tasks) observe(op string, start time.Time, err error) {
	t.metrics.ObserveCall(t.service, op, time.Since(start), err)
}

func (t *tasks) ListTeams(ctx context.Context) ([]ports.Team, error) {
	start := time.Now()
	teams, err := t.next.ListTeams(ctx)
	t.observe("list_teams", start, err)
	return teams, err
}

func (t *tasks) ListSpaces(ctx context.Context, teamID string) ([]ports.Container, error) {
	start := time.Now()
	spaces, err := t.next.ListSpaces(ctx, teamID)
	t.observe("list_spaces", start, err)
	return spaces, err
}

func (t *tasks) CreateSpace(ctx context.Context, teamID string, req ports.SpaceRequest) (ports.Container, error) {
	start := time.Now()
	space, err := t.next.CreateSpace(ctx, teamID, req)
	t.observe("create_space", start, err)
	return space, err
}

func (t *tasks) ListLists(ctx context.Context, spaceID string) ([]ports.Container, error) {
	start := time.Now()
	lists, err := t.next.ListLists(ctx, spaceID)
	t.observe("list_lists", start, err)
	return lists, err
}

func (t *tasks) CreateList(ctx context.Context, spaceID, name string) (ports.Container, error) {
	start := time.Now()
	list, err := t.next.CreateList(ctx, spaceID, name)
	t.observe("create_list", start, err)
	return list, err
}
