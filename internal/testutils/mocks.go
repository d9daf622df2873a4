package testutils

import (
	"context"

	"github.com/aretw0/groundwork/pkg/ports"
	"github.com/stretchr/testify/mock"
)

// MockDocumentService is a testify mock of ports.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) CreatePage(ctx context.Context, req ports.PageRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// CreatedTitles returns the titles passed to CreatePage, in call order.
func (m *MockDocumentService) CreatedTitles() []string {
	var titles []string
	for _, c := range m.Calls {
		if c.Method == "CreatePage" {
			titles = append(titles, c.Arguments.Get(1).(ports.PageRequest).Title)
		}
	}
	return titles
}

// MockTaskService is a testify mock of ports.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListTeams(ctx context.Context) ([]ports.Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]ports.Team)
	return teams, args.Error(1)
}

func (m *MockTaskService) ListSpaces(ctx context.Context, teamID string) ([]ports.Container, error) {
	args := m.Called(ctx, teamID)
	spaces, _ := args.Get(0).([]ports.Container)
	return spaces, args.Error(1)
}

func (m *MockTaskService) CreateSpace(ctx context.Context, teamID string, req ports.SpaceRequest) (ports.Container, error) {
	args := m.Called(ctx, teamID, req)
	return args.Get(0).(ports.Container), args.Error(1)
}

func (m *MockTaskService) ListLists(ctx context.Context, spaceID string) ([]ports.Container, error) {
	args := m.Called(ctx, spaceID)
	lists, _ := args.Get(0).([]ports.Container)
	return lists, args.Error(1)
}

func (m *MockTaskService) CreateList(ctx context.Context, spaceID, name string) (ports.Container, error) {
	args := m.Called(ctx, spaceID, name)
	return args.Get(0).(ports.Container), args.Error(1)
}
