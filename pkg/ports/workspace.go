package ports

import "context"

// PageRequest is the input for creating a page in the document workspace.
type PageRequest struct {
	ParentID string
	Title    string
	// Children is an optional block payload appended to the new page.
	Children []map[string]any
}

// DocumentService is the document workspace (pages nested under pages).
type DocumentService interface {
	// CreatePage creates a page and returns its identifier.
	CreatePage(ctx context.Context, req PageRequest) (string, error)
}

// Team is a tenant in the task workspace.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Container is a space or a list in the task workspace.
type Container struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpaceRequest is the input for creating a space.
type SpaceRequest struct {
	Name              string
	MultipleAssignees bool
	DueDates          bool
}

// TaskService is the task workspace (teams own spaces, spaces own lists).
type TaskService interface {
	ListTeams(ctx context.Context) ([]Team, error)
	ListSpaces(ctx context.Context, teamID string) ([]Container, error)
	CreateSpace(ctx context.Context, teamID string, req SpaceRequest) (Container, error)
	ListLists(ctx context.Context, spaceID string) ([]Container, error)
	CreateList(ctx context.Context, spaceID, name string) (Container, error)
}
