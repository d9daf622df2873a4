// Package memory provides an in-memory document and task workspace.
// It backs dry runs and examples; nothing leaves the process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/aretw0/groundwork/pkg/ports"
)

// DefaultTeam is the single team every Workspace starts with.
var DefaultTeam = ports.Team{ID: "team-1", Name: "In-memory Team"}

// Page is a page created in the workspace.
type Page struct {
	ID       string
	ParentID string
	Title    string
}

// Workspace implements ports.DocumentService and ports.TaskService in memory.
// Safe for concurrent use.
type Workspace struct {
	mu     sync.RWMutex
	seq    int
	pages  []Page
	teams  []ports.Team
	spaces map[string][]ports.Container // by team
	lists  map[string][]ports.Container // by space
}

var (
	_ ports.DocumentService = (*Workspace)(nil)
	_ ports.TaskService     = (*Workspace)(nil)
)

// NewWorkspace creates a workspace holding DefaultTeam and nothing else.
func NewWorkspace() *Workspace {
	return &Workspace{
		teams:  []ports.Team{DefaultTeam},
		spaces: make(map[string][]ports.Container),
		lists:  make(map[string][]ports.Container),
	}
}

func (w *Workspace) nextID(prefix string) string {
	w.seq++
	return fmt.Sprintf("%s-%d", prefix, w.seq)
}

// CreatePage records a page. Any parent id is accepted, so the workspace can
// stand in for an external anchor page.
func (w *Workspace) CreatePage(ctx context.Context, req ports.PageRequest) (string, error) {
	if req.Title == "" {
		return "", &domain.RemoteError{Service: "memory", Operation: "create page", Kind: domain.KindValidation, Message: "title is required"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p := Page{ID: w.nextID("page"), ParentID: req.ParentID, Title: req.Title}
	w.pages = append(w.pages, p)
	return p.ID, nil
}

// Pages returns every page, in creation order.
func (w *Workspace) Pages() []Page {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Page(nil), w.pages...)
}

// ListTeams returns the teams.
func (w *Workspace) ListTeams(ctx context.Context) ([]ports.Team, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]ports.Team(nil), w.teams...), nil
}

// ListSpaces returns the spaces of a team.
func (w *Workspace) ListSpaces(ctx context.Context, teamID string) ([]ports.Container, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.hasTeam(teamID) {
		return nil, notFound("list spaces", "team", teamID)
	}
	return append([]ports.Container(nil), w.spaces[teamID]...), nil
}

// CreateSpace adds a space to a team.
func (w *Workspace) CreateSpace(ctx context.Context, teamID string, req ports.SpaceRequest) (ports.Container, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.hasTeam(teamID) {
		return ports.Container{}, notFound("create space", "team", teamID)
	}
	c := ports.Container{ID: w.nextID("space"), Name: req.Name}
	w.spaces[teamID] = append(w.spaces[teamID], c)
	w.lists[c.ID] = nil
	return c, nil
}

// ListLists returns the lists of a space.
func (w *Workspace) ListLists(ctx context.Context, spaceID string) ([]ports.Container, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	lists, ok := w.lists[spaceID]
	if !ok {
		return nil, notFound("list lists", "space", spaceID)
	}
	return append([]ports.Container(nil), lists...), nil
}

// CreateList adds a list to a space. Duplicate names are kept.
func (w *Workspace) CreateList(ctx context.Context, spaceID, name string) (ports.Container, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.lists[spaceID]; !ok {
		return ports.Container{}, notFound("create list", "space", spaceID)
	}
	c := ports.Container{ID: w.nextID("list"), Name: name}
	w.lists[spaceID] = append(w.lists[spaceID], c)
	return c, nil
}

func (w *Workspace) hasTeam(id string) bool {
	for _, t := range w.teams {
		if t.ID == id {
			return true
		}
	}
	return false
}

func notFound(op, what, id string) error {
	return &domain.RemoteError{
		Service:    "memory",
		Operation:  op,
		StatusCode: 404,
		Kind:       domain.KindNotFound,
		Message:    fmt.Sprintf("%s %s not found", what, id),
	}
}
