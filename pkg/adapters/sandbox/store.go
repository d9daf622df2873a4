package sandbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a referenced page, team or space does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	id         TEXT PRIMARY KEY,
	parent_id  TEXT NOT NULL,
	title      TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS teams (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS spaces (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	team_id            TEXT NOT NULL REFERENCES teams(id),
	name               TEXT NOT NULL,
	multiple_assignees INTEGER NOT NULL,
	due_dates          INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS lists (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	space_id INTEGER NOT NULL REFERENCES spaces(id),
	name     TEXT NOT NULL
);
`

// Page is a page stored by the sandbox.
type Page struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id"`
	Title    string `json:"title"`
}

// Space is a space stored by the sandbox.
type Space struct {
	ID                string `json:"id"`
	TeamID            string `json:"team_id"`
	Name              string `json:"name"`
	MultipleAssignees bool   `json:"multiple_assignees"`
	DueDates          bool   `json:"due_dates"`
}

// Item is a team or a list.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Store keeps the emulated workspaces in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) a sandbox database. An empty path keeps everything in memory.
func OpenStore(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sandbox database: %w", err)
	}
	// An in-memory database lives in a single connection.
	db.SetMaxOpenConns(1)

	if path != "" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sandbox schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seed makes sure a team and a root anchor page exist. It is safe to call on every start.
func (s *Store) Seed(ctx context.Context, teamID, teamName, rootPageID, rootTitle string) error {
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO teams (id, name) VALUES (?, ?)`, teamID, teamName); err != nil {
		return fmt.Errorf("seeding team: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO pages (id, parent_id, title, created_at) VALUES (?, '', ?, ?)`,
		rootPageID, rootTitle, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("seeding root page: %w", err)
	}
	return nil
}

// CreatePage stores a page under an existing parent.
func (s *Store) CreatePage(ctx context.Context, parentID, title string) (Page, error) {
	if ok, err := s.exists(ctx, `SELECT 1 FROM pages WHERE id = ?`, parentID); err != nil {
		return Page{}, err
	} else if !ok {
		return Page{}, fmt.Errorf("page %s: %w", parentID, ErrNotFound)
	}

	p := Page{ID: uuid.NewString(), ParentID: parentID, Title: title}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pages (id, parent_id, title, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.ParentID, p.Title, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return Page{}, fmt.Errorf("inserting page: %w", err)
	}
	return p, nil
}

// Children returns the pages directly under parentID, in creation order.
func (s *Store) Children(ctx context.Context, parentID string) ([]Page, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, parent_id, title FROM pages WHERE parent_id = ? ORDER BY rowid`, parentID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.ID, &p.ParentID, &p.Title); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Teams returns every team, in insertion order.
func (s *Store) Teams(ctx context.Context) ([]Item, error) {
	return s.items(ctx, `SELECT id, name FROM teams ORDER BY rowid`)
}

// Spaces returns the spaces of a team.
func (s *Store) Spaces(ctx context.Context, teamID string) ([]Space, error) {
	if ok, err := s.exists(ctx, `SELECT 1 FROM teams WHERE id = ?`, teamID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team_id, name, multiple_assignees, due_dates FROM spaces WHERE team_id = ? ORDER BY id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying spaces: %w", err)
	}
	defer rows.Close()

	var out []Space
	for rows.Next() {
		var (
			sp Space
			id int64
		)
		if err := rows.Scan(&id, &sp.TeamID, &sp.Name, &sp.MultipleAssignees, &sp.DueDates); err != nil {
			return nil, err
		}
		sp.ID = strconv.FormatInt(id, 10)
		out = append(out, sp)
	}
	return out, rows.Err()
}

// CreateSpace stores a space in an existing team. Names are not unique.
func (s *Store) CreateSpace(ctx context.Context, teamID, name string, multipleAssignees, dueDates bool) (Space, error) {
	if ok, err := s.exists(ctx, `SELECT 1 FROM teams WHERE id = ?`, teamID); err != nil {
		return Space{}, err
	} else if !ok {
		return Space{}, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO spaces (team_id, name, multiple_assignees, due_dates) VALUES (?, ?, ?, ?)`,
		teamID, name, multipleAssignees, dueDates)
	if err != nil {
		return Space{}, fmt.Errorf("inserting space: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Space{}, err
	}
	return Space{ID: strconv.FormatInt(id, 10), TeamID: teamID, Name: name, MultipleAssignees: multipleAssignees, DueDates: dueDates}, nil
}

// Lists returns the lists of a space.
func (s *Store) Lists(ctx context.Context, spaceID string) ([]Item, error) {
	if err := s.spaceExists(ctx, spaceID); err != nil {
		return nil, err
	}
	id, _ := strconv.ParseInt(spaceID, 10, 64)
	return s.items(ctx, `SELECT id, name FROM lists WHERE space_id = ? ORDER BY id`, id)
}

// CreateList stores a list in an existing space. Duplicate names are allowed.
func (s *Store) CreateList(ctx context.Context, spaceID, name string) (Item, error) {
	if err := s.spaceExists(ctx, spaceID); err != nil {
		return Item{}, err
	}
	id, _ := strconv.ParseInt(spaceID, 10, 64)
	res, err := s.db.ExecContext(ctx, `INSERT INTO lists (space_id, name) VALUES (?, ?)`, id, name)
	if err != nil {
		return Item{}, fmt.Errorf("inserting list: %w", err)
	}
	listID, err := res.LastInsertId()
	if err != nil {
		return Item{}, err
	}
	return Item{ID: strconv.FormatInt(listID, 10), Name: name}, nil
}

func (s *Store) spaceExists(ctx context.Context, spaceID string) error {
	id, err := strconv.ParseInt(spaceID, 10, 64)
	if err != nil {
		return fmt.Errorf("space %s: %w", spaceID, ErrNotFound)
	}
	ok, err := s.exists(ctx, `SELECT 1 FROM spaces WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("space %s: %w", spaceID, ErrNotFound)
	}
	return nil
}

func (s *Store) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying sandbox: %w", err)
	}
	return true, nil
}

func (s *Store) items(ctx context.Context, query string, args ...any) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sandbox: %w", err)
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		var (
			it Item
			id any
		)
		if err := rows.Scan(&id, &it.Name); err != nil {
			return nil, err
		}
		it.ID = fmt.Sprint(id)
		out = append(out, it)
	}
	return out, rows.Err()
}
