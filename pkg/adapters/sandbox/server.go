// Package sandbox emulates the document and task workspace endpoints used by
// groundwork, so a full provisioning run can be exercised locally.
package sandbox

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Seeded workspace defaults.
const (
	DefaultTeamID    = "9001"
	DefaultTeamName  = "Sandbox Team"
	DefaultRootID    = "sandbox-root"
	DefaultRootTitle = "Sandbox Workspace"
)

// Route prefixes of the emulated APIs.
const (
	NotionPrefix  = "/notion/v1"
	ClickUpPrefix = "/clickup/api/v2"
)

// Server serves both emulated APIs from a Store.
type Server struct {
	store   *Store
	router  routers.Router
	failing map[string]bool
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithFailingTitles makes page creation fail with a validation error for the given titles.
func WithFailingTitles(titles ...string) Option {
	return func(s *Server) {
		for _, t := range titles {
			s.failing[t] = true
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer loads the embedded OpenAPI document and builds a server over store.
func NewServer(store *Store, opts ...Option) (*Server, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("loading sandbox openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid sandbox openapi document: %w", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building openapi router: %w", err)
	}

	s := &Server{
		store:   store,
		router:  router,
		failing: make(map[string]bool),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the HTTP handler for the sandbox.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route(NotionPrefix, func(r chi.Router) {
		r.Use(requireHeaders(notionError, "Authorization", "Notion-Version"))
		r.Use(s.validate(notionError))
		r.Post("/pages", s.createPage)
	})

	r.Route(ClickUpPrefix, func(r chi.Router) {
		r.Use(requireHeaders(clickupError, "Authorization"))
		r.Use(s.validate(clickupError))
		r.Get("/team", s.listTeams)
		r.Get("/team/{team_id}/space", s.listSpaces)
		r.Post("/team/{team_id}/space", s.createSpace)
		r.Get("/space/{space_id}/list", s.listLists)
		r.Post("/space/{space_id}/list", s.createList)
	})

	return r
}

// errorWriter renders an error in the dialect of one of the emulated APIs.
type errorWriter func(w http.ResponseWriter, status int, code, message string)

func notionError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"object":  "error",
		"status":  status,
		"code":    code,
		"message": message,
	})
}

func clickupError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"err":   message,
		"ECODE": code,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("sandbox request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func requireHeaders(fail errorWriter, names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, name := range names {
				if r.Header.Get(name) == "" {
					fail(w, http.StatusUnauthorized, "unauthorized", "missing "+name+" header")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// validate checks the request against the embedded OpenAPI document.
func (s *Server) validate(fail errorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, params, err := s.router.FindRoute(r)
			if err != nil {
				fail(w, http.StatusNotFound, "route_not_found", err.Error())
				return
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				s.logger.Debug("sandbox request rejected", "path", r.URL.Path, "err", err)
				fail(w, http.StatusBadRequest, "validation_error", err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// pathParam binds a simple-style path parameter.
func pathParam(r *http.Request, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return value, nil
}

// storeFailure maps a store error onto an API error response.
func storeFailure(w http.ResponseWriter, fail errorWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		fail(w, http.StatusNotFound, "object_not_found", err.Error())
		return
	}
	fail(w, http.StatusInternalServerError, "internal_server_error", err.Error())
}

type createPageBody struct {
	Parent struct {
		PageID string `json:"page_id"`
	} `json:"parent"`
	Properties struct {
		Title []struct {
			Text struct {
				Content string `json:"content"`
			} `json:"text"`
		} `json:"title"`
	} `json:"properties"`
}

func (s *Server) createPage(w http.ResponseWriter, r *http.Request) {
	var body createPageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		notionError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	title := body.Properties.Title[0].Text.Content
	if s.failing[title] {
		notionError(w, http.StatusBadRequest, "validation_error", fmt.Sprintf("page %q is configured to fail", title))
		return
	}

	page, err := s.store.CreatePage(r.Context(), body.Parent.PageID, title)
	if err != nil {
		storeFailure(w, notionError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"object": "page",
		"id":     page.ID,
		"parent": map[string]string{"type": "page_id", "page_id": page.ParentID},
	})
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.store.Teams(r.Context())
	if err != nil {
		storeFailure(w, clickupError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

func (s *Server) listSpaces(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathParam(r, "team_id")
	if err != nil {
		clickupError(w, http.StatusBadRequest, "INPUT_001", err.Error())
		return
	}
	spaces, err := s.store.Spaces(r.Context(), teamID)
	if err != nil {
		storeFailure(w, clickupError, err)
		return
	}
	if spaces == nil {
		spaces = []Space{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"spaces": spaces})
}

type createSpaceBody struct {
	Name              string `json:"name"`
	MultipleAssignees bool   `json:"multiple_assignees"`
	Features          struct {
		DueDates struct {
			Enabled bool `json:"enabled"`
		} `json:"due_dates"`
	} `json:"features"`
}

func (s *Server) createSpace(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathParam(r, "team_id")
	if err != nil {
		clickupError(w, http.StatusBadRequest, "INPUT_001", err.Error())
		return
	}
	var body createSpaceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		clickupError(w, http.StatusBadRequest, "INPUT_002", err.Error())
		return
	}
	space, err := s.store.CreateSpace(r.Context(), teamID, body.Name, body.MultipleAssignees, body.Features.DueDates.Enabled)
	if err != nil {
		storeFailure(w, clickupError, err)
		return
	}
	writeJSON(w, http.StatusOK, space)
}

func (s *Server) listLists(w http.ResponseWriter, r *http.Request) {
	spaceID, err := pathParam(r, "space_id")
	if err != nil {
		clickupError(w, http.StatusBadRequest, "INPUT_001", err.Error())
		return
	}
	lists, err := s.store.Lists(r.Context(), spaceID)
	if err != nil {
		storeFailure(w, clickupError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lists": lists})
}

func (s *Server) createList(w http.ResponseWriter, r *http.Request) {
	spaceID, err := pathParam(r, "space_id")
	if err != nil {
		clickupError(w, http.StatusBadRequest, "INPUT_001", err.Error())
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		clickupError(w, http.StatusBadRequest, "INPUT_002", err.Error())
		return
	}
	list, err := s.store.CreateList(r.Context(), spaceID, body.Name)
	if err != nil {
		storeFailure(w, clickupError, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Open opens a store at path, seeds the default workspace and returns a ready server.
// The caller closes the returned store.
func Open(ctx context.Context, path string, opts ...Option) (*Server, *Store, error) {
	store, err := OpenStore(path)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Seed(ctx, DefaultTeamID, DefaultTeamName, DefaultRootID, DefaultRootTitle); err != nil {
		store.Close()
		return nil, nil, err
	}
	srv, err := NewServer(store, opts...)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return srv, store, nil
}
