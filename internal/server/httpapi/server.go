// Package httpapi exposes the account and task services over HTTP. Session
// tokens travel in the x-auth header both ways: presented on authenticated
// requests and returned on signup/login responses.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/logging"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AccountService is the slice of the account service the HTTP layer needs.
type AccountService interface {
	Register(ctx context.Context, email string, password string) (*models.User, error)
	Login(ctx context.Context, email string, password string) (*models.User, error)
	IssueSession(ctx context.Context, user *models.User) (string, error)
	ResolveSession(ctx context.Context, token string) (*models.User, error)
	RevokeSession(ctx context.Context, user *models.User, token string) error
}

// TaskService is the slice of the task service the HTTP layer needs.
type TaskService interface {
	Create(ctx context.Context, userID string, text string) (*models.Task, error)
	List(ctx context.Context, userID string) ([]*models.Task, error)
	GetByID(ctx context.Context, id string, userID string) (*models.Task, error)
	Update(ctx context.Context, id string, userID string, patch services.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string, userID string) (*models.Task, error)
}

// HTTPServer routes requests to the account and task services.
type HTTPServer struct {
	address  string
	accounts AccountService
	tasks    TaskService
	logger   logging.Logger
}

// NewHTTPServer constructs the server around its services.
func NewHTTPServer(a string, l logging.Logger, as AccountService, ts TaskService) (*HTTPServer, error) {
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		accounts: as,
		tasks:    ts,
	}, nil
}

// Router builds the chi handler tree. Exported so tests can drive the full
// middleware chain without a listener.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/users", s.handleSignup)
	r.Post("/users/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/users/me", s.handleMe)
		r.Delete("/users/me/token", s.handleLogout)

		r.Route("/todos", func(r chi.Router) {
			r.Post("/", s.handleCreateTask)
			r.Get("/", s.handleListTasks)
			r.Get("/{id}", s.handleGetTask)
			r.Patch("/{id}", s.handleUpdateTask)
			r.Delete("/{id}", s.handleDeleteTask)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// writeJSON renders v with the given status. Encoding failures are logged,
// not surfaced; headers are already gone by then.
func (s *HTTPServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), "response encoding error", "error", err)
	}
}
