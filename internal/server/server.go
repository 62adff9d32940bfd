package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hongminglow/task-tracker/internal/auth"
	"github.com/hongminglow/task-tracker/internal/config"
	"github.com/hongminglow/task-tracker/internal/http/handlers"
	"github.com/hongminglow/task-tracker/internal/middleware"
	"github.com/hongminglow/task-tracker/internal/service"
	"github.com/hongminglow/task-tracker/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, store),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewRouter assembles the chi router with shared middleware and every API route.
func NewRouter(cfg config.Config, store storage.Store) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	requireAuth := middleware.RequireAuth(tokens, store)

	handlers.NewHealthHandler(time.Now(), store).Register(r)
	handlers.NewAuthHandler(store, tokens, &cfg).Register(r, requireAuth)

	tasks := handlers.NewTaskHandler(service.NewTaskService(store))
	comments := handlers.NewCommentHandler(service.NewCommentService(store, store))
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		tasks.Register(r)
		comments.Register(r)
	})

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
