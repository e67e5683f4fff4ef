package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sipico/todo-store/internal/metrics"
	"github.com/sipico/todo-store/internal/middleware"
)

// NewRouter creates the API router with all routes and middleware.
func (h *Handler) NewRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(metrics.Middleware)
	r.Use(chimiddleware.Recoverer)

	// Public endpoints
	r.Get("/health", h.HandleHealth)
	r.Get("/ready", h.HandleReady)

	// To-do CRUD
	r.Route("/todos", func(r chi.Router) {
		r.Get("/", h.HandleListTodos)
		r.Post("/", h.HandleCreateTodo)
		r.Patch("/{id}", h.HandleUpdateTodo)
		r.Delete("/{id}", h.HandleDeleteTodo)
	})

	// Log level management
	r.Post("/loglevel", h.HandleSetLogLevel)

	return r
}
