// Package api provides the HTTP interface over the to-do store.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sipico/todo-store/internal/store"
)

// Store is the persistence interface the API consumes.
type Store interface {
	List(ctx context.Context) ([]store.Todo, error)
	Add(ctx context.Context, title string, completed store.Completion) (*store.Todo, error)
	Update(ctx context.Context, id int64, patch store.Patch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// Health check
	Ping(ctx context.Context) error
}

// Handler provides the to-do endpoints.
type Handler struct {
	store    Store
	logger   *slog.Logger
	logLevel *slog.LevelVar
}

// NewHandler creates an API handler.
func NewHandler(store Store, logLevel *slog.LevelVar, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if logLevel == nil {
		logLevel = new(slog.LevelVar)
	}

	return &Handler{
		store:    store,
		logger:   logger,
		logLevel: logLevel,
	}
}

// CreateTodoRequest is the request body for POST /todos.
// Completed is untyped on purpose: booleans, numbers, and strings all pass
// through the store's coercion rule; a missing or null value means unspecified.
type CreateTodoRequest struct {
	Title     string `json:"title"`
	Completed any    `json:"completed"`
}

// UpdateTodoRequest is the request body for PATCH /todos/{id}.
// Absent fields keep the stored values.
type UpdateTodoRequest struct {
	Title     *string `json:"title"`
	Completed any     `json:"completed"`
}

// HandleListTodos returns all todos in ascending ID order
// GET /todos
func (h *Handler) HandleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list todos", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to list todos")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	encErr := json.NewEncoder(w).Encode(todos)
	if encErr != nil {
		// Encoding errors are not critical for list response
		_ = encErr
	}
}

// HandleCreateTodo creates a new todo
// POST /todos
// Body: {"title": "...", "completed": <bool|number|string|null>}
func (h *Handler) HandleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body")
		return
	}

	todo, err := h.store.Add(r.Context(), req.Title, store.ParseCompletion(req.Completed))
	if err != nil {
		if errors.Is(err, store.ErrTitleRequired) {
			WriteError(w, http.StatusBadRequest, ErrCodeValidationError, "title is required")
			return
		}
		h.logger.Error("failed to create todo", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to create todo")
		return
	}

	h.logger.Info("todo created", "id", todo.ID, "title", todo.Title)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	encErr := json.NewEncoder(w).Encode(todo)
	if encErr != nil {
		// Encoding errors are not critical for create response
		_ = encErr
	}
}

// HandleUpdateTodo patches an existing todo
// PATCH /todos/{id}
// Body: {"title": "...", "completed": <bool|number|string|null>} - both optional
func (h *Handler) HandleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid todo ID")
		return
	}

	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body")
		return
	}

	patch := store.Patch{
		Title:     req.Title,
		Completed: store.ParseCompletion(req.Completed),
	}

	updated, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrTitleRequired) {
			WriteError(w, http.StatusBadRequest, ErrCodeValidationError, "title is required")
			return
		}
		h.logger.Error("failed to update todo", "id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to update todo")
		return
	}

	if !updated {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "todo not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	encErr := json.NewEncoder(w).Encode(map[string]bool{"updated": true})
	if encErr != nil {
		// Encoding errors are not critical for update response
		_ = encErr
	}
}

// HandleDeleteTodo removes a todo
// DELETE /todos/{id}
func (h *Handler) HandleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid todo ID")
		return
	}

	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete todo", "id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to delete todo")
		return
	}

	if !deleted {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "todo not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetLogLevelRequest is the request body for POST /loglevel
type SetLogLevelRequest struct {
	Level string `json:"level"`
}

// HandleSetLogLevel changes runtime log level
// POST /loglevel
// Body: {"level": "debug|info|warn|error"}
func (h *Handler) HandleSetLogLevel(w http.ResponseWriter, r *http.Request) {
	var req SetLogLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body")
		return
	}

	var level slog.Level
	switch req.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid level (must be: debug, info, warn, error)")
		return
	}

	h.logLevel.Set(level)
	h.logger.Info("log level changed", "new_level", req.Level)

	w.Header().Set("Content-Type", "application/json")
	encErr := json.NewEncoder(w).Encode(map[string]string{"level": req.Level})
	if encErr != nil {
		// Encoding errors are not critical for loglevel response
		_ = encErr
	}
}
