package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/task-tracker/internal/http/respond"
	"github.com/hongminglow/task-tracker/internal/models/dto"
	"github.com/hongminglow/task-tracker/internal/service"
)

// TaskHandler exposes task CRUD. Routes must be mounted behind middleware.RequireAuth.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Register attaches task routes to the router.
func (h *TaskHandler) Register(r chi.Router) {
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *TaskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	task, err := h.tasks.Create(r.Context(), caller, req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	task, err := h.tasks.Update(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	if err := h.tasks.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}
