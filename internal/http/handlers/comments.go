package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/task-tracker/internal/http/respond"
	"github.com/hongminglow/task-tracker/internal/models/dto"
	"github.com/hongminglow/task-tracker/internal/service"
)

// CommentHandler exposes comment CRUD. Routes must be mounted behind middleware.RequireAuth.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler constructs the handler.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Register attaches comment routes to the router.
func (h *CommentHandler) Register(r chi.Router) {
	r.Route("/api/comments", func(r chi.Router) {
		r.Get("/task/{taskId}", h.handleListByTask)
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *CommentHandler) handleListByTask(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListByTask(r.Context(), chi.URLParam(r, "taskId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	comment, err := h.comments.Create(r.Context(), caller, req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	comment, err := h.comments.Update(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	if err := h.comments.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Comment deleted successfully"})
}
