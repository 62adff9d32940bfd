package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hongminglow/task-tracker/internal/auth"
	"github.com/hongminglow/task-tracker/internal/http/respond"
	"github.com/hongminglow/task-tracker/internal/service"
)

// decodeJSON reads the request body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// callerIdentity returns the identity placed on the context by middleware.RequireAuth.
func callerIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "No token provided")
	}
	return id, ok
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrTaskNotFound):
		respond.Error(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrCommentNotFound):
		respond.Error(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, service.ErrForbidden):
		respond.Error(w, http.StatusForbidden, "Forbidden")
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
