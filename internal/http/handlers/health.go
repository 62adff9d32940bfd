package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/task-tracker/internal/http/respond"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns uptime and storage status.
type HealthHandler struct {
	startedAt time.Time
	store     Pinger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store}
}

// Register wires the handler into the router.
func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, storage, code := "ok", "ok", http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		log.Printf("health: storage ping failed: %v", err)
		status, storage, code = "degraded", "unavailable", http.StatusServiceUnavailable
	}
	respond.JSON(w, code, map[string]string{
		"status":  status,
		"storage": storage,
		"uptime":  time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
