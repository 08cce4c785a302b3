package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Health reports service status and whether the reasoning service is wired.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"status":        "healthy",
		"agent_enabled": h.agentEnabled,
	})
}

// RegisterHealth registers the health check route.
func (h *Handler) RegisterHealth(r chi.Router) {
	r.Get("/health", h.Health)
}
