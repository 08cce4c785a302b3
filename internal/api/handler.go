// Package api provides HTTP handlers for the concierge API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/dealsmart/concierge/internal/agent"
	"github.com/dealsmart/concierge/internal/config"
	"github.com/dealsmart/concierge/internal/crm"
	"github.com/dealsmart/concierge/internal/dealer"
	"github.com/dealsmart/concierge/internal/inventory"
	"github.com/dealsmart/concierge/internal/voicelog"
)

// maxRequestBodySize is the maximum allowed request body size (1MB).
const maxRequestBodySize = 1 << 20

// Handler holds the shared dependencies for all API handlers.
type Handler struct {
	cfg          *config.Config
	dealers      *dealer.Provider
	orchestrator *agent.Orchestrator
	cache        *agent.Cache
	crmFactory   *crm.Factory
	inventory    *inventory.Store
	voiceLog     *voicelog.Logger
	agentEnabled bool
}

// NewHandler creates a Handler with common dependencies.
func NewHandler(
	cfg *config.Config,
	dealers *dealer.Provider,
	orchestrator *agent.Orchestrator,
	cache *agent.Cache,
	crmFactory *crm.Factory,
	inv *inventory.Store,
	voiceLog *voicelog.Logger,
	agentEnabled bool,
) *Handler {
	return &Handler{
		cfg:          cfg,
		dealers:      dealers,
		orchestrator: orchestrator,
		cache:        cache,
		crmFactory:   crmFactory,
		inventory:    inv,
		voiceLog:     voiceLog,
		agentEnabled: agentEnabled,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a JSON request body with a size cap.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}
