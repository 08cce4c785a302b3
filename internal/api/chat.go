package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dealsmart/concierge/internal/agent"
	"github.com/dealsmart/concierge/internal/crm"
	"github.com/dealsmart/concierge/internal/dealer"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RegisterChat registers the chat and dealer management routes.
func (h *Handler) RegisterChat(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat/turn", h.ChatTurn)
		r.Get("/dealers", h.ListDealers)
		r.Get("/dealers/{dealerID}/config", h.DealerConfig)
		r.Post("/agent/cache/clear", h.ClearAgentCache)
		r.Get("/config", h.GetConfig)
	})
}

// ChatTurn runs one conversation turn. The body may carry session state so
// the UI can hold it between calls instead of relying on the server store.
func (h *Handler) ChatTurn(w http.ResponseWriter, r *http.Request) {
	var req agent.TurnRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DealerID == "" {
		req.DealerID = h.cfg.DefaultDealerID
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}
	if strings.TrimSpace(req.Message) == "" {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.orchestrator.Turn(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, dealer.ErrNotFound):
			Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, crm.ErrUnsupportedProvider):
			Error(w, http.StatusInternalServerError, err.Error())
		default:
			slog.Error("chat turn failed", "dealer_id", req.DealerID, "session_id", req.SessionID, "error", err)
			Error(w, http.StatusInternalServerError, "turn failed")
		}
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"session_id": req.SessionID,
		"reply":      result.Reply,
		"trace":      result,
	})
}

// ListDealers returns the known dealer ids.
func (h *Handler) ListDealers(w http.ResponseWriter, r *http.Request) {
	ids, err := h.dealers.List()
	if err != nil {
		slog.Error("failed to list dealers", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list dealers")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{"dealers": ids})
}

// DealerConfig returns one dealer's configuration.
func (h *Handler) DealerConfig(w http.ResponseWriter, r *http.Request) {
	dealerID := chi.URLParam(r, "dealerID")
	cfg, err := h.dealers.Load(dealerID)
	if err != nil {
		if errors.Is(err, dealer.ErrNotFound) {
			Error(w, http.StatusNotFound, err.Error())
			return
		}
		Error(w, http.StatusInternalServerError, "failed to load dealer config")
		return
	}
	JSON(w, http.StatusOK, cfg)
}

// ClearAgentCache evicts a dealer's compiled agent so the next turn rebuilds
// it from the current config.
func (h *Handler) ClearAgentCache(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DealerID string `json:"dealer_id"`
	}
	if err := decodeBody(w, r, &req); err != nil || req.DealerID == "" {
		Error(w, http.StatusBadRequest, "dealer_id is required")
		return
	}
	h.cache.Evict(req.DealerID)
	JSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// GetConfig returns the server configuration for the frontend.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"agent_enabled":     h.agentEnabled,
		"default_dealer_id": h.cfg.DefaultDealerID,
	})
}
