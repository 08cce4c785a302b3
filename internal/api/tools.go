package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dealsmart/concierge/internal/agent"
	"github.com/dealsmart/concierge/internal/dealer"
	"github.com/dealsmart/concierge/internal/domain"
	"github.com/dealsmart/concierge/internal/routing"
	"github.com/go-chi/chi/v5"
)

// RegisterTools registers the voice-bridge tool endpoints. The telephony
// vendor calls these over HTTP with the same argument shapes the chat agent
// uses, so both channels land in the same CRM and routing logic.
func (h *Handler) RegisterTools(r chi.Router) {
	r.Route("/tools", func(r chi.Router) {
		r.Post("/inventory_lookup", h.ToolInventoryLookup)
		r.Post("/create_lead", h.ToolCreateLead)
		r.Post("/route_lead", h.ToolRouteLead)
	})
}

// ToolInventoryLookup searches lot inventory for the voice agent.
func (h *Handler) ToolInventoryLookup(w http.ResponseWriter, r *http.Request) {
	var args agent.InventoryLookupArgs
	if err := decodeBody(w, r, &args); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.voiceLog.Log("tool_inventory_lookup", map[string]any{
		"year": args.Year, "make": args.Make, "model": args.Model, "trim": args.Trim,
	})

	results, err := h.inventory.Search(domain.InventoryQuery{
		Year:  args.Year,
		Make:  args.Make,
		Model: args.Model,
		Trim:  args.Trim,
	})
	if err != nil {
		slog.Error("voice inventory lookup failed", "error", err)
		Error(w, http.StatusInternalServerError, "inventory lookup failed")
		return
	}
	if results == nil {
		results = []domain.InventoryItem{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

// ToolCreateLead commits a lead captured on a voice call. A CRM write
// failure is reported as a structured failure result, not an HTTP error, so
// the call flow is never interrupted.
func (h *Handler) ToolCreateLead(w http.ResponseWriter, r *http.Request) {
	var args agent.CreateLeadArgs
	if err := decodeBody(w, r, &args); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.voiceLog.Log("tool_create_lead", map[string]any{"intent": args.Intent})

	cfg, err := h.dealers.Load(h.cfg.DefaultDealerID)
	if err != nil {
		if errors.Is(err, dealer.ErrNotFound) {
			Error(w, http.StatusNotFound, err.Error())
			return
		}
		Error(w, http.StatusInternalServerError, "failed to load dealer config")
		return
	}

	adapter, err := h.crmFactory.Adapter(cfg.CRMProvider())
	if err != nil {
		// Unsupported provider is a configuration error and surfaces.
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	lead := agent.BuildLead(args)
	result, err := adapter.CreateLead(lead, agent.LeadMetadata(cfg))
	if err != nil {
		h.voiceLog.LogError("tool_create_lead_error", nil, err)
		JSON(w, http.StatusOK, domain.ToolResult{OK: false, Message: "create_lead failed: " + err.Error()})
		return
	}
	JSON(w, http.StatusOK, result)
}

// ToolRouteLead returns the dealer queue for an intent.
func (h *Handler) ToolRouteLead(w http.ResponseWriter, r *http.Request) {
	var args agent.RouteLeadArgs
	if err := decodeBody(w, r, &args); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.voiceLog.Log("tool_route_lead", map[string]any{"intent": args.Intent})

	cfg, err := h.dealers.Load(h.cfg.DefaultDealerID)
	if err != nil {
		if errors.Is(err, dealer.ErrNotFound) {
			Error(w, http.StatusNotFound, err.Error())
			return
		}
		Error(w, http.StatusInternalServerError, "failed to load dealer config")
		return
	}

	queue := routing.Route(domain.Intent(args.Intent), cfg.Routing)
	JSON(w, http.StatusOK, map[string]string{"queue": queue})
}
