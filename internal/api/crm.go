package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dealsmart/concierge/internal/crm"
	"github.com/go-chi/chi/v5"
)

// RegisterCRM registers the operator-facing mock CRM routes.
func (h *Handler) RegisterCRM(r chi.Router) {
	r.Route("/api/crm", func(r chi.Router) {
		r.Get("/leads", h.ListLeads)
		r.Post("/clear", h.ClearLeads)
	})
}

// ListLeads returns the trailing CRM records, oldest first.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.crmFactory.Mock().ReadLeads(limit)
	if err != nil {
		slog.Error("failed to read CRM leads", "error", err)
		Error(w, http.StatusInternalServerError, "failed to read leads")
		return
	}
	if records == nil {
		records = []crm.Record{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{"leads": records})
}

// ClearLeads truncates the mock CRM log.
func (h *Handler) ClearLeads(w http.ResponseWriter, r *http.Request) {
	if err := h.crmFactory.Mock().Clear(); err != nil {
		slog.Error("failed to clear CRM log", "error", err)
		Error(w, http.StatusInternalServerError, "failed to clear leads")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
