package agent

import (
	"log/slog"

	"github.com/dealsmart/concierge/internal/crm"
	"github.com/dealsmart/concierge/internal/domain"
	"github.com/dealsmart/concierge/internal/extract"
	"github.com/dealsmart/concierge/internal/inventory"
	"github.com/dealsmart/concierge/internal/routing"
)

// Toolset executes the three tools locally on behalf of the reasoning
// service. It is bound to one dealer config snapshot; the CRM adapter is
// resolved at build time so an unsupported provider fails fast instead of
// mid-conversation.
type Toolset struct {
	cfg        *domain.DealerConfig
	inventory  *inventory.Store
	crmAdapter crm.Adapter
}

// NewToolset binds the tools to a dealer config. Returns
// crm.ErrUnsupportedProvider when the config names a CRM with no adapter.
func NewToolset(cfg *domain.DealerConfig, inv *inventory.Store, crmFactory *crm.Factory) (*Toolset, error) {
	adapter, err := crmFactory.Adapter(cfg.CRMProvider())
	if err != nil {
		return nil, err
	}
	return &Toolset{cfg: cfg, inventory: inv, crmAdapter: adapter}, nil
}

// Dispatch executes one tool call and returns its output. Tool-level failures
// (a CRM write error, an unreadable inventory file) come back as structured
// results so the conversational turn survives them.
func (t *Toolset) Dispatch(call ToolCall) map[string]any {
	switch {
	case call.InventoryLookup != nil:
		return t.inventoryLookup(*call.InventoryLookup)
	case call.CreateLead != nil:
		return t.createLead(*call.CreateLead)
	case call.RouteLead != nil:
		return t.routeLead(*call.RouteLead)
	}
	return map[string]any{"ok": false, "message": "unknown tool"}
}

// BuildLead normalizes create_lead arguments into a Lead, computing hotness
// from the normalized timeline and budget. Shared by the agent path and the
// voice tool bridge so both produce identical records.
func BuildLead(args CreateLeadArgs) domain.Lead {
	intent := extract.NormalizeIntent(args.Intent)
	timeline := extract.NormalizeTimeline(args.Timeline)
	return domain.Lead{
		Intent:            intent,
		Timeline:          timeline,
		BudgetMax:         args.BudgetMax,
		TradeIn:           args.TradeIn,
		TradeInVehicle:    args.TradeInVehicle,
		VehicleInterest:   args.VehicleInterest,
		ContactPreference: domain.ContactPreference(args.ContactPreference),
		CustomerName:      args.CustomerName,
		Phone:             args.Phone,
		Email:             args.Email,
		Notes:             args.Notes,
		LeadType:          extract.LeadHotness(timeline, args.BudgetMax),
	}
}

// LeadMetadata builds the CRM metadata for a dealer.
func LeadMetadata(cfg *domain.DealerConfig) map[string]string {
	return map[string]string{
		"dealer_id":   cfg.DealerID,
		"dealer_name": cfg.DealerName,
		"lead_source": cfg.LeadSource(),
	}
}

func (t *Toolset) inventoryLookup(args InventoryLookupArgs) map[string]any {
	results, err := t.inventory.Search(domain.InventoryQuery{
		Year:  args.Year,
		Make:  args.Make,
		Model: args.Model,
		Trim:  args.Trim,
	})
	if err != nil {
		slog.Warn("inventory lookup failed", "dealer_id", t.cfg.DealerID, "error", err)
		return map[string]any{"count": 0, "results": []domain.InventoryItem{}}
	}
	if results == nil {
		results = []domain.InventoryItem{}
	}
	return map[string]any{"count": len(results), "results": results}
}

func (t *Toolset) createLead(args CreateLeadArgs) map[string]any {
	lead := BuildLead(args)
	result, err := t.crmAdapter.CreateLead(lead, LeadMetadata(t.cfg))
	if err != nil {
		slog.Warn("CRM create_lead failed", "dealer_id", t.cfg.DealerID, "error", err)
		return map[string]any{"ok": false, "message": "create_lead failed: " + err.Error()}
	}
	out := map[string]any{"ok": result.OK, "message": result.Message}
	if result.Data != nil {
		out["data"] = result.Data
	}
	return out
}

func (t *Toolset) routeLead(args RouteLeadArgs) map[string]any {
	queue := routing.Route(domain.Intent(args.Intent), t.cfg.Routing)
	return map[string]any{"queue": queue}
}
