package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dealsmart/concierge/internal/crm"
	"github.com/dealsmart/concierge/internal/domain"
	"github.com/dealsmart/concierge/internal/inventory"
)

const toolTestInventory = `[
	{"vin": "WBA1", "year": 2024, "make": "BMW", "model": "X5", "trim": "xDrive40i", "price": 68900, "status": "in_stock", "color": "Alpine White"}
]`

func testToolset(t *testing.T) (*Toolset, *crm.Factory) {
	t.Helper()
	dir := t.TempDir()
	invPath := filepath.Join(dir, "inventory.json")
	if err := os.WriteFile(invPath, []byte(toolTestInventory), 0644); err != nil {
		t.Fatalf("write inventory: %v", err)
	}

	factory := crm.NewFactory(filepath.Join(dir, "mock_crm.jsonl"))
	tools, err := NewToolset(testDealerConfig(), inventory.NewStore(invPath), factory)
	if err != nil {
		t.Fatalf("NewToolset failed: %v", err)
	}
	return tools, factory
}

func TestParseToolCall(t *testing.T) {
	t.Parallel()

	call, err := ParseToolCall(ToolInventoryLookup, map[string]any{"model": "X5", "year": float64(2024)})
	if err != nil {
		t.Fatalf("ParseToolCall failed: %v", err)
	}
	if call.InventoryLookup == nil || call.InventoryLookup.Model != "X5" || call.InventoryLookup.Year != 2024 {
		t.Errorf("unexpected parse: %+v", call.InventoryLookup)
	}
	if call.Name() != ToolInventoryLookup {
		t.Errorf("Name = %q", call.Name())
	}

	if _, err := ParseToolCall("drop_tables", nil); err == nil {
		t.Error("expected error for unknown tool name")
	}
}

func TestDispatchInventoryLookup(t *testing.T) {
	t.Parallel()

	tools, _ := testToolset(t)
	out := tools.Dispatch(ToolCall{InventoryLookup: &InventoryLookupArgs{Model: "x5"}})
	if out["count"] != 1 {
		t.Errorf("count = %v, want 1", out["count"])
	}

	out = tools.Dispatch(ToolCall{InventoryLookup: &InventoryLookupArgs{Model: "x7"}})
	if out["count"] != 0 {
		t.Errorf("count = %v, want 0", out["count"])
	}
}

func TestDispatchCreateLeadNormalizes(t *testing.T) {
	t.Parallel()

	tools, factory := testToolset(t)
	out := tools.Dispatch(ToolCall{CreateLead: &CreateLeadArgs{
		Intent:    "Service Department",
		Timeline:  "as soon as possible, asap",
		BudgetMax: 45000,
	}})
	if out["ok"] != true {
		t.Fatalf("create_lead not ok: %v", out)
	}

	records, err := factory.Mock().ReadLeads(0)
	if err != nil {
		t.Fatalf("ReadLeads failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	lead := records[0].Lead
	if lead.Intent != domain.IntentService {
		t.Errorf("Intent = %q, want service", lead.Intent)
	}
	if lead.Timeline != domain.TimelineASAP {
		t.Errorf("Timeline = %q, want asap", lead.Timeline)
	}
	if lead.LeadType != domain.LeadUrgent {
		t.Errorf("LeadType = %q, want urgent", lead.LeadType)
	}
	if records[0].Metadata["dealer_id"] != "demo_bmw" {
		t.Errorf("metadata dealer_id = %q", records[0].Metadata["dealer_id"])
	}
}

func TestDispatchCreateLeadDefaultsUnknownIntent(t *testing.T) {
	t.Parallel()

	tools, factory := testToolset(t)
	out := tools.Dispatch(ToolCall{CreateLead: &CreateLeadArgs{Intent: "banana"}})
	if out["ok"] != true {
		t.Fatalf("create_lead should default intent, got %v", out)
	}
	records, _ := factory.Mock().ReadLeads(0)
	if records[0].Lead.Intent != domain.IntentSales {
		t.Errorf("Intent = %q, want sales default", records[0].Lead.Intent)
	}
}

func TestDispatchRouteLead(t *testing.T) {
	t.Parallel()

	tools, _ := testToolset(t)
	out := tools.Dispatch(ToolCall{RouteLead: &RouteLeadArgs{Intent: "service"}})
	if out["queue"] != "service-desk" {
		t.Errorf("queue = %v, want service-desk", out["queue"])
	}

	// Unrecognized intent falls to the nurture queue.
	out = tools.Dispatch(ToolCall{RouteLead: &RouteLeadArgs{Intent: "banana"}})
	if out["queue"] != "nurture-drip" {
		t.Errorf("queue = %v, want nurture-drip", out["queue"])
	}
}

func TestDispatchEmptyUnion(t *testing.T) {
	t.Parallel()

	tools, _ := testToolset(t)
	out := tools.Dispatch(ToolCall{})
	if out["ok"] != false {
		t.Errorf("empty union should report failure, got %v", out)
	}
}
