package dialogue

import (
	"testing"

	"github.com/dealsmart/concierge/internal/domain"
)

func TestNextQuestionIsDeterministic(t *testing.T) {
	t.Parallel()

	lead := &domain.Lead{Intent: domain.IntentSales, Timeline: domain.TimelineSoon}
	first := NextQuestion(lead)
	second := NextQuestion(lead)
	if first != second {
		t.Errorf("NextQuestion not deterministic: %q vs %q", first, second)
	}
	if first != questionTradeIn {
		t.Errorf("NextQuestion = %q, want trade-in question", first)
	}
}

func TestNextQuestionOrder(t *testing.T) {
	t.Parallel()

	yes := true
	tests := []struct {
		name string
		lead domain.Lead
		want string
	}{
		{"timeline first", domain.Lead{Intent: domain.IntentSales}, questionTimeline},
		{"then trade-in", domain.Lead{Intent: domain.IntentSales, Timeline: domain.TimelineSoon}, questionTradeIn},
		{"then budget", domain.Lead{Intent: domain.IntentSales, Timeline: domain.TimelineSoon, TradeIn: &yes}, questionBudget},
		{"then contact method", domain.Lead{Intent: domain.IntentSales, Timeline: domain.TimelineSoon, TradeIn: &yes, BudgetMax: 45000}, questionContactMethod},
		{"terminal prompt repeats", domain.Lead{Intent: domain.IntentSales, Timeline: domain.TimelineSoon, TradeIn: &yes, BudgetMax: 45000, ContactPreference: domain.ContactSMS}, questionContactNumber},
		{"service asks scheduling first", domain.Lead{Intent: domain.IntentService}, questionServiceSlot},
		{"service then confirmation channel", domain.Lead{Intent: domain.IntentService, Timeline: domain.TimelineASAP}, questionServiceConfirm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := tt.lead
			if got := NextQuestion(&lead); got != tt.want {
				t.Errorf("NextQuestion = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpdateLeadFillsMonotonically(t *testing.T) {
	t.Parallel()

	lead := &domain.Lead{}
	UpdateLead(lead, "looking for something around 45, maybe an x5")
	if lead.BudgetMax != 45000 {
		t.Fatalf("BudgetMax = %d, want 45000", lead.BudgetMax)
	}
	if lead.VehicleInterest != "X5" {
		t.Fatalf("VehicleInterest = %q, want X5", lead.VehicleInterest)
	}
	if lead.Intent != domain.IntentSales {
		t.Fatalf("Intent = %q, want sales", lead.Intent)
	}

	// A later, weaker inference must not overwrite filled slots.
	UpdateLead(lead, "actually maybe 90 for the m3, I need an oil change too")
	if lead.BudgetMax != 45000 {
		t.Errorf("BudgetMax overwritten to %d", lead.BudgetMax)
	}
	if lead.VehicleInterest != "X5" {
		t.Errorf("VehicleInterest overwritten to %q", lead.VehicleInterest)
	}
	if lead.Intent != domain.IntentSales {
		t.Errorf("Intent overwritten to %q", lead.Intent)
	}
}

func TestUpdateLeadTradeIn(t *testing.T) {
	t.Parallel()

	lead := &domain.Lead{}
	UpdateLead(lead, "thinking about a trade-in")
	if lead.TradeIn == nil || !*lead.TradeIn {
		t.Fatal("expected trade_in=true")
	}
	if lead.Intent != domain.IntentTradeIn {
		t.Errorf("Intent = %q, want trade_in", lead.Intent)
	}

	// "no trade" wins over the bare "trade" substring.
	lead2 := &domain.Lead{}
	UpdateLead(lead2, "no trade in for me")
	if lead2.TradeIn == nil || *lead2.TradeIn {
		t.Fatal("expected trade_in=false")
	}
}

func TestTurnServiceFlow(t *testing.T) {
	t.Parallel()

	lead := &domain.Lead{}
	reply := Turn(lead, "I need an oil change")
	if lead.Intent != domain.IntentService {
		t.Fatalf("Intent = %q, want service", lead.Intent)
	}
	if reply != questionServiceSlot {
		t.Errorf("reply = %q, want scheduling question", reply)
	}
}
