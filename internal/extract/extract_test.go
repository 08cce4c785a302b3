package extract

import (
	"testing"

	"github.com/dealsmart/concierge/internal/domain"
)

func TestDetectIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    domain.Intent
	}{
		{"I need an oil change", domain.IntentService},
		{"can I book a service appointment", domain.IntentService},
		{"thinking about a trade-in", domain.IntentTradeIn},
		// Service keywords outrank trade keywords.
		{"trade-in and a repair quote", domain.IntentService},
		{"looking for a new X5", domain.IntentSales},
		{"", domain.IntentSales},
	}
	for _, tt := range tests {
		if got := DetectIntent(tt.message); got != tt.want {
			t.Errorf("DetectIntent(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestExtractBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    int
	}{
		{"looking for something around 45", 45000},
		{"around $60,000", 60000},
		{"my budget is $55k or so", 55000},
		{"I need an oil change", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ExtractBudget(tt.message); got != tt.want {
			t.Errorf("ExtractBudget(%q) = %d, want %d", tt.message, got, tt.want)
		}
	}
}

func TestExtractVehicle(t *testing.T) {
	t.Parallel()

	if got := ExtractVehicle("Is the x5 available?"); got != "X5" {
		t.Errorf("ExtractVehicle = %q, want X5", got)
	}
	if got := ExtractVehicle("interested in a 3 series lease"); got != "3 SERIES" {
		t.Errorf("ExtractVehicle = %q, want 3 SERIES", got)
	}
	if got := ExtractVehicle("just browsing"); got != "" {
		t.Errorf("ExtractVehicle = %q, want empty", got)
	}
}

func TestNormalizeIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.Intent
	}{
		{"Service Department", domain.IntentService},
		{"trade in my car", domain.IntentTradeIn},
		{"sales", domain.IntentSales},
		// Unrecognized values default to sales, never fail.
		{"banana", domain.IntentSales},
		{"", domain.IntentSales},
	}
	for _, tt := range tests {
		if got := NormalizeIntent(tt.raw); got != tt.want {
			t.Errorf("NormalizeIntent(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeTimeline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.Timeline
	}{
		{"ASAP please", domain.TimelineASAP},
		{"sometime next week", domain.TimelineASAP},
		{"in a few months", domain.TimelineSoon},
		{"next quarter", domain.TimelineMedium},
		{"not sure yet", domain.TimelineLater},
		// Never guesses on unmatched input.
		{"whenever the stars align", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTimeline(tt.raw); got != tt.want {
			t.Errorf("NormalizeTimeline(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestLeadHotness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		timeline domain.Timeline
		budget   int
		want     domain.LeadType
	}{
		{"asap beats low budget", domain.TimelineASAP, 10000, domain.LeadUrgent},
		{"asap beats no budget", domain.TimelineASAP, 0, domain.LeadUrgent},
		{"near-term is medium", domain.TimelineSoon, 0, domain.LeadMedium},
		{"mid-term is medium", domain.TimelineMedium, 0, domain.LeadMedium},
		{"high budget without timeline is medium", "", 75000, domain.LeadMedium},
		{"later with low budget is cold", domain.TimelineLater, 10000, domain.LeadCold},
		{"nothing is cold", "", 0, domain.LeadCold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeadHotness(tt.timeline, tt.budget); got != tt.want {
				t.Errorf("LeadHotness(%q, %d) = %q, want %q", tt.timeline, tt.budget, got, tt.want)
			}
		})
	}
}
