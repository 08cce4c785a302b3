package routing

import (
	"testing"

	"github.com/dealsmart/concierge/internal/domain"
)

func TestRoute(t *testing.T) {
	t.Parallel()

	routes := map[string]string{
		"sales_queue":   "sales-team",
		"service_queue": "service-desk",
		"nurture_queue": "nurture-drip",
	}

	tests := []struct {
		intent domain.Intent
		want   string
	}{
		{domain.IntentSales, "sales-team"},
		{domain.IntentService, "service-desk"},
		{domain.IntentTradeIn, "nurture-drip"},
		{domain.IntentNurture, "nurture-drip"},
		{"unknown", "nurture-drip"},
	}
	for _, tt := range tests {
		if got := Route(tt.intent, routes); got != tt.want {
			t.Errorf("Route(%q) = %q, want %q", tt.intent, got, tt.want)
		}
	}
}

func TestRouteMissingQueueIsEmptyNotError(t *testing.T) {
	t.Parallel()

	// Only a sales queue configured: service intent must yield "" and not blow up.
	routes := map[string]string{"sales_queue": "sales-team"}
	if got := Route(domain.IntentService, routes); got != "" {
		t.Errorf("Route(service) = %q, want empty", got)
	}
	if got := Route(domain.IntentSales, nil); got != "" {
		t.Errorf("Route with nil config = %q, want empty", got)
	}
}
