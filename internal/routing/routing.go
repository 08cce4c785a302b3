// Package routing maps lead intent to a dealer's sales queues.
package routing

import "github.com/dealsmart/concierge/internal/domain"

// Route returns the queue name for an intent from the dealer's routing
// config. Sales and service override by exact match; everything else falls to
// the nurture queue. A missing key yields "" rather than an error.
func Route(intent domain.Intent, routes map[string]string) string {
	queue := routes["nurture_queue"]
	switch intent {
	case domain.IntentSales:
		queue = routes["sales_queue"]
	case domain.IntentService:
		queue = routes["service_queue"]
	}
	return queue
}
