// Package dialogue implements the deterministic fallback qualification policy.
//
// It is a pure state machine over the lead: one inbound message updates the
// lead (monotonic fill), and the next question is a function of lead state
// alone. No reasoning service is involved.
package dialogue

import (
	"strings"

	"github.com/dealsmart/concierge/internal/domain"
	"github.com/dealsmart/concierge/internal/extract"
)

// Canned prompts for each unfilled slot, in the order the policy asks them.
const (
	questionServiceSlot    = "What day and time works best for service?"
	questionServiceConfirm = "Got it. Would you like a call or text confirmation?"
	questionTimeline       = "What timeline are you considering?"
	questionTradeIn        = "Do you have a trade-in?"
	questionBudget         = "Do you have a budget range in mind?"
	questionContactMethod  = "Would you prefer a call, text, or email?"
	questionContactNumber  = "Thanks! What's the best number to reach you?"
)

// UpdateLead folds one inbound message into the lead. Fields fill first-write-
// wins: extraction never overwrites a slot that is already set.
func UpdateLead(lead *domain.Lead, message string) {
	lead.SetIntent(extract.DetectIntent(message))
	lead.SetBudgetMax(extract.ExtractBudget(message))
	lead.SetVehicleInterest(extract.ExtractVehicle(message))
	lead.SetTimeline(extract.NormalizeTimeline(message))
	lead.SetContactPreference(extract.ExtractContactPreference(message))

	lower := strings.ToLower(message)
	if strings.Contains(lower, "no trade") {
		lead.SetTradeIn(false)
	} else if strings.Contains(lower, "trade") {
		lead.SetTradeIn(true)
	}
}

// NextQuestion picks the next qualifying question from lead state. It is a
// pure function: the same lead always yields the same question. Once every
// slot is asked or filled it repeats the final contact prompt.
func NextQuestion(lead *domain.Lead) string {
	if lead.Intent == domain.IntentService {
		if lead.Timeline == "" {
			return questionServiceSlot
		}
		return questionServiceConfirm
	}

	if lead.Timeline == "" {
		return questionTimeline
	}
	if lead.TradeIn == nil {
		return questionTradeIn
	}
	if lead.BudgetMax == 0 {
		return questionBudget
	}
	if lead.ContactPreference == "" {
		return questionContactMethod
	}
	return questionContactNumber
}

// Turn runs one fallback turn: update the lead from the message, then compute
// the reply. The lead is mutated in place.
func Turn(lead *domain.Lead, message string) string {
	UpdateLead(lead, message)
	return NextQuestion(lead)
}
