// Package domain contains core domain types for the concierge application.
package domain

// Intent classifies why a customer reached out.
type Intent string

const (
	IntentSales   Intent = "sales"
	IntentService Intent = "service"
	IntentTradeIn Intent = "trade_in"
	IntentNurture Intent = "nurture"
)

// Timeline buckets a customer's purchase horizon. The wire values match the
// CRM export format, so keep the long forms.
type Timeline string

const (
	TimelineASAP   Timeline = "asap"
	TimelineSoon   Timeline = "1-3 months"
	TimelineMedium Timeline = "3-6 months"
	TimelineLater  Timeline = "later"
)

// LeadType grades how hot a lead is for routing priority.
type LeadType string

const (
	LeadUrgent LeadType = "urgent"
	LeadMedium LeadType = "medium"
	LeadCold   LeadType = "cold"
)

// ContactPreference is the customer's preferred follow-up channel.
type ContactPreference string

const (
	ContactSMS   ContactPreference = "sms"
	ContactPhone ContactPreference = "phone"
	ContactEmail ContactPreference = "email"
)

// Lead is the qualification record for one customer conversation.
//
// Fields fill monotonically: once set by extraction they are never overwritten
// by a later inference in the same session. Use the Set* helpers to preserve
// that invariant.
type Lead struct {
	Intent            Intent            `json:"intent,omitempty"`
	Timeline          Timeline          `json:"timeline,omitempty"`
	BudgetMax         int               `json:"budget_max,omitempty"`
	TradeIn           *bool             `json:"trade_in,omitempty"`
	TradeInVehicle    string            `json:"trade_in_vehicle,omitempty"`
	VehicleInterest   string            `json:"vehicle_interest,omitempty"`
	ContactPreference ContactPreference `json:"contact_preference,omitempty"`
	CustomerName      string            `json:"customer_name,omitempty"`
	Phone             string            `json:"phone,omitempty"`
	Email             string            `json:"email,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	LeadType          LeadType          `json:"lead_type,omitempty"`
}

// SetIntent fills intent if it is still unset.
func (l *Lead) SetIntent(v Intent) {
	if l.Intent == "" && v != "" {
		l.Intent = v
	}
}

// SetTimeline fills timeline if it is still unset.
func (l *Lead) SetTimeline(v Timeline) {
	if l.Timeline == "" && v != "" {
		l.Timeline = v
	}
}

// SetBudgetMax fills budget if it is still unset. Zero and negative values are
// rejected.
func (l *Lead) SetBudgetMax(v int) {
	if l.BudgetMax == 0 && v > 0 {
		l.BudgetMax = v
	}
}

// SetTradeIn fills the trade-in tri-state if it is still unknown.
func (l *Lead) SetTradeIn(v bool) {
	if l.TradeIn == nil {
		l.TradeIn = &v
	}
}

// SetVehicleInterest fills vehicle interest if it is still unset.
func (l *Lead) SetVehicleInterest(v string) {
	if l.VehicleInterest == "" && v != "" {
		l.VehicleInterest = v
	}
}

// SetContactPreference fills contact preference if it is still unset.
func (l *Lead) SetContactPreference(v ContactPreference) {
	if l.ContactPreference == "" && v != "" {
		l.ContactPreference = v
	}
}

// ToolResult is the structured outcome of a tool invocation. Failures are
// carried in-band (ok=false) so a conversational turn never dies on a tool
// error.
type ToolResult struct {
	OK      bool           `json:"ok"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
