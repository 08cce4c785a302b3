// Package agent bridges conversation turns to a tool-calling reasoning
// service, with a deterministic local fallback.
package agent

import (
	"encoding/json"
	"fmt"
)

// Tool names the reasoning service may invoke. The set is closed: anything
// else is rejected at parse time.
const (
	ToolInventoryLookup = "inventory_lookup"
	ToolCreateLead      = "create_lead"
	ToolRouteLead       = "route_lead"
)

// InventoryLookupArgs filters lot inventory. Unset fields are wildcards.
type InventoryLookupArgs struct {
	Year  int    `json:"year,omitempty"`
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
	Trim  string `json:"trim,omitempty"`
}

// CreateLeadArgs carries the qualification fields the reasoning service
// captured. Intent is required; an unrecognized value is normalized to sales
// rather than failing.
type CreateLeadArgs struct {
	Intent            string `json:"intent"`
	Timeline          string `json:"timeline,omitempty"`
	BudgetMax         int    `json:"budget_max,omitempty"`
	TradeIn           *bool  `json:"trade_in,omitempty"`
	TradeInVehicle    string `json:"trade_in_vehicle,omitempty"`
	VehicleInterest   string `json:"vehicle_interest,omitempty"`
	ContactPreference string `json:"contact_preference,omitempty"`
	CustomerName      string `json:"customer_name,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Email             string `json:"email,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// RouteLeadArgs asks for the dealer queue handling an intent.
type RouteLeadArgs struct {
	Intent string `json:"intent"`
}

// ToolCall is a closed tagged union over the three tool variants: exactly one
// field is non-nil. Dispatch switches on the set variant, no reflection.
type ToolCall struct {
	InventoryLookup *InventoryLookupArgs
	CreateLead      *CreateLeadArgs
	RouteLead       *RouteLeadArgs
}

// Name returns the wire name of the call's variant.
func (c ToolCall) Name() string {
	switch {
	case c.InventoryLookup != nil:
		return ToolInventoryLookup
	case c.CreateLead != nil:
		return ToolCreateLead
	case c.RouteLead != nil:
		return ToolRouteLead
	}
	return ""
}

// ParseToolCall decodes a named tool invocation with loosely-typed arguments
// (as delivered by the reasoning service) into a typed variant.
func ParseToolCall(name string, args map[string]any) (ToolCall, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return ToolCall{}, fmt.Errorf("encode tool args: %w", err)
	}

	switch name {
	case ToolInventoryLookup:
		var a InventoryLookupArgs
		if err := json.Unmarshal(raw, &a); err != nil {
			return ToolCall{}, fmt.Errorf("decode %s args: %w", name, err)
		}
		return ToolCall{InventoryLookup: &a}, nil
	case ToolCreateLead:
		var a CreateLeadArgs
		if err := json.Unmarshal(raw, &a); err != nil {
			return ToolCall{}, fmt.Errorf("decode %s args: %w", name, err)
		}
		return ToolCall{CreateLead: &a}, nil
	case ToolRouteLead:
		var a RouteLeadArgs
		if err := json.Unmarshal(raw, &a); err != nil {
			return ToolCall{}, fmt.Errorf("decode %s args: %w", name, err)
		}
		return ToolCall{RouteLead: &a}, nil
	}
	return ToolCall{}, fmt.Errorf("unknown tool %q", name)
}

// ToolInvocation records one resolved tool call for the turn trace.
type ToolInvocation struct {
	Name   string         `json:"name"`
	Args   map[string]any `json:"args,omitempty"`
	Output map[string]any `json:"output,omitempty"`
}

// RunResult is what one reasoning-service run produces: the final reply text
// and the ordered tool invocations it made along the way.
type RunResult struct {
	Reply     string
	ToolCalls []ToolInvocation
}
