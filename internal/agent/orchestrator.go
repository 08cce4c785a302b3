package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dealsmart/concierge/internal/dealer"
	"github.com/dealsmart/concierge/internal/dialogue"
	"github.com/dealsmart/concierge/internal/domain"
	"github.com/dealsmart/concierge/internal/extract"
	"github.com/dealsmart/concierge/internal/session"
)

// historyWindow is how many prior turns feed the reasoning-service context.
const historyWindow = 12

// fallbackNote marks a turn that ran on the local dialogue policy.
const fallbackNote = "Fallback mode (reasoning service unavailable)."

// TurnRequest is one inbound customer message.
type TurnRequest struct {
	DealerID  string `json:"dealer_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`

	// State lets the caller carry session state between calls instead of
	// relying on the server-side store. When set it wins over stored state.
	State *session.State `json:"state,omitempty"`
}

// TurnResult is the reply plus the structured trace. The shape is identical
// for the agent path and the fallback path.
type TurnResult struct {
	Reply     string           `json:"reply"`
	Lead      *domain.Lead     `json:"lead,omitempty"`
	ToolCalls []ToolInvocation `json:"tool_calls,omitempty"`
	Note      string           `json:"note,omitempty"`
	State     *session.State   `json:"state,omitempty"`
}

// Orchestrator runs conversation turns, choosing between the reasoning
// service and the fallback dialogue policy per turn.
type Orchestrator struct {
	dealers *dealer.Provider
	cache   *Cache
	runner  Runner // nil when no reasoning service is configured
	store   session.Store
}

// NewOrchestrator wires a turn orchestrator. runner may be nil, in which case
// every turn uses the fallback policy.
func NewOrchestrator(dealers *dealer.Provider, cache *Cache, runner Runner, store session.Store) *Orchestrator {
	return &Orchestrator{dealers: dealers, cache: cache, runner: runner, store: store}
}

// Turn processes one customer message end to end: load config and session
// state, run the agent or fallback path, merge results back into the session,
// persist, and return the reply with its trace.
//
// Only configuration errors (unknown dealer, unsupported CRM provider) fail
// the turn; a reasoning-service error downgrades to the fallback path for
// this turn only.
func (o *Orchestrator) Turn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	cfg, err := o.dealers.Load(req.DealerID)
	if err != nil {
		return nil, err
	}

	state := req.State
	if state == nil {
		stored, err := o.store.Get(ctx, req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("load session %q: %w", req.SessionID, err)
		}
		state = stored
	}
	if state == nil {
		state = &session.State{}
	}

	result, err := o.runTurn(ctx, cfg, state, req.Message)
	if err != nil {
		return nil, err
	}

	state.History = append(state.History,
		session.Message{Role: "user", Content: req.Message},
		session.Message{Role: "assistant", Content: result.Reply},
	)
	if err := o.store.Put(ctx, req.SessionID, state); err != nil {
		// The caller still gets the state in the response; losing the
		// server-side copy is not worth failing the turn.
		slog.Warn("failed to persist session state", "session_id", req.SessionID, "error", err)
	}

	result.Lead = &state.Lead
	result.State = state
	return result, nil
}

func (o *Orchestrator) runTurn(ctx context.Context, cfg *domain.DealerConfig, state *session.State, message string) (*TurnResult, error) {
	if o.runner == nil {
		reply := dialogue.Turn(&state.Lead, message)
		return &TurnResult{Reply: reply, Note: fallbackNote}, nil
	}

	// An unsupported CRM provider is a configuration error and surfaces to
	// the caller, unlike reasoning-service failures below.
	desc, err := o.cache.GetOrBuild(cfg)
	if err != nil {
		return nil, err
	}

	input := contextWindow(state.History, message)
	run, err := o.runner.Run(ctx, desc, input)
	if err != nil {
		slog.Warn("reasoning service unavailable, falling back", "dealer_id", cfg.DealerID, "error", err)
		reply := dialogue.Turn(&state.Lead, message)
		return &TurnResult{Reply: reply, Note: fallbackNote}, nil
	}

	mergeToolCalls(&state.Lead, run.ToolCalls)
	return &TurnResult{Reply: run.Reply, ToolCalls: run.ToolCalls}, nil
}

// mergeToolCalls folds create_lead invocations into the session lead so both
// execution paths leave consistent state. Fill stays monotonic: agent-captured
// fields never overwrite slots already set in the session.
func mergeToolCalls(lead *domain.Lead, calls []ToolInvocation) {
	for _, inv := range calls {
		if inv.Name != ToolCreateLead {
			continue
		}
		call, err := ParseToolCall(inv.Name, inv.Args)
		if err != nil || call.CreateLead == nil {
			continue
		}
		captured := BuildLead(*call.CreateLead)
		lead.SetIntent(captured.Intent)
		lead.SetTimeline(captured.Timeline)
		lead.SetBudgetMax(captured.BudgetMax)
		if captured.TradeIn != nil {
			lead.SetTradeIn(*captured.TradeIn)
		}
		lead.SetVehicleInterest(captured.VehicleInterest)
		lead.SetContactPreference(captured.ContactPreference)
		if lead.CustomerName == "" {
			lead.CustomerName = captured.CustomerName
		}
		if lead.Phone == "" {
			lead.Phone = captured.Phone
		}
		if lead.Email == "" {
			lead.Email = captured.Email
		}
		// Hotness derives from the merged slots, not from any single call's
		// arguments. A later call with weaker arguments must not downgrade it.
		lead.LeadType = extract.LeadHotness(lead.Timeline, lead.BudgetMax)
	}
}

// contextWindow renders the last turns plus the new message as the text
// input for the reasoning service.
func contextWindow(history []session.Message, message string) string {
	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	var b strings.Builder
	for _, m := range recent {
		b.WriteString(strings.ToUpper(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("USER: ")
	b.WriteString(message)
	return b.String()
}
