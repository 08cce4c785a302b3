package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

// Runner executes one conversation turn against a reasoning service. A nil
// Runner (or a failing one) triggers the fallback dialogue policy.
type Runner interface {
	Run(ctx context.Context, desc *Descriptor, input string) (*RunResult, error)
}

// maxToolRounds bounds the tool-calling loop per turn.
const maxToolRounds = 8

// GeminiRunner runs turns against the Gemini API with function calling for
// the three concierge tools.
type GeminiRunner struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiRunner creates a runner using the Gemini API backend.
func NewGeminiRunner(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiRunner, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiRunner{client: client, model: model, timeout: timeout}, nil
}

// Run sends the conversation text to the model, executing any tool calls it
// makes until it produces a final reply. Each model call has a bounded
// timeout; a timeout or API error is returned to the caller, which treats it
// as "agent unavailable" for the turn.
func (r *GeminiRunner) Run(ctx context.Context, desc *Descriptor, input string) (*RunResult, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(desc.Instructions, genai.RoleUser),
		Tools:             toolDeclarations(),
	}
	contents := []*genai.Content{
		genai.NewContentFromText(input, genai.RoleUser),
	}

	var invocations []ToolInvocation
	for round := 0; round < maxToolRounds; round++ {
		resp, err := r.generate(ctx, contents, config)
		if err != nil {
			return nil, err
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return &RunResult{Reply: resp.Text(), ToolCalls: invocations}, nil
		}

		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}

		var parts []*genai.Part
		for _, fc := range calls {
			output := r.execute(desc, fc.Name, fc.Args)
			invocations = append(invocations, ToolInvocation{
				Name:   fc.Name,
				Args:   fc.Args,
				Output: output,
			})
			parts = append(parts, genai.NewPartFromFunctionResponse(fc.Name, output))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}
	return nil, errors.New("tool-calling loop exceeded round limit")
}

func (r *GeminiRunner) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.Models.GenerateContent(callCtx, r.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return resp, nil
}

// execute parses and dispatches one function call. An unparseable call is
// reported back to the model as a failure result rather than aborting the
// turn.
func (r *GeminiRunner) execute(desc *Descriptor, name string, args map[string]any) map[string]any {
	call, err := ParseToolCall(name, args)
	if err != nil {
		slog.Warn("rejecting tool call", "tool", name, "error", err)
		return map[string]any{"ok": false, "message": err.Error()}
	}
	return desc.Tools.Dispatch(call)
}

func toolDeclarations() []*genai.Tool {
	return []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				inventoryLookupDeclaration(),
				createLeadDeclaration(),
				routeLeadDeclaration(),
			},
		},
	}
}

func inventoryLookupDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        ToolInventoryLookup,
		Description: "Lookup inventory. Only use this tool to share availability or pricing.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"year":  {Type: genai.TypeInteger, Description: "Model year"},
				"make":  {Type: genai.TypeString, Description: "Vehicle make"},
				"model": {Type: genai.TypeString, Description: "Vehicle model"},
				"trim":  {Type: genai.TypeString, Description: "Trim level"},
			},
		},
	}
}

func createLeadDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        ToolCreateLead,
		Description: "Create or update a lead in the CRM.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"intent":             {Type: genai.TypeString, Description: "One of: sales, service, trade_in, nurture"},
				"timeline":           {Type: genai.TypeString, Description: "One of: asap, 1-3 months, 3-6 months, later"},
				"budget_max":         {Type: genai.TypeInteger, Description: "Maximum budget in dollars"},
				"trade_in":           {Type: genai.TypeBoolean, Description: "Whether the customer has a trade-in"},
				"trade_in_vehicle":   {Type: genai.TypeString},
				"vehicle_interest":   {Type: genai.TypeString},
				"contact_preference": {Type: genai.TypeString, Description: "One of: sms, phone, email"},
				"customer_name":      {Type: genai.TypeString},
				"phone":              {Type: genai.TypeString},
				"email":              {Type: genai.TypeString},
				"notes":              {Type: genai.TypeString},
			},
			Required: []string{"intent"},
		},
	}
}

func routeLeadDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        ToolRouteLead,
		Description: "Return routing queue for intent.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"intent": {Type: genai.TypeString, Description: "Lead intent"},
			},
			Required: []string{"intent"},
		},
	}
}
