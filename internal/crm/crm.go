// Package crm persists qualified leads to a CRM backend.
package crm

import (
	"errors"
	"fmt"

	"github.com/dealsmart/concierge/internal/domain"
)

// ErrUnsupportedProvider is returned for CRM provider names with no adapter.
var ErrUnsupportedProvider = errors.New("unsupported CRM provider")

// Adapter is the interface a CRM backend implements.
type Adapter interface {
	// CreateLead commits a lead with its metadata. The returned ToolResult
	// reports success in-band; an error means the adapter itself failed.
	CreateLead(lead domain.Lead, metadata map[string]string) (domain.ToolResult, error)
}

// Factory builds adapters by provider name.
type Factory struct {
	mock *MockAdapter
}

// NewFactory creates an adapter factory. The mock adapter appends to logPath.
func NewFactory(logPath string) *Factory {
	return &Factory{mock: NewMockAdapter(logPath)}
}

// Adapter returns the adapter for a provider name.
// Placeholder: add adapters for GHL, Salesforce, DealerSocket, etc.
func (f *Factory) Adapter(provider string) (Adapter, error) {
	if provider == "mock" {
		return f.mock, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
}

// Mock returns the mock adapter directly for operator read/clear endpoints.
func (f *Factory) Mock() *MockAdapter {
	return f.mock
}
