package agent

import (
	"fmt"
	"sync"

	"github.com/dealsmart/concierge/internal/crm"
	"github.com/dealsmart/concierge/internal/domain"
	"github.com/dealsmart/concierge/internal/inventory"
)

const instructionsTemplate = `You are DealSmart AI, a dealership concierge for %s (%s).
Tone: %s.

Goal: Qualify the customer and capture intent, timeline, budget, trade-in status, and vehicle interest.
Rules:
- Ask 1 question at a time.
- Keep qualification to the minimum needed: aim to capture intent + 2-3 key fields, then offer a handoff.
- Do not invent inventory or pricing. Only share availability/pricing if you used inventory_lookup.
- If the customer asks for specifics you cannot verify, offer to connect a human specialist.
- When you have enough details to create a lead, call create_lead.
- Use route_lead once intent is clear and mention that you will connect them to the right team.
Constraints:
- For create_lead.intent use one of: sales, service, trade_in, nurture.
- For create_lead.timeline use one of: asap, 1-3 months, 3-6 months, later.`

// Descriptor is a compiled, immutable agent for one dealer: system
// instructions templated from the config plus the bound toolset.
type Descriptor struct {
	Name         string
	Instructions string
	Config       *domain.DealerConfig
	Tools        *Toolset

	fingerprint string
}

// Fingerprint returns the hash of the config this descriptor was built from.
func (d *Descriptor) Fingerprint() string { return d.fingerprint }

// BuildAgent compiles a dealer config into an agent descriptor.
func BuildAgent(cfg *domain.DealerConfig, inv *inventory.Store, crmFactory *crm.Factory) (*Descriptor, error) {
	tools, err := NewToolset(cfg, inv, crmFactory)
	if err != nil {
		return nil, fmt.Errorf("build agent for %q: %w", cfg.DealerID, err)
	}
	return &Descriptor{
		Name:         "SMS Qualifier",
		Instructions: fmt.Sprintf(instructionsTemplate, cfg.DealerName, cfg.Brand, cfg.Tone),
		Config:       cfg,
		Tools:        tools,
		fingerprint:  cfg.Fingerprint(),
	}, nil
}

// Cache holds compiled agents per dealer. An entry is valid only while its
// stored fingerprint equals the current config's fingerprint; any config edit
// forces a rebuild on next use. The fingerprint comparison happens under the
// lock, so a half-rebuilt entry is never served.
type Cache struct {
	inventory  *inventory.Store
	crmFactory *crm.Factory

	mu      sync.Mutex
	entries map[string]*Descriptor
}

// NewCache creates an agent cache with the shared tool dependencies.
func NewCache(inv *inventory.Store, crmFactory *crm.Factory) *Cache {
	return &Cache{
		inventory:  inv,
		crmFactory: crmFactory,
		entries:    make(map[string]*Descriptor),
	}
}

// GetOrBuild returns the cached agent for the config's dealer, rebuilding
// when the dealer is not cached or the config fingerprint changed.
func (c *Cache) GetOrBuild(cfg *domain.DealerConfig) (*Descriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[cfg.DealerID]; ok && entry.fingerprint == cfg.Fingerprint() {
		return entry, nil
	}

	entry, err := BuildAgent(cfg, c.inventory, c.crmFactory)
	if err != nil {
		return nil, err
	}
	c.entries[cfg.DealerID] = entry
	return entry, nil
}

// Evict drops the cached agent for a dealer.
func (c *Cache) Evict(dealerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, dealerID)
}

// Fingerprint returns the cached entry's fingerprint, or "" when not cached.
func (c *Cache) Fingerprint(dealerID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[dealerID]; ok {
		return entry.fingerprint
	}
	return ""
}
