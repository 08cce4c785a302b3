package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// DealerConfig is the per-tenant configuration loaded from the config store.
// It is immutable within a turn; a change is detected by fingerprint, not by
// object identity.
type DealerConfig struct {
	DealerID            string            `json:"dealer_id"`
	DealerName          string            `json:"dealer_name"`
	Brand               string            `json:"brand"`
	LogoURL             string            `json:"logo_url,omitempty"`
	Timezone            string            `json:"timezone"`
	Tone                string            `json:"tone"`
	QualifyingQuestions map[string]any    `json:"qualifying_questions"`
	Routing             map[string]string `json:"routing"`
	CRM                 map[string]string `json:"crm"`
	Compliance          map[string]any    `json:"compliance"`
}

// CRMProvider returns the configured CRM adapter name, defaulting to mock.
func (c *DealerConfig) CRMProvider() string {
	if p, ok := c.CRM["provider"]; ok && p != "" {
		return p
	}
	return "mock"
}

// LeadSource returns the CRM lead source label.
func (c *DealerConfig) LeadSource() string {
	if s, ok := c.CRM["lead_source"]; ok && s != "" {
		return s
	}
	return "AI Concierge"
}

// Fingerprint returns a content hash of the config. Agent cache entries are
// valid only while their stored fingerprint equals the current one.
func (c *DealerConfig) Fingerprint() string {
	// Map keys marshal in sorted order, so the encoding is canonical.
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
