// Package dealer loads per-tenant dealership configuration.
package dealer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dealsmart/concierge/internal/domain"
)

// ErrNotFound is returned when no config exists for a dealer id.
var ErrNotFound = errors.New("dealer config not found")

// Provider reads dealer configs from a directory of <dealer_id>.json files.
type Provider struct {
	dir string
}

// NewProvider creates a file-backed config provider rooted at dir.
func NewProvider(dir string) *Provider {
	return &Provider{dir: dir}
}

// List returns all known dealer ids, sorted.
func (p *Provider) List() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dealer config dir: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads the config for a dealer id. Returns ErrNotFound for unknown ids.
func (p *Provider) Load(dealerID string) (*domain.DealerConfig, error) {
	// Dealer ids come from request paths; keep them from escaping the dir.
	if dealerID == "" || dealerID != filepath.Base(dealerID) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, dealerID)
	}

	path := filepath.Join(p.dir, dealerID+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, dealerID)
		}
		return nil, fmt.Errorf("read dealer config: %w", err)
	}

	var cfg domain.DealerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse dealer config %q: %w", dealerID, err)
	}
	return &cfg, nil
}
