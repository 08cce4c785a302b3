// Package inventory provides lot inventory lookup backed by a JSON file.
package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dealsmart/concierge/internal/domain"
)

// Store reads vehicle inventory from a JSON file. The file is reread on each
// search so edits show up without a restart; the demo inventory is small
// enough that this is fine.
type Store struct {
	path string
}

// NewStore creates a file-backed inventory store.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns all inventory items. A missing file is an empty lot, not an
// error.
func (s *Store) Load() ([]domain.InventoryItem, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	var items []domain.InventoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}
	return items, nil
}

// Search filters inventory by the query. Set fields match exactly
// (case-insensitive for strings); unset fields are wildcards. All matches are
// returned, no pagination.
func (s *Store) Search(query domain.InventoryQuery) ([]domain.InventoryItem, error) {
	items, err := s.Load()
	if err != nil {
		return nil, err
	}

	var results []domain.InventoryItem
	for _, item := range items {
		if matches(item, query) {
			results = append(results, item)
		}
	}
	return results, nil
}

func matches(item domain.InventoryItem, q domain.InventoryQuery) bool {
	if q.Year != 0 && item.Year != q.Year {
		return false
	}
	if q.Make != "" && !strings.EqualFold(item.Make, q.Make) {
		return false
	}
	if q.Model != "" && !strings.EqualFold(item.Model, q.Model) {
		return false
	}
	if q.Trim != "" && !strings.EqualFold(item.Trim, q.Trim) {
		return false
	}
	return true
}
