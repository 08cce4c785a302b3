package agent

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dealsmart/concierge/internal/crm"
	"github.com/dealsmart/concierge/internal/domain"
	"github.com/dealsmart/concierge/internal/inventory"
)

func testDealerConfig() *domain.DealerConfig {
	return &domain.DealerConfig{
		DealerID:   "demo_bmw",
		DealerName: "Demo BMW",
		Brand:      "BMW",
		Tone:       "professional, warm",
		Routing: map[string]string{
			"sales_queue":   "sales-team",
			"service_queue": "service-desk",
			"nurture_queue": "nurture-drip",
		},
		CRM: map[string]string{"provider": "mock", "lead_source": "AI Concierge"},
	}
}

func testCache(t *testing.T) *Cache {
	t.Helper()
	dir := t.TempDir()
	inv := inventory.NewStore(filepath.Join(dir, "inventory.json"))
	factory := crm.NewFactory(filepath.Join(dir, "mock_crm.jsonl"))
	return NewCache(inv, factory)
}

func TestCacheReusesEntryForUnchangedConfig(t *testing.T) {
	t.Parallel()

	cache := testCache(t)
	cfg := testDealerConfig()

	first, err := cache.GetOrBuild(cfg)
	if err != nil {
		t.Fatalf("GetOrBuild failed: %v", err)
	}
	second, err := cache.GetOrBuild(cfg)
	if err != nil {
		t.Fatalf("second GetOrBuild failed: %v", err)
	}
	if first != second {
		t.Error("expected the cached descriptor to be reused")
	}
}

func TestCacheRebuildsOnConfigChange(t *testing.T) {
	t.Parallel()

	cache := testCache(t)
	cfg := testDealerConfig()

	first, err := cache.GetOrBuild(cfg)
	if err != nil {
		t.Fatalf("GetOrBuild failed: %v", err)
	}

	edited := *cfg
	edited.Tone = "breezy, casual"
	second, err := cache.GetOrBuild(&edited)
	if err != nil {
		t.Fatalf("GetOrBuild after edit failed: %v", err)
	}

	if first == second {
		t.Fatal("expected a rebuild after the config edit")
	}
	if first.Fingerprint() == second.Fingerprint() {
		t.Error("fingerprints should differ after a config edit")
	}
	if !strings.Contains(second.Instructions, "breezy, casual") {
		t.Error("rebuilt agent does not carry the new tone")
	}
	if cache.Fingerprint(cfg.DealerID) != edited.Fingerprint() {
		t.Error("cache should hold the new fingerprint")
	}
}

func TestCacheEvict(t *testing.T) {
	t.Parallel()

	cache := testCache(t)
	cfg := testDealerConfig()
	if _, err := cache.GetOrBuild(cfg); err != nil {
		t.Fatalf("GetOrBuild failed: %v", err)
	}

	cache.Evict(cfg.DealerID)
	if got := cache.Fingerprint(cfg.DealerID); got != "" {
		t.Errorf("Fingerprint after evict = %q, want empty", got)
	}
}

func TestBuildAgentUnsupportedCRM(t *testing.T) {
	t.Parallel()

	cache := testCache(t)
	cfg := testDealerConfig()
	cfg.CRM["provider"] = "dealersocket"
	if _, err := cache.GetOrBuild(cfg); err == nil {
		t.Fatal("expected error for unsupported CRM provider")
	}
}
