// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port            string
	AllowedOrigins  []string
	DBPath          string
	DealerConfigDir string
	DefaultDealerID string
	InventoryPath   string
	CRMLogPath      string

	// GeminiAPIKey enables the reasoning-service path. When empty every
	// turn runs on the fallback dialogue policy.
	GeminiAPIKey string
	GeminiModel  string
	AgentTimeout time.Duration

	VoiceLog VoiceLogConfig
}

// VoiceLogConfig controls NDJSON logging of voice-bridge tool calls.
type VoiceLogConfig struct {
	Enabled   bool
	Path      string
	QueueSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	queueSize := getEnvInt("VOICE_LOG_QUEUE_SIZE", 1000)
	if queueSize <= 0 {
		queueSize = 1000
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		DBPath:          getEnv("DB_PATH", "./data/concierge.db"),
		DealerConfigDir: getEnv("DEALER_CONFIG_DIR", "./data/dealer_configs"),
		DefaultDealerID: getEnv("DEFAULT_DEALER_ID", "demo_bmw"),
		InventoryPath:   getEnv("INVENTORY_PATH", "./data/mock_inventory.json"),
		CRMLogPath:      getEnv("CRM_LOG_PATH", "./data/mock_crm.jsonl"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AgentTimeout:    time.Duration(getEnvInt("AGENT_TIMEOUT_SECONDS", 30)) * time.Second,
		VoiceLog: VoiceLogConfig{
			Enabled:   getEnvBool("VOICE_LOG_ENABLED", true),
			Path:      getEnv("VOICE_LOG_PATH", "./data/voice_logs.jsonl"),
			QueueSize: queueSize,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DealerConfigDir == "" {
		return fmt.Errorf("DEALER_CONFIG_DIR cannot be empty")
	}
	if c.DefaultDealerID == "" {
		return fmt.Errorf("DEFAULT_DEALER_ID cannot be empty")
	}
	if c.InventoryPath == "" {
		return fmt.Errorf("INVENTORY_PATH cannot be empty")
	}
	if c.CRMLogPath == "" {
		return fmt.Errorf("CRM_LOG_PATH cannot be empty")
	}
	if c.AgentTimeout <= 0 {
		return fmt.Errorf("AGENT_TIMEOUT_SECONDS must be > 0")
	}
	if c.VoiceLog.Enabled && c.VoiceLog.Path == "" {
		return fmt.Errorf("VOICE_LOG_PATH cannot be empty")
	}
	return nil
}

// AgentEnabled reports whether the reasoning-service path is configured.
func (c *Config) AgentEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
