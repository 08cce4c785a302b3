package voicelog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerWritesNDJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "voice_logs.jsonl")
	logger, err := New(Config{Enabled: true, Path: path, QueueSize: 16}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Log("tool_inventory_lookup", map[string]any{"model": "X5"})
	logger.Log("tool_route_lead", map[string]any{"intent": "sales"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	line := waitForLogLine(t, path)
	var got Event
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("failed to unmarshal log line: %v", err)
	}
	if got.Event != "tool_route_lead" {
		t.Errorf("Event = %q", got.Event)
	}
	if got.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestDisabledLoggerIsNoop(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "voice_logs.jsonl")
	logger, err := New(Config{Enabled: false, Path: path}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Log("tool_create_lead", nil)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("disabled logger must not create the log file")
	}
}

func waitForLogLine(t *testing.T, path string) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			if len(lines) > 1 {
				return lines[len(lines)-1]
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for log file %s", path)
	return ""
}
