package crm

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/dealsmart/concierge/internal/domain"
)

// maxRecordSize caps one NDJSON line when reading the log back.
const maxRecordSize = 4 * 1024 * 1024

// Record is one append-only CRM log entry.
type Record struct {
	Lead      domain.Lead       `json:"lead"`
	Metadata  map[string]string `json:"metadata"`
	Timestamp string            `json:"timestamp"`
}

// MockAdapter writes leads to an NDJSON log file. The log is append-only; the
// only mutation besides append is the operator-facing Clear.
//
// Dedup window is exactly one record deep: a submission identical (by lead and
// metadata) to the immediately preceding record is reported as delivered but
// not re-appended. A duplicate separated by any other record is appended
// again. The mutex makes the read-then-append atomic within this process only;
// callers must not depend on exactly-once semantics across processes.
type MockAdapter struct {
	path string
	mu   sync.Mutex
}

// NewMockAdapter creates a mock CRM writing to path.
func NewMockAdapter(path string) *MockAdapter {
	return &MockAdapter{path: path}
}

// CreateLead appends the lead unless it duplicates the last record.
func (m *MockAdapter) CreateLead(lead domain.Lead, metadata map[string]string) (domain.ToolResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := Record{
		Lead:      lead,
		Metadata:  metadata,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	payload := recordData(record)

	last, err := m.lastRecord()
	if err != nil {
		return domain.ToolResult{}, err
	}
	if last != nil && reflect.DeepEqual(last.Lead, record.Lead) && reflect.DeepEqual(last.Metadata, record.Metadata) {
		return domain.ToolResult{OK: true, Message: "Duplicate lead ignored", Data: payload}, nil
	}

	if err := m.append(record); err != nil {
		return domain.ToolResult{}, err
	}
	return domain.ToolResult{OK: true, Message: "Lead created in Mock CRM", Data: payload}, nil
}

// ReadLeads returns up to limit trailing records, oldest first.
func (m *MockAdapter) ReadLeads(limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.readAll()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}

// Clear truncates the CRM log. Operator-only escape hatch.
func (m *MockAdapter) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := os.Truncate(m.path, 0)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func (m *MockAdapter) lastRecord() (*Record, error) {
	records, err := m.readAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[len(records)-1], nil
}

func (m *MockAdapter) readAll() ([]Record, error) {
	f, err := os.Open(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open CRM log: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	// Long notes can push a record past the default 64KB token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parse CRM log line: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan CRM log: %w", err)
	}
	return records, nil
}

func (m *MockAdapter) append(record Record) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("create CRM log dir: %w", err)
	}
	f, err := os.OpenFile(m.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open CRM log for append: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode CRM record: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append CRM record: %w", err)
	}
	return nil
}

func recordData(record Record) map[string]any {
	return map[string]any{
		"lead":      record.Lead,
		"metadata":  record.Metadata,
		"timestamp": record.Timestamp,
	}
}
