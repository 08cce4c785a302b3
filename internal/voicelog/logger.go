// Package voicelog records voice-bridge tool invocations as NDJSON events.
package voicelog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is one logged voice-bridge event.
type Event struct {
	Timestamp string         `json:"timestamp"`
	Event     string         `json:"event"`
	Body      map[string]any `json:"body,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Config controls the voice event log.
type Config struct {
	Enabled   bool
	Path      string
	QueueSize int
}

// Logger appends events to an NDJSON file from a single writer goroutine.
// Log never blocks the request path: when the queue is full the event is
// dropped with a warning.
type Logger struct {
	cfg    Config
	queue  chan Event
	done   chan struct{}
	closed sync.Once
	log    *slog.Logger
}

// New creates a voice event logger. When disabled, Log is a no-op.
func New(cfg Config, log *slog.Logger) (*Logger, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	l := &Logger{
		cfg:  cfg,
		done: make(chan struct{}),
		log:  log,
	}
	if !cfg.Enabled {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("create voice log dir: %w", err)
	}
	l.queue = make(chan Event, cfg.QueueSize)
	go l.writeLoop()
	return l, nil
}

// Log enqueues an event with the current timestamp.
func (l *Logger) Log(name string, body map[string]any) {
	l.LogError(name, body, nil)
}

// LogError enqueues an event carrying an error string.
func (l *Logger) LogError(name string, body map[string]any, err error) {
	if !l.cfg.Enabled {
		return
	}
	event := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Event:     name,
		Body:      body,
	}
	if err != nil {
		event.Error = err.Error()
	}

	select {
	case l.queue <- event:
	default:
		l.log.Warn("voice log queue full, dropping event", "event", name)
	}
}

// Close stops the writer after draining queued events.
func (l *Logger) Close() error {
	if !l.cfg.Enabled {
		return nil
	}
	l.closed.Do(func() {
		close(l.queue)
		<-l.done
	})
	return nil
}

func (l *Logger) writeLoop() {
	defer close(l.done)
	for event := range l.queue {
		if err := l.append(event); err != nil {
			l.log.Warn("failed to write voice log event", "event", event.Event, "error", err)
		}
	}
}

func (l *Logger) append(event Event) error {
	f, err := os.OpenFile(l.cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open voice log: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode voice log event: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append voice log event: %w", err)
	}
	return nil
}
