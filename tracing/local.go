package tracing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalTracer implements the Tracer interface for local JSON file storage.
// Events are buffered in memory and written as one session file on flush.
type LocalTracer struct {
	config  TracingConfig
	session SessionInfo

	mu         sync.Mutex
	buffer     []Event
	flushCount int
	closed     bool
}

// NewLocalTracer creates a new local file tracer with the given configuration
func NewLocalTracer(config TracingConfig, version string) (*LocalTracer, error) {
	dir, err := expandPath(config.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %s: %w", config.LocalDir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create traces directory %s: %w", dir, err)
	}
	config.LocalDir = dir

	if config.MaxBufferSize <= 0 {
		config.MaxBufferSize = DefaultConfig().MaxBufferSize
	}

	session := SessionInfo{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		UserAgent: fmt.Sprintf("junit-reporter-cli/%s", version),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Version:   version,
	}

	return &LocalTracer{
		config:  config,
		session: session,
		buffer:  make([]Event, 0, config.MaxBufferSize),
	}, nil
}

// SessionID returns the identifier of the current session
func (l *LocalTracer) SessionID() string {
	return l.session.ID
}

// TrackParse records the outcome of one report extraction
func (l *LocalTracer) TrackParse(event ParseEvent) error {
	return l.track(&event)
}

// TrackRender records which rendering mode was invoked
func (l *LocalTracer) TrackRender(event RenderEvent) error {
	return l.track(&event)
}

// TrackError records errors and diagnostic information
func (l *LocalTracer) TrackError(event ErrorEvent) error {
	return l.track(&event)
}

func (l *LocalTracer) track(event Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("tracer is closed")
	}

	l.buffer = append(l.buffer, event)
	if len(l.buffer) >= l.config.MaxBufferSize {
		return l.flushLocked()
	}
	return nil
}

// Flush ensures all pending events are persisted
func (l *LocalTracer) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flushLocked()
}

// flushLocked writes the buffered events as one numbered batch file and
// clears the buffer, so a long session never re-serializes events it has
// already persisted. The caller must hold the mutex.
func (l *LocalTracer) flushLocked() error {
	if len(l.buffer) == 0 {
		return nil
	}

	sessionCopy := l.session
	if sessionCopy.EndTime.IsZero() {
		sessionCopy.EndTime = time.Now()
	}

	batch := EventBatch{
		Session: sessionCopy,
		Events:  make([]Event, len(l.buffer)),
	}
	copy(batch.Events, l.buffer)

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	path := filepath.Join(l.config.LocalDir, fmt.Sprintf("session_%s_%d.json", l.session.ID, l.flushCount))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trace file: %w", err)
	}

	l.flushCount++
	l.buffer = l.buffer[:0]
	return nil
}

// Close gracefully shuts down the tracer, persisting any buffered events
func (l *LocalTracer) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.session.EndTime = time.Now()
	err := l.flushLocked()
	l.closed = true
	return err
}

// expandPath resolves a leading ~ to the user's home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
