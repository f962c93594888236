// Package tracing provides local diagnostic tracking for report runs:
// parse performance, render modes and errors, written as JSON session files.
package tracing

import "time"

// Tracer defines the contract for tracking report-run events. Implementations
// must be safe for concurrent use.
type Tracer interface {
	// TrackParse records the outcome of one report extraction
	TrackParse(event ParseEvent) error

	// TrackRender records which rendering mode was invoked
	TrackRender(event RenderEvent) error

	// TrackError records errors and diagnostic information
	TrackError(event ErrorEvent) error

	// SessionID returns the identifier of the current session
	SessionID() string

	// Flush ensures all pending events are persisted
	Flush() error

	// Close gracefully shuts down the tracer and performs cleanup
	Close() error
}

// SessionInfo contains metadata about the current run
type SessionInfo struct {
	ID        string    `json:"session_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`
	UserAgent string    `json:"user_agent"`
	Platform  string    `json:"platform"`
	Version   string    `json:"version"`
}

// EventBatch represents a session's recorded events for persistence
type EventBatch struct {
	Session SessionInfo `json:"session"`
	Events  []Event     `json:"events"`
}

// TracingConfig holds configuration for the tracing system
type TracingConfig struct {
	Enabled       bool   `json:"enabled"`
	LocalDir      string `json:"local_dir"`
	MaxBufferSize int    `json:"max_buffer_size"`
}

// DefaultConfig returns a sensible default configuration. Tracing is opt-in.
func DefaultConfig() TracingConfig {
	return TracingConfig{
		Enabled:       false,
		LocalDir:      "~/.junitreporter/traces",
		MaxBufferSize: 1000,
	}
}

// NoOpTracer provides a null object implementation for when tracing is
// disabled, eliminating nil checks in client code.
type NoOpTracer struct{}

func (n *NoOpTracer) TrackParse(event ParseEvent) error   { return nil }
func (n *NoOpTracer) SessionID() string                   { return "" }
func (n *NoOpTracer) TrackRender(event RenderEvent) error { return nil }
func (n *NoOpTracer) TrackError(event ErrorEvent) error   { return nil }
func (n *NoOpTracer) Flush() error                        { return nil }
func (n *NoOpTracer) Close() error                        { return nil }

// NewNoOpTracer creates a tracer that discards all events
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

// NewTracer creates the tracer matching the configuration: a local file
// tracer when enabled, a no-op otherwise.
func NewTracer(config TracingConfig, version string) (Tracer, error) {
	if !config.Enabled {
		return NewNoOpTracer(), nil
	}
	return NewLocalTracer(config, version)
}
