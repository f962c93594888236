package tracing

import (
	"errors"
	"time"
)

// Event represents the base interface for all trackable events.
type Event interface {
	// EventType returns the type identifier for this event
	EventType() string

	// Timestamp returns when this event occurred
	Timestamp() time.Time

	// Validate ensures the event data is complete and valid
	Validate() error
}

// BaseEvent provides common functionality for all event types.
type BaseEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// EventType returns the type identifier for this event
func (b BaseEvent) EventType() string {
	return b.Type
}

// Timestamp returns when this event occurred
func (b BaseEvent) Timestamp() time.Time {
	return b.CreatedAt
}

// ParseEvent records the outcome of one report extraction
type ParseEvent struct {
	BaseEvent
	ReportFile string `json:"report_file"`
	Groups     int    `json:"groups"`
	Failures   int    `json:"failures"`
	DurationMS int64  `json:"duration_ms"`
}

// NewParseEvent creates a new parse event
func NewParseEvent(sessionID, reportFile string, groups, failures int, duration time.Duration) *ParseEvent {
	return &ParseEvent{
		BaseEvent: BaseEvent{
			Type:      "parse",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		ReportFile: reportFile,
		Groups:     groups,
		Failures:   failures,
		DurationMS: duration.Milliseconds(),
	}
}

// Validate ensures the event data is complete and valid
func (p *ParseEvent) Validate() error {
	if p.ReportFile == "" {
		return errors.New("report file is required")
	}
	if p.Groups < 0 || p.Failures < 0 {
		return errors.New("counts cannot be negative")
	}
	return nil
}

// RenderEvent records which rendering mode was invoked
type RenderEvent struct {
	BaseEvent
	Mode      string `json:"mode"`      // e.g. "summary", "details", "all", "interactive"
	Selection string `json:"selection"` // the index argument, if any
	Groups    int    `json:"groups"`
}

// NewRenderEvent creates a new render event
func NewRenderEvent(sessionID, mode, selection string, groups int) *RenderEvent {
	return &RenderEvent{
		BaseEvent: BaseEvent{
			Type:      "render",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		Mode:      mode,
		Selection: selection,
		Groups:    groups,
	}
}

// Validate ensures the event data is complete and valid
func (r *RenderEvent) Validate() error {
	if r.Mode == "" {
		return errors.New("mode is required")
	}
	return nil
}

// ErrorEvent records errors and diagnostic information
type ErrorEvent struct {
	BaseEvent
	Kind    string `json:"kind"` // e.g. "parse_failure", "index_out_of_range"
	Message string `json:"message"`
}

// NewErrorEvent creates a new error event
func NewErrorEvent(sessionID, kind, message string) *ErrorEvent {
	return &ErrorEvent{
		BaseEvent: BaseEvent{
			Type:      "error",
			CreatedAt: time.Now(),
			SessionID: sessionID,
		},
		Kind:    kind,
		Message: message,
	}
}

// Validate ensures the event data is complete and valid
func (e *ErrorEvent) Validate() error {
	if e.Kind == "" {
		return errors.New("kind is required")
	}
	if e.Message == "" {
		return errors.New("message is required")
	}
	return nil
}
