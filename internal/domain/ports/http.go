package ports

import (
	"context"
	"time"
)

// HTTPServer defines the interface for the HTTP server
type HTTPServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	NotifyClients(event UpdateEvent) error
	IsRunning() bool
}

// ClientNotifier pushes events to connected viewers
type ClientNotifier interface {
	NotifyClients(event UpdateEvent) error
}

// UpdateEvent represents an event sent to WebSocket clients
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// UpdateEventType constants
const (
	EventTypeReload = "reload"
	EventTypeError  = "error"
)
