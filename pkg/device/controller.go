package device

import (
	"context"
	"encoding/json"
)

// Store is the device state store: the durable record of each node's last-known state.
// Every mutation is serialized system-wide; reads always see a complete document.
type Store interface {
	StateWriter

	// Get returns the current full mapping
	Get(ctx context.Context) (Document, error)

	// Create assigns the next sequential slot id to rec, persists it and returns the id
	Create(ctx context.Context, rec *Record) (string, error)

	// Snapshot returns the persisted document bytes as-is
	Snapshot(ctx context.Context) ([]byte, error)
}

// StateWriter is the subset of Store used by the gateway event path.
type StateWriter interface {
	// SetSlotState sets isOn for the record keyed by id
	SetSlotState(ctx context.Context, id string, isOn bool) error

	// SetNodeState sets isOn for the record whose nodeID matches
	SetNodeState(ctx context.Context, nodeID string, isOn bool) error
}

// Commander relays client commands to the gateway.
type Commander interface {
	// Send issues one command for nodeID. It never retries.
	Send(ctx context.Context, nodeID, action string) (*CommandResult, error)

	// Nodes returns the node list reported by the gateway
	Nodes(ctx context.Context) (json.RawMessage, error)
}

// LinkMonitor reports whether the gateway event stream is up
type LinkMonitor interface {
	IsConnected() bool
}

// StateNotifier is told about every state change applied from the gateway
type StateNotifier interface {
	NodeStateChanged(nodeID string, isOn bool)
}
