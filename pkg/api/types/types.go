package types

import (
	"encoding/json"
	"time"
)

// --- Request DTOs ---

// SetSlotStateRequest is the request body for POST /config
type SetSlotStateRequest struct {
	Slot string `json:"slot" binding:"required"`
	IsOn *bool  `json:"isOn" binding:"required"`
}

// SetNodeStateRequest is the request body for POST /config/lights
type SetNodeStateRequest struct {
	NodeID string `json:"nodeID" binding:"required"`
	IsOn   *bool  `json:"isOn" binding:"required"`
}

// CommandRequest is the request body for POST /command
type CommandRequest struct {
	NodeID string `json:"nodeID" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// BlindsRequest is the request body for POST /blinds
type BlindsRequest struct {
	Node   string `json:"node" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// UpdateGatewayRequest is the request body for PUT /gateway.
// Omitted fields keep their current value.
type UpdateGatewayRequest struct {
	RootAddress      *string `json:"root_address,omitempty"`
	StreamURL        *string `json:"stream_url,omitempty"`
	Token            *string `json:"token,omitempty"`
	MatchBy          *string `json:"match_by,omitempty" enums:"node,slot"`
	ReconnectDelayMs *int64  `json:"reconnect_delay_ms,omitempty"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse acknowledges a completed operation
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Gateway   string    `json:"gateway"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateDeviceResponse is returned from POST /config/devices
type CreateDeviceResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// DeviceItem is one record of the device document
type DeviceItem struct {
	ID       string                     `json:"id"`
	NodeID   string                     `json:"nodeID"`
	IsOn     bool                       `json:"isOn"`
	Metadata map[string]json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// ListDevicesResponse is returned from GET /devices
type ListDevicesResponse struct {
	Devices []DeviceItem `json:"devices"`
	Count   int          `json:"count"`
}

// CommandResponse is returned when the gateway accepted a command
type CommandResponse struct {
	Message string `json:"message"`
	NodeID  string `json:"nodeID"`
	Action  string `json:"action"`
}

// NodesResponse is returned from GET /nodes
type NodesResponse struct {
	Success bool            `json:"success"`
	List    json.RawMessage `json:"list" swaggertype:"array,object"`
}

// GatewayResponse is returned from GET and PUT /gateway. The token itself is never returned.
type GatewayResponse struct {
	RootAddress      string    `json:"root_address"`
	StreamURL        string    `json:"stream_url"`
	EventStreamURL   string    `json:"event_stream_url"`
	TokenSet         bool      `json:"token_set"`
	MatchBy          string    `json:"match_by"`
	ReconnectDelayMs int64     `json:"reconnect_delay_ms"`
	UpdatedAt        time.Time `json:"updated_at"`
}
