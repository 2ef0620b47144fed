package mcp

import (
	"encoding/json"

	"github.com/urmzd/meshgate/pkg/device"
)

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or degraded)"`
	Gateway   string `json:"gateway" jsonschema:"description=Gateway event stream connection status"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// ListDevicesOutput is the output for the list_devices tool
type ListDevicesOutput struct {
	Devices []DeviceInfo `json:"devices" jsonschema:"description=Device records in slot order"`
	Count   int          `json:"count" jsonschema:"description=Total number of records"`
}

// DeviceInfo represents a device record in tool outputs
type DeviceInfo struct {
	ID       string                     `json:"id" jsonschema:"description=Slot id"`
	NodeID   string                     `json:"nodeID" jsonschema:"description=Mesh node id"`
	IsOn     bool                       `json:"isOn" jsonschema:"description=Last known state"`
	Metadata map[string]json.RawMessage `json:"metadata,omitempty" jsonschema:"description=Extra fields stored with the record"`
}

// StateOutput is the output for set_slot_state and set_node_state
type StateOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AddDeviceOutput is the output for the add_device tool
type AddDeviceOutput struct {
	ID string `json:"id" jsonschema:"description=Slot id assigned to the new record"`
}

// SendCommandOutput is the output for the send_command tool
type SendCommandOutput struct {
	Accepted   bool   `json:"accepted" jsonschema:"description=Whether the gateway answered with a 2xx status"`
	StatusCode int    `json:"status_code" jsonschema:"description=Gateway HTTP status"`
	Body       string `json:"body,omitempty" jsonschema:"description=Gateway response body when the command was rejected"`
}

// RecordToInfo converts a stored record to DeviceInfo
func RecordToInfo(id string, r *device.Record) DeviceInfo {
	return DeviceInfo{
		ID:       id,
		NodeID:   r.NodeID,
		IsOn:     r.IsOn,
		Metadata: r.Extra,
	}
}
