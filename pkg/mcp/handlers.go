package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/meshgate/pkg/device"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gateway := "disconnected"
	if s.link.IsConnected() {
		gateway = "connected"
	}

	status := "healthy"
	if gateway != "connected" {
		status = "degraded"
	}

	out := GetHealthOutput{
		Status:    status,
		Gateway:   gateway,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read device document: %s", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := s.store.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list devices: %s", err)), nil
	}

	infos := make([]DeviceInfo, 0, len(doc))
	for _, id := range doc.SortedIDs() {
		if rec := doc[id]; rec != nil {
			infos = append(infos, RecordToInfo(id, rec))
		}
	}

	out := ListDevicesOutput{
		Devices: infos,
		Count:   len(infos),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetSlotState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slot, err := requiredString(request, "slot")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	isOn, err := requiredBool(request, "is_on")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.store.SetSlotState(ctx, slot, isOn); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set slot state: %s", err)), nil
	}

	out := StateOutput{
		Success: true,
		Message: fmt.Sprintf("Slot %q is now recorded as %s", slot, onOff(isOn)),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetNodeState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodeID, err := requiredString(request, "node_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	isOn, err := requiredBool(request, "is_on")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.store.SetNodeState(ctx, nodeID, isOn); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set node state: %s", err)), nil
	}

	out := StateOutput{
		Success: true,
		Message: fmt.Sprintf("Node %q is now recorded as %s", nodeID, onOff(isOn)),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleAddDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, ok := request.GetArguments()["record"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError(`parameter "record" must be an object`), nil
	}
	if err := s.validator.ValidateRecord(payload); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid record: %s", err)), nil
	}
	var rec device.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid record: %s", err)), nil
	}

	id, err := s.store.Create(ctx, &rec)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add device: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(AddDeviceOutput{ID: id})), nil
}

func (s *Server) handleSendCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodeID, err := requiredString(request, "node_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := requiredString(request, "action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.commander.Send(ctx, nodeID, action)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to send command: %s", err)), nil
	}

	out := SendCommandOutput{
		Accepted:   res.OK,
		StatusCode: res.StatusCode,
		Body:       res.Body,
	}
	if !res.OK {
		return mcp.NewToolResultError(formatJSON(out)), nil
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListNodes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodes, err := s.commander.Nodes(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list nodes: %s", err)), nil
	}
	return mcp.NewToolResultText(string(nodes)), nil
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	v, ok := request.GetArguments()[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func requiredBool(request mcp.CallToolRequest, key string) (bool, error) {
	v, ok := request.GetArguments()[key]
	if !ok || v == nil {
		return false, fmt.Errorf("required parameter %q is missing", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q must be a boolean", key)
	}
	return b, nil
}

func onOff(isOn bool) string {
	if isOn {
		return "on"
	}
	return "off"
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
