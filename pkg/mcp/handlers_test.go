package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmzd/meshgate/pkg/device"
	"github.com/urmzd/meshgate/pkg/store"
)

type fakeCommander struct {
	result *device.CommandResult
	err    error
	nodes  json.RawMessage
}

func (f *fakeCommander) Send(ctx context.Context, nodeID, action string) (*device.CommandResult, error) {
	return f.result, f.err
}

func (f *fakeCommander) Nodes(ctx context.Context) (json.RawMessage, error) {
	return f.nodes, f.err
}

type connectedLink struct{}

func (connectedLink) IsConnected() bool { return true }

func newTestServer(t *testing.T, document string, commander *fakeCommander) (*Server, *store.FileStore) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if document != "" {
		require.NoError(t, os.WriteFile(path, []byte(document), 0o644))
	}
	st := store.New(path, store.DefaultOptions())
	if commander == nil {
		commander = &fakeCommander{}
	}
	return NewServer(st, commander, nil, nil), st
}

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestHandleGetHealth(t *testing.T) {
	s, _ := newTestServer(t, "", nil)

	res, err := s.handleGetHealth(context.Background(), callTool("get_health", nil))
	require.NoError(t, err)

	var out GetHealthOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, "disconnected", out.Gateway)

	s.link = connectedLink{}
	res, err = s.handleGetHealth(context.Background(), callTool("get_health", nil))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "healthy", out.Status)
}

func TestHandleSetSlotStateAndList(t *testing.T) {
	s, st := newTestServer(t, `{"hotspot-1":{"nodeID":"n1","isOn":false,"room":"den"}}`, nil)
	ctx := context.Background()

	res, err := s.handleSetSlotState(ctx, callTool("set_slot_state", map[string]any{"slot": "hotspot-1", "is_on": true}))
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(t, res))

	doc, err := st.Get(ctx)
	require.NoError(t, err)
	assert.True(t, doc["hotspot-1"].IsOn)

	res, err = s.handleListDevices(ctx, callTool("list_devices", nil))
	require.NoError(t, err)
	var out ListDevicesOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "n1", out.Devices[0].NodeID)
	assert.JSONEq(t, `"den"`, string(out.Devices[0].Metadata["room"]))
}

func TestHandleSetSlotStateErrors(t *testing.T) {
	s, _ := newTestServer(t, `{}`, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing slot", map[string]any{"is_on": true}},
		{"missing state", map[string]any{"slot": "hotspot-1"}},
		{"state not bool", map[string]any{"slot": "hotspot-1", "is_on": "yes"}},
		{"unknown slot", map[string]any{"slot": "hotspot-9", "is_on": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleSetSlotState(ctx, callTool("set_slot_state", tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}

func TestHandleSetNodeState(t *testing.T) {
	s, st := newTestServer(t, `{"hotspot-2":{"nodeID":"n7","isOn":false}}`, nil)
	ctx := context.Background()

	res, err := s.handleSetNodeState(ctx, callTool("set_node_state", map[string]any{"node_id": "n7", "is_on": true}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	doc, err := st.Get(ctx)
	require.NoError(t, err)
	assert.True(t, doc["hotspot-2"].IsOn)
}

func TestHandleAddDevice(t *testing.T) {
	s, st := newTestServer(t, `{"hotspot-3":{"nodeID":"n3","isOn":false}}`, nil)
	ctx := context.Background()

	res, err := s.handleAddDevice(ctx, callTool("add_device", map[string]any{
		"record": map[string]any{"nodeID": "n9", "isOn": true, "label": "porch"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var out AddDeviceOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "hotspot-4", out.ID)

	doc, err := st.Get(ctx)
	require.NoError(t, err)
	require.Contains(t, doc, "hotspot-4")
	assert.Equal(t, "n9", doc["hotspot-4"].NodeID)
	assert.JSONEq(t, `"porch"`, string(doc["hotspot-4"].Extra["label"]))
}

func TestHandleAddDeviceInvalid(t *testing.T) {
	s, st := newTestServer(t, `{}`, nil)
	ctx := context.Background()

	for _, args := range []map[string]any{
		{},
		{"record": "n9"},
		{"record": map[string]any{"isOn": true}},
		{"record": map[string]any{"nodeID": "n9", "isOn": "on"}},
	} {
		res, err := s.handleAddDevice(ctx, callTool("add_device", args))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	}

	doc, err := st.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestHandleSendCommand(t *testing.T) {
	commander := &fakeCommander{result: &device.CommandResult{OK: true, StatusCode: 200}}
	s, _ := newTestServer(t, "", commander)
	ctx := context.Background()

	res, err := s.handleSendCommand(ctx, callTool("send_command", map[string]any{"node_id": "n1", "action": "open"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	commander.result = &device.CommandResult{OK: false, StatusCode: 403, Body: "bad token"}
	res, err = s.handleSendCommand(ctx, callTool("send_command", map[string]any{"node_id": "n1", "action": "open"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "bad token")

	commander.err = device.ErrForwardingFailed
	res, err = s.handleSendCommand(ctx, callTool("send_command", map[string]any{"node_id": "n1", "action": "open"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleListNodes(t *testing.T) {
	commander := &fakeCommander{nodes: json.RawMessage(`[1,2,3]`)}
	s, _ := newTestServer(t, "", commander)

	res, err := s.handleListNodes(context.Background(), callTool("list_nodes", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, resultText(t, res))
}

func TestHandleGetConfig(t *testing.T) {
	s, _ := newTestServer(t, `{"hotspot-1":{"nodeID":"n1","isOn":true}}`, nil)

	res, err := s.handleGetConfig(context.Background(), callTool("get_config", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"hotspot-1":{"nodeID":"n1","isOn":true}}`, resultText(t, res))
}

func TestHandleAddDeviceKeepsNumbersExact(t *testing.T) {
	s, st := newTestServer(t, `{}`, nil)
	ctx := context.Background()

	res, err := s.handleAddDevice(ctx, callTool("add_device", map[string]any{
		"record": map[string]any{
			"nodeID": "n1",
			"serial": json.Number("9007199254740993"),
			"gain":   0.1,
		},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	doc, err := st.Get(ctx)
	require.NoError(t, err)
	require.Contains(t, doc, "hotspot-1")
	assert.Equal(t, "9007199254740993", string(doc["hotspot-1"].Extra["serial"]))
	assert.Equal(t, "0.1", string(doc["hotspot-1"].Extra["gain"]))
}
