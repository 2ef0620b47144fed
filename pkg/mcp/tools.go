package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Report whether the bridge is connected to the mesh gateway's event stream"),
		),
		s.handleGetHealth,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_config",
			mcp.WithDescription("Return the raw device document: slot id mapped to {nodeID, isOn, ...metadata}"),
		),
		s.handleGetConfig,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List device records in slot order with their last known on/off state"),
		),
		s.handleListDevices,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_slot_state",
			mcp.WithDescription("Record a device as on or off by its slot id (e.g. hotspot-3). Does not send anything to the device."),
			mcp.WithString("slot",
				mcp.Required(),
				mcp.Description("Slot id of the record"),
			),
			mcp.WithBoolean("is_on",
				mcp.Required(),
				mcp.Description("New state"),
			),
		),
		s.handleSetSlotState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_node_state",
			mcp.WithDescription("Record a device as on or off by its mesh node id. The lowest numbered matching slot is updated."),
			mcp.WithString("node_id",
				mcp.Required(),
				mcp.Description("Mesh node id"),
			),
			mcp.WithBoolean("is_on",
				mcp.Required(),
				mcp.Description("New state"),
			),
		),
		s.handleSetNodeState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("add_device",
			mcp.WithDescription("Add a device record under the next free slot id and return that id"),
			mcp.WithObject("record",
				mcp.Required(),
				mcp.Description("Record with nodeID (string, required), isOn (boolean) and any extra metadata fields"),
			),
		),
		s.handleAddDevice,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("send_command",
			mcp.WithDescription("Send an action to a mesh node through the gateway. Blinds understand open, close and stop."),
			mcp.WithString("node_id",
				mcp.Required(),
				mcp.Description("Mesh node id"),
			),
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("Action understood by the node firmware"),
			),
		),
		s.handleSendCommand,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_nodes",
			mcp.WithDescription("List the node ids currently known to the mesh gateway"),
		),
		s.handleListNodes,
	)
}
