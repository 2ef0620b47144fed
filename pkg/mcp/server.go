package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/urmzd/meshgate/pkg/device"
	"github.com/urmzd/meshgate/pkg/device/schema"
)

// Server exposes the device document and the gateway command path as MCP tools
type Server struct {
	mcpServer *server.MCPServer
	store     device.Store
	commander device.Commander
	link      device.LinkMonitor
	validator *schema.Validator
}

// NewServer creates a new MCP server. link may be nil when this process does not
// run the gateway bridge.
func NewServer(store device.Store, commander device.Commander, link device.LinkMonitor, validator *schema.Validator) *Server {
	if link == nil {
		link = device.NewNullLink()
	}
	if validator == nil {
		validator = schema.NewValidator()
	}

	s := &Server{
		store:     store,
		commander: commander,
		link:      link,
		validator: validator,
	}

	s.mcpServer = server.NewMCPServer(
		"meshgate",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
