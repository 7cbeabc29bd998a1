package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// NewMockguardMCPServer creates a new MCP server with all mockguard tools and
// resources registered. The projectPath is the directory holding
// .mockguard.yaml; relative contract and mapping paths resolve against it.
func NewMockguardMCPServer(projectPath string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}

	s := server.NewMCPServer(
		"mockguard",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	p := &project{path: projectPath, logger: logger}
	registerTools(s, p)
	registerResources(s, p)

	return s
}
