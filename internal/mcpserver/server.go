package mcpserver

import (
	"context"
	"os"

	"conductor/internal/engine"
	"conductor/internal/strategy"
	"conductor/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

// Server exposes the capability graph and the execution operations as MCP
// tools so an external planner can discover and invoke capabilities over
// stdio.
type Server struct {
	engine       *engine.Engine
	orchestrator *strategy.Orchestrator
	server       *server.MCPServer
}

// New builds the MCP server over an engine and its orchestrator.
func New(eng *engine.Engine, orch *strategy.Orchestrator, version string) *Server {
	mcpServer := server.NewMCPServer(
		"conductor",
		version,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		engine:       eng,
		orchestrator: orch,
		server:       mcpServer,
	}
	mcpServer.AddTools(s.tools()...)
	return s
}

// ServeStdio serves the MCP protocol on stdin/stdout until the context is
// cancelled. Log output must go to stderr while this runs.
func (s *Server) ServeStdio(ctx context.Context) error {
	logging.Info("MCPServer", "Serving MCP over stdio")
	stdioServer := server.NewStdioServer(s.server)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}
