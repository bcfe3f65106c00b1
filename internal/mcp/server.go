// ABOUTME: MCP server setup for the diabetes metric store.
// ABOUTME: Wires the storage repository and analyzers into tools and resources.
package mcp

import (
	"context"

	"github.com/glucolog/glucolog/internal/analysis"
	"github.com/glucolog/glucolog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage and analysis access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	analyzer  *analysis.Analyzer
}

// NewServer creates an MCP server over the given repository and analyzer.
func NewServer(repo storage.Repository, analyzer *analysis.Analyzer) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "glucolog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		analyzer:  analyzer,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
