// Package mcp exposes the analysis pipeline as MCP tools over a
// transport, typically stdio.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"takeoff/internal/pricing"
)

type Server struct {
	catalog *pricing.Catalog
	mcp     *sdk.Server
}

// NewServer builds the tool server. catalog may be nil, in which case
// the price matching tool reports that no catalog is loaded.
func NewServer(catalog *pricing.Catalog, version string) *Server {
	s := &Server{
		catalog: catalog,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "takeoff",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
