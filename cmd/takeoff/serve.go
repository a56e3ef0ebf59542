package main

import (
	"context"

	"github.com/spf13/cobra"

	"takeoff/internal/mcp"
	"takeoff/internal/pricing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveCatalogPath string

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&serveCatalogPath, "catalog", "", "Pricing catalog to serve price matching from")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var catalog *pricing.Catalog
	if serveCatalogPath != "" {
		var err error
		catalog, err = pricing.Load(serveCatalogPath)
		if err != nil {
			return err
		}
	} else {
		// Best effort: a configured catalog is used when present.
		if cfg, err := loadOptionalConfig(); err == nil && cfg != nil && cfg.Pricing != "" {
			if c, err := pricing.Load(cfg.Pricing); err == nil {
				catalog = c
			}
		}
	}

	server := mcp.NewServer(catalog, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
