package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"takeoff/internal/config"
	"takeoff/internal/pricing"
)

var (
	priceCatalogPath string
	priceLimit       int
)

func priceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price <description>",
		Short: "Match an article description against the price catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPrice,
	}
	cmd.Flags().StringVar(&priceCatalogPath, "catalog", "", "Catalog path (defaults to the configured one)")
	cmd.Flags().IntVar(&priceLimit, "limit", 5, "Maximum candidates to print")
	return cmd
}

func runPrice(cmd *cobra.Command, args []string) error {
	path := priceCatalogPath
	if path == "" {
		cfg, err := config.LoadProjectConfig("takeoff.yaml")
		if err != nil {
			return err
		}
		if cfg.Pricing == "" {
			return fmt.Errorf("no pricing catalog configured in takeoff.yaml")
		}
		path = cfg.Pricing
	}

	catalog, err := pricing.Load(path)
	if err != nil {
		return err
	}

	query := ""
	for i, arg := range args {
		if i > 0 {
			query += " "
		}
		query += arg
	}

	matches := catalog.TopMatches(query, priceLimit)
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches.")
		return nil
	}
	for _, m := range matches {
		price := fmt.Sprintf("%.2f", m.Item.UnitPrice)
		if catalog.Currency() != "" {
			price += " " + catalog.Currency()
		}
		fmt.Fprintf(os.Stdout, "%.2f  %s  %-40s %s/%s\n",
			m.Score, m.Item.Code, m.Item.Description, price, m.Item.Unit)
	}
	return nil
}
