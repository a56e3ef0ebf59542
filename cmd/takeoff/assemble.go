package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"takeoff/internal/analysis"
	"takeoff/internal/config"
	"takeoff/internal/project"
	"takeoff/internal/store"
)

var (
	assembleJSON bool
	assembleSave bool
)

func assembleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Analyze the configured discipline files and merge them into one project",
		Args:  cobra.NoArgs,
		RunE:  runAssemble,
	}
	cmd.Flags().BoolVar(&assembleJSON, "json", false, "Print the assembled project as JSON")
	cmd.Flags().BoolVar(&assembleSave, "save", false, "Persist the project to the configured database")
	return cmd
}

func runAssemble(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadProjectConfig("takeoff.yaml")
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(cfg.Files))
	for _, f := range cfg.Files {
		paths = append(paths, f.Path)
	}
	files, err := readFiles(paths)
	if err != nil {
		return err
	}

	batch := analysis.RunBatch(ctx, files, analysis.Options{})
	p, err := project.Assemble(batch.Analyses)
	if err != nil {
		return err
	}
	p.Name = cfg.Project

	if assembleJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding project: %w", err)
		}
	} else {
		printProject(p)
	}

	if assembleSave {
		if cfg.Database == "" {
			return fmt.Errorf("no database configured in takeoff.yaml")
		}
		db, err := openDB(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close(ctx)
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
		input, err := store.InputFromProject(cfg.Project, p, batch.Analyses)
		if err != nil {
			return err
		}
		if _, err := db.SaveProject(ctx, input); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved project %s.\n", cfg.Project)
	}

	if len(batch.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(batch.Errors))
		for _, item := range batch.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("assembly completed with errors")
	}

	return nil
}

func printProject(p *project.Project) {
	fmt.Fprintf(os.Stdout, "Project %s\n", p.Name)
	fmt.Fprintf(os.Stdout, "  Files:    %d\n", p.Metadata.FileCount)
	fmt.Fprintf(os.Stdout, "  Elements: %d\n", p.Metadata.ElementCount)
	fmt.Fprintf(os.Stdout, "  Floors:   %d\n", p.Metadata.FloorCount)
	if p.Metadata.GrossFloorArea > 0 {
		fmt.Fprintf(os.Stdout, "  GFA:      %.1f m2\n", p.Metadata.GrossFloorArea)
	}
	fmt.Fprintf(os.Stdout, "  Type:     %s\n", p.Metadata.BuildingType)
	for _, ch := range p.Chapters {
		fmt.Fprintf(os.Stdout, "  Chapter %s %s\n", ch.Code, ch.Description)
		for _, sc := range ch.SubChapters {
			for _, a := range sc.Articles {
				fmt.Fprintf(os.Stdout, "    %s  %-40s %10.2f %s\n", a.Code, a.Description, a.Quantity, a.Unit)
			}
		}
	}
}
