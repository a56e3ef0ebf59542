package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"takeoff/internal/analysis"
)

var analyzeJSON bool

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Analyze IFC files: specialty, quantities, findings",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}
	cmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print full results as JSON")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := readFiles(args)
	if err != nil {
		return err
	}

	batch := analysis.RunBatch(ctx, files, analysis.Options{})

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(batch.Analyses); err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
	} else {
		for _, r := range batch.Analyses {
			printSummary(r)
		}
	}

	if len(batch.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(batch.Errors))
		for _, item := range batch.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("analysis completed with errors")
	}

	return nil
}

func readFiles(paths []string) ([]analysis.File, error) {
	files := make([]analysis.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, analysis.File{Name: path, Content: string(data)})
	}
	return files, nil
}

func printSummary(r *analysis.Result) {
	fmt.Fprintf(os.Stdout, "%s\n", r.File)
	fmt.Fprintf(os.Stdout, "  Specialty: %s\n", r.Specialty)
	fmt.Fprintf(os.Stdout, "  Records:   %d\n", r.Stats.RecordCount)
	fmt.Fprintf(os.Stdout, "  Elements:  %d\n", r.Stats.ElementCount)
	if r.Skips.Lines > 0 || r.Skips.UnresolvedRefs > 0 {
		fmt.Fprintf(os.Stdout, "  Skipped:   %d lines, %d unresolved references\n",
			r.Skips.Lines, r.Skips.UnresolvedRefs)
	}
	for _, ch := range r.Chapters {
		fmt.Fprintf(os.Stdout, "  Chapter %s %s\n", ch.Code, ch.Description)
		for _, sc := range ch.SubChapters {
			for _, a := range sc.Articles {
				fmt.Fprintf(os.Stdout, "    %s  %-40s %10.2f %s\n", a.Code, a.Description, a.Quantity, a.Unit)
			}
		}
	}
	for _, f := range r.Findings {
		fmt.Fprintf(os.Stdout, "  [%s] %s\n", f.Severity, f.Title)
	}
}
