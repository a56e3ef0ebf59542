package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"takeoff/internal/analysis"
	"takeoff/internal/config"
	"takeoff/internal/project"
	"takeoff/internal/validate"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Assemble the configured project and check it for consistency issues",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	report, err := validate.Run(p, batch.Analyses)
	if err != nil {
		return err
	}

	if len(report.Issues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	for _, issue := range report.Issues {
		fmt.Fprintf(os.Stdout, "[%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
	}
	if n := report.Errors(); n > 0 {
		return fmt.Errorf("validation found %d errors", n)
	}
	return nil
}
