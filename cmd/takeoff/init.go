package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"takeoff/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new takeoff project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	configPath := "takeoff.yaml"
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	contents := fmt.Sprintf("project: %s\nversion: 1\n\ndatabase: sqlite://takeoff.db\npricing: ./prices.yaml\n\nfiles:\n  - path: ./models/architecture.ifc\n  - path: ./models/structure.ifc\n", projectName)
	if err := os.WriteFile(configPath, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	return nil
}

// loadOptionalConfig reads takeoff.yaml without failing the caller when
// it is absent.
func loadOptionalConfig() (*config.ProjectConfig, error) {
	if _, err := os.Stat("takeoff.yaml"); err != nil {
		return nil, nil
	}
	return config.LoadProjectConfig("takeoff.yaml")
}
