package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project  string       `yaml:"project"`
	Version  int          `yaml:"version"`
	Database string       `yaml:"database"`
	Pricing  string       `yaml:"pricing"`
	Files    []FileConfig `yaml:"files"`
}

type FileConfig struct {
	Path      string `yaml:"path"`
	Specialty string `yaml:"specialty"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if len(cfg.Files) == 0 {
		return fmt.Errorf("at least one file is required")
	}

	seen := make(map[string]struct{})
	for i, file := range cfg.Files {
		if strings.TrimSpace(file.Path) == "" {
			return fmt.Errorf("file %d path is required", i)
		}
		key := strings.ToLower(file.Path)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate file path: %s", file.Path)
		}
		seen[key] = struct{}{}
	}

	if cfg.Database != "" &&
		!strings.HasPrefix(cfg.Database, "sqlite://") &&
		!strings.HasPrefix(cfg.Database, "postgres://") &&
		!strings.HasPrefix(cfg.Database, "postgresql://") {
		return fmt.Errorf("unsupported database scheme: %s", cfg.Database)
	}

	return nil
}
