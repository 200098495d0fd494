// Package config loads the formflow CLI configuration from layered
// sources: defaults, global config, local config, then environment
// variables, highest priority last.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the formflow CLI tool configuration.
type Configuration struct {
	SpecsDir      string `koanf:"specs_dir" validate:"required"`
	Output        string `koanf:"output" validate:"oneof=text json"`
	Strict        bool   `koanf:"strict"`         // Treat validation warnings (e.g. unreachable states) as failures
	ShowProgress  bool   `koanf:"show_progress"`  // Show spinner in watch mode
	Color         bool   `koanf:"color"`          // Colorize CLI output
	SanitizeDepth int    `koanf:"sanitize_depth" validate:"min=1,max=64"`
	DefaultRole   string `koanf:"default_role"` // Role assumed when --role is not given
	LogLevel      string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
}

// Load loads configuration from global, local, and environment sources.
// Priority: environment variables > local config > global config > defaults.
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(homeDir, ".formflow", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	k.Load(env.Provider("FORMFLOW_", ".", envTransform), nil)

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.SpecsDir = expandHomePath(cfg.SpecsDir)

	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = false
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: FORMFLOW_SPECS_DIR -> specs_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "FORMFLOW_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
