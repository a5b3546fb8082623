// relnotes - Release notes from plain-text git history
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/relnotes

// Package config provides hierarchical configuration management for relnotes using koanf.
// Configuration is loaded with priority: environment variables > project config (.relnotes/config.yml)
// > user config (~/.config/relnotes/config.yml) > defaults. A legacy JSON project config
// (.relnotes/config.json) is still read, with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "RELNOTES_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the relnotes CLI configuration
type Configuration struct {
	// InputPath is the plain-text commit log, one "<hash> - <message> (<date>)" per line.
	InputPath string `koanf:"input_path" validate:"required"`
	// OutputPath is where the generated release notes are written.
	OutputPath string `koanf:"output_path" validate:"required"`
	// Format selects the output document: markdown or yaml.
	Format string `koanf:"format" validate:"required,oneof=markdown yaml"`
	// InputOrder declares the direction of the log: newest-first (git default),
	// oldest-first, or auto (detected from dates).
	InputOrder string `koanf:"input_order" validate:"required,oneof=newest-first oldest-first auto"`

	SeedLabel       string `koanf:"seed_label" validate:"required"`
	UnreleasedLabel string `koanf:"unreleased_label" validate:"required"`
	LatestLabel     string `koanf:"latest_label" validate:"required"`

	// DefaultBranches lists branches whose "Merge branch '<name>'" commits are dropped.
	// Set via RELNOTES_DEFAULT_BRANCHES as a comma-separated list.
	DefaultBranches []string `koanf:"default_branches" validate:"dive,required"`

	// Sources lists the config layers that contributed values, lowest priority first.
	Sources []ConfigSource `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnotes/config.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)
	sources := []ConfigSource{SourceDefault}

	loadDefaults(k)

	loaded, err := loadUserConfig(k)
	if err != nil {
		return nil, err
	}
	if loaded {
		sources = append(sources, SourceUser)
	}

	loaded, err = loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings)
	if err != nil {
		return nil, err
	}
	if loaded {
		sources = append(sources, SourceProject)
	}

	loaded, err = loadEnvironmentConfig(k)
	if err != nil {
		return nil, err
	}
	if loaded {
		sources = append(sources, SourceEnv)
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) (bool, error) {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return false, nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return false, fmt.Errorf("loading user YAML config: %w", err)
	}
	return true, nil
}

// loadProjectConfig loads the project-level config. YAML is preferred; the
// legacy JSON file is read only when no YAML exists.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) (bool, error) {
	if customPath != "" {
		if !fileExists(customPath) {
			return false, fmt.Errorf("config file not found: %s", customPath)
		}
		if strings.HasSuffix(customPath, ".json") {
			return true, loadJSONConfig(k, customPath, "project")
		}
		return true, loadYAMLConfig(k, customPath, "project")
	}

	yamlPath := ProjectConfigPath()
	legacyPath := LegacyProjectConfigPath()

	switch {
	case fileExists(yamlPath):
		if err := loadYAMLConfig(k, yamlPath, "project"); err != nil {
			return false, fmt.Errorf("loading project YAML config: %w", err)
		}
		if fileExists(legacyPath) && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
			fmt.Fprintf(warningWriter, "  Run 'relnotes config migrate' to back up the legacy file.\n\n")
		}
		return true, nil
	case fileExists(legacyPath):
		if err := loadJSONConfig(k, legacyPath, "project"); err != nil {
			return false, fmt.Errorf("loading legacy project JSON config: %w", err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Run 'relnotes config migrate' to migrate to YAML format.\n\n")
		}
		return true, nil
	default:
		return false, nil
	}
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
// Returns true if at least one RELNOTES_ variable was applied.
func loadEnvironmentConfig(k *koanf.Koanf) (bool, error) {
	applied := false
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		name := envTransform(key)
		if _, known := GetDefaults()[name]; !known {
			return "", nil
		}
		applied = true
		if name == "default_branches" {
			return name, splitList(value)
		}
		return name, value
	})
	if err := k.Load(provider, nil); err != nil {
		return false, fmt.Errorf("failed to load environment config: %w", err)
	}
	return applied, nil
}

// finalizeConfig unmarshals, normalizes, and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.InputOrder = strings.ToLower(strings.TrimSpace(cfg.InputOrder))
	cfg.InputPath = expandHomePath(cfg.InputPath)
	cfg.OutputPath = expandHomePath(cfg.OutputPath)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// ChangelogOptions converts the configuration into pipeline options.
func (c *Configuration) ChangelogOptions() (changelog.Options, error) {
	order, err := changelog.ParseOrder(c.InputOrder)
	if err != nil {
		return changelog.Options{}, err
	}
	return changelog.Options{
		SeedLabel:       c.SeedLabel,
		UnreleasedLabel: c.UnreleasedLabel,
		LatestLabel:     c.LatestLabel,
		DefaultBranches: c.DefaultBranches,
		Order:           order,
	}, nil
}

// OutputFormat returns the configured output format.
func (c *Configuration) OutputFormat() (changelog.Format, error) {
	return changelog.ParseFormat(c.Format)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RELNOTES_INPUT_PATH -> input_path
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return homeDir + path[1:]
		}
	}
	return path
}
