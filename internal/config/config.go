package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Site      SiteConfig      `yaml:"site"`
	Select    SelectConfig    `yaml:"select"`
	Validate  ValidateConfig  `yaml:"validate"`
	CacheBust CacheBustConfig `yaml:"cache_bust"`
	Stages    StagesConfig    `yaml:"stages,omitempty"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
}

// GeneratorConfig describes the external static-site generator invocation.
type GeneratorConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
	Dir     string   `yaml:"dir,omitempty"` // working directory, defaults to "."
}

// SiteConfig describes where the generated site lives.
type SiteConfig struct {
	Directory string `yaml:"directory"`
}

// SelectConfig is the file-selection policy applied to the site directory.
// Files lists explicit paths relative to the site directory; Globs are
// doublestar patterns; Exclude patterns remove matches from either set.
type SelectConfig struct {
	Files   []string `yaml:"files,omitempty"`
	Globs   []string `yaml:"globs,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// ValidateScope enumerates what the style-removal validator flags.
type ValidateScope string

const (
	// ScopePatterns flags only declarations enumerated in the pattern library.
	ScopePatterns ValidateScope = "patterns"
	// ScopeAll flags any remaining style attribute.
	ScopeAll ValidateScope = "all"
)

// Check validates the scope value.
func (s ValidateScope) Check() error {
	switch s {
	case ScopePatterns, ScopeAll:
		return nil
	}
	return fmt.Errorf("invalid validate.scope %q (want %q or %q)", s, ScopePatterns, ScopeAll)
}

// ValidateConfig configures the style-removal validation gate.
type ValidateConfig struct {
	Scope ValidateScope `yaml:"scope,omitempty"` // patterns|all, defaults to patterns
}

// TokenSource enumerates how the cache-busting token is derived.
type TokenSource string

const (
	TokenSourceTimestamp TokenSource = "timestamp"
	TokenSourceContent   TokenSource = "content"
)

// CacheBustConfig configures the asset cache-busting stage.
type CacheBustConfig struct {
	Param  string      `yaml:"param,omitempty"`  // query parameter name, defaults to "v"
	Source TokenSource `yaml:"source,omitempty"` // timestamp|content, defaults to timestamp
}

// ErrorPolicy decides whether a per-file error within a stage is
// recoverable-and-logged or pipeline-fatal.
type ErrorPolicy string

const (
	PolicyWarn  ErrorPolicy = "warn"
	PolicyFatal ErrorPolicy = "fatal"
)

// StagesConfig holds the per-stage error policy for file-level I/O errors.
// Validation failures are always fatal regardless of this setting.
type StagesConfig struct {
	FileErrors ErrorPolicy `yaml:"file_errors,omitempty"` // warn|fatal, defaults to warn
}

// MetricsConfig enables the Prometheus recorder.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; a missing file is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ApplyDefaults()
	if err := config.Check(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ApplyDefaults fills zero-valued fields with their documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Site.Directory == "" {
		c.Site.Directory = "./public"
	}
	if c.Generator.Dir == "" {
		c.Generator.Dir = "."
	}
	if len(c.Select.Files) == 0 && len(c.Select.Globs) == 0 {
		c.Select.Globs = []string{"**/*.html"}
	}
	if c.Validate.Scope == "" {
		c.Validate.Scope = ScopePatterns
	}
	if c.CacheBust.Param == "" {
		c.CacheBust.Param = "v"
	}
	if c.CacheBust.Source == "" {
		c.CacheBust.Source = TokenSourceTimestamp
	}
	if c.Stages.FileErrors == "" {
		c.Stages.FileErrors = PolicyWarn
	}
}

// Check validates enumerated fields; call after ApplyDefaults.
func (c *Config) Check() error {
	if err := c.Validate.Scope.Check(); err != nil {
		return err
	}
	switch c.CacheBust.Source {
	case TokenSourceTimestamp, TokenSourceContent:
	default:
		return fmt.Errorf("invalid cache_bust.source %q (want %q or %q)", c.CacheBust.Source, TokenSourceTimestamp, TokenSourceContent)
	}
	switch c.Stages.FileErrors {
	case PolicyWarn, PolicyFatal:
	default:
		return fmt.Errorf("invalid stages.file_errors %q (want %q or %q)", c.Stages.FileErrors, PolicyWarn, PolicyFatal)
	}
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Generator: GeneratorConfig{
			Command: "hugo",
			Args:    []string{"--minify"},
		},
		Site: SiteConfig{
			Directory: "./public",
		},
		Select: SelectConfig{
			Globs:   []string{"**/*.html"},
			Exclude: []string{"tags/**"},
		},
		Validate: ValidateConfig{
			Scope: ScopePatterns,
		},
		CacheBust: CacheBustConfig{
			Param:  "v",
			Source: TokenSourceTimestamp,
		},
		Stages: StagesConfig{
			FileErrors: PolicyWarn,
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
