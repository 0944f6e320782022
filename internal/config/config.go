// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/pixcel-cv/internal/typeset"
)

// Environment variables read by FromEnv. A .env file in the working
// directory is loaded into the environment by the CLI.
const (
	EnvYAMLFolder   = "PIXCEL_YAML_FOLDER"
	EnvConfigFolder = "PIXCEL_CONFIG_FOLDER"
	EnvEngine       = "PIXCEL_ENGINE"
	EnvTemplate     = "PIXCEL_TEMPLATE"
	EnvPicture      = "PIXCEL_PICTURE"
	EnvMaxPages     = "PIXCEL_MAX_PAGES"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Sources
	Input        string `json:"input,omitempty"`         // Single exported CV YAML file
	YAMLFolder   string `json:"yaml_folder,omitempty"`   // Folder with the data documents
	ConfigFolder string `json:"config_folder,omitempty"` // Folder with cv_config.yaml
	Picture      string `json:"picture,omitempty"`       // Portrait picture

	// Outputs
	OutputPDF   string `json:"pdf,omitempty"`
	OutputLaTeX string `json:"latex,omitempty"`

	// Rendering
	Template       string `json:"template,omitempty"`        // Path to LaTeX template
	Engine         string `json:"engine,omitempty"`          // pdflatex, xelatex or lualatex
	MaxPages       int    `json:"max_pages,omitempty"`       // Warn when the PDF is longer
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Limit for all engine passes

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from the PIXCEL_* environment variables.
// Malformed numbers are reported as errors.
func FromEnv() (Config, error) {
	cfg := Config{
		YAMLFolder:   os.Getenv(EnvYAMLFolder),
		ConfigFolder: os.Getenv(EnvConfigFolder),
		Engine:       os.Getenv(EnvEngine),
		Template:     os.Getenv(EnvTemplate),
		Picture:      os.Getenv(EnvPicture),
	}

	if raw := os.Getenv(EnvMaxPages); raw != "" {
		maxPages, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config error: %s must be a number: %w", EnvMaxPages, err)
		}
		cfg.MaxPages = maxPages
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Input != "" && c.YAMLFolder != "" {
		return fmt.Errorf("config error: 'input' and 'yaml_folder' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.MaxPages < 0 {
		return fmt.Errorf("config error: 'max_pages' must be non-negative")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}

	if c.Engine != "" {
		if err := typeset.ValidateEngine(c.Engine); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	if c.YAMLFolder != "" {
		if _, err := os.Stat(c.YAMLFolder); os.IsNotExist(err) {
			return fmt.Errorf("config error: folder not found: %s", c.YAMLFolder)
		}
	}

	return nil
}

// Timeout returns the engine timeout, or zero for the default
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	// input and yaml_folder are alternatives; take defaults only when neither is set
	if result.Input == "" && result.YAMLFolder == "" {
		result.Input = defaults.Input
		result.YAMLFolder = defaults.YAMLFolder
	}
	if result.ConfigFolder == "" {
		result.ConfigFolder = defaults.ConfigFolder
	}
	if result.Picture == "" {
		result.Picture = defaults.Picture
	}
	if result.OutputPDF == "" {
		result.OutputPDF = defaults.OutputPDF
	}
	if result.OutputLaTeX == "" {
		result.OutputLaTeX = defaults.OutputLaTeX
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Engine == "" {
		if defaults.Engine != "" {
			result.Engine = defaults.Engine
		} else {
			result.Engine = typeset.DefaultEngine
		}
	}

	// Int fields: use default if zero
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
