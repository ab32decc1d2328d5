// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"expenditure-decile/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Data contains data file locations
	Data DataConfig `json:"data"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// DataConfig contains data file locations
type DataConfig struct {
	// TablePath is the path to the exported boundary table
	TablePath string `json:"table_path"`

	// CatalogPath is an optional category catalog file (HCL).
	// Empty means the built-in catalog.
	CatalogPath string `json:"catalog_path,omitempty"`

	// HouseholdSizeColumn overrides the survey column holding the
	// equivalence-scaled household size
	HouseholdSizeColumn string `json:"household_size_column,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (table, json)
	DefaultFormat string `json:"default_format"`

	// ShowLabels shows category display labels alongside codes
	ShowLabels bool `json:"show_labels"`

	// Precision is the number of decimal places for boundary values
	Precision int `json:"precision"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	tablePath := filepath.Join(homeDir, ".expenditure-decile", "limits.csv")

	return &Config{
		Version: "1.0",
		Data: DataConfig{
			TablePath: tablePath,
		},
		Output: OutputConfig{
			DefaultFormat: "table",
			ShowLabels:    true,
			Precision:     2,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			ReadTimeoutSeconds: 10,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
