// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"llm-sanitizer/internal/paths"
	"llm-sanitizer/internal/sanitizer"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPort overrides the web server port
const EnvPort = "LLM_SANITIZER_PORT"

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format  string `yaml:"format"`
		NoColor bool   `yaml:"no_color"`
		Debug   bool   `yaml:"debug"`
		Quiet   bool   `yaml:"quiet"`
	} `yaml:"defaults"`

	// Numeric sanitization used when no flag or request says otherwise
	Numbers sanitizer.NumberSanitizeOptions `yaml:"numbers"`

	// Storage locations; empty values use the configuration directory
	Storage struct {
		VaultFile   string `yaml:"vault_file"`
		SessionFile string `yaml:"session_file"`
	} `yaml:"storage"`

	// Web server settings
	Web struct {
		Port string `yaml:"port"`
	} `yaml:"web"`
}

// supportedFormats lists the output formats a config may select
var supportedFormats = map[string]bool{"text": true, "json": true, "yaml": true}

// defaultConfig returns the configuration used when no file is present
func defaultConfig() *Config {
	config := &Config{}
	config.Defaults.Format = "text"
	config.Numbers = sanitizer.DefaultNumberOptions()
	config.Web.Port = "8080"
	return config
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	// If no config file specified, return default config
	if configPath == "" {
		ApplyEnvironment(config)
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	defaults := config.Numbers

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if not explicitly set in config file. YAML leaves
	// absent bool fields false, which would silently switch sub-patterns off.
	if !containsField(data, "numbers", "include_integers") {
		config.Numbers.IncludeIntegers = defaults.IncludeIntegers
	}
	if !containsField(data, "numbers", "include_decimals") {
		config.Numbers.IncludeDecimals = defaults.IncludeDecimals
	}
	if !containsField(data, "numbers", "include_measurements") {
		config.Numbers.IncludeMeasurements = defaults.IncludeMeasurements
	}
	if !containsField(data, "numbers", "include_currency") {
		config.Numbers.IncludeCurrency = defaults.IncludeCurrency
	}

	ApplyEnvironment(config)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault finds and loads the configuration. When the file is
// invalid it returns the defaults together with the load error so callers
// can warn and carry on.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaults, _ := LoadConfig("")
		return defaults, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from .env files, or ./.env when no
// file is named. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnvironment overlays environment variable overrides on config
func ApplyEnvironment(config *Config) {
	if vault := os.Getenv(paths.EnvVaultFile); vault != "" {
		config.Storage.VaultFile = vault
	}
	if session := os.Getenv(paths.EnvSessionFile); session != "" {
		config.Storage.SessionFile = session
	}
	if port := os.Getenv(EnvPort); port != "" {
		config.Web.Port = port
	}
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first (project-specific config)
	for _, name := range []string{"llm-sanitizer.yaml", "llm-sanitizer.yml", ".llm-sanitizer.yaml", ".llm-sanitizer.yml"} {
		if fileExists(name) {
			return name
		}
	}

	standardConfig := paths.GetConfigFile()
	if fileExists(standardConfig) {
		return standardConfig
	}
	return ""
}

// ValidateConfig checks values that would otherwise fail later at use
func ValidateConfig(config *Config) error {
	if !supportedFormats[config.Defaults.Format] {
		return fmt.Errorf("unsupported format %q (want text, json or yaml)", config.Defaults.Format)
	}
	port, err := strconv.Atoi(config.Web.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid web port %q", config.Web.Port)
	}
	return nil
}

// VaultFile returns the configured vault location or the default one
func (c *Config) VaultFile() string {
	if c.Storage.VaultFile != "" {
		return c.Storage.VaultFile
	}
	return paths.GetVaultFile()
}

// SessionFile returns the configured session location or the default one
func (c *Config) SessionFile() string {
	if c.Storage.SessionFile != "" {
		return c.Storage.SessionFile
	}
	return paths.GetSessionFile()
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	err := yaml.Unmarshal(data, &yamlData)
	if err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			// Last key - check if it exists
			_, exists := current[key]
			return exists
		}
		// Intermediate key - navigate deeper
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return false
		}
	}
	return false
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
