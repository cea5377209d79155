// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"llm-sanitizer/internal/paths"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(paths.EnvVaultFile, "")
	t.Setenv(paths.EnvSessionFile, "")
	t.Setenv(EnvPort, "")
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoadConfigOrDefault_NoFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(paths.EnvConfigDir, t.TempDir())
	chdir(t, t.TempDir())

	// With no config file, should return defaults without error
	cfg, err := LoadConfigOrDefault("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	// A path that doesn't exist should fall back to defaults
	cfg, err := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, ":::invalid yaml:::")

	// Should fall back to defaults, not panic
	cfg, err := LoadConfigOrDefault(configPath)
	if err == nil {
		t.Error("expected a parse error")
	}
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
	if cfg.Numbers.Enabled {
		t.Error("expected numeric sanitization to stay disabled")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if cfg.Numbers.Enabled {
		t.Error("expected numbers.enabled=false by default")
	}
	if !cfg.Numbers.IncludeIntegers || !cfg.Numbers.IncludeDecimals ||
		!cfg.Numbers.IncludeMeasurements || !cfg.Numbers.IncludeCurrency {
		t.Errorf("expected every numeric sub-pattern on by default, got %+v", cfg.Numbers)
	}
	if cfg.Web.Port != "8080" {
		t.Errorf("expected default port=8080, got %q", cfg.Web.Port)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	clearEnv(t)
	configPath := writeConfig(t, `
defaults:
  format: json
  quiet: true
numbers:
  enabled: true
  include_currency: false
storage:
  vault_file: /data/vault.yaml
web:
  port: "9090"
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	if !cfg.Defaults.Quiet {
		t.Error("expected quiet=true")
	}
	if !cfg.Numbers.Enabled {
		t.Error("expected numbers.enabled=true")
	}
	if cfg.Numbers.IncludeCurrency {
		t.Error("expected include_currency=false from file")
	}
	// Omitted sub-patterns keep their defaults
	if !cfg.Numbers.IncludeIntegers || !cfg.Numbers.IncludeDecimals || !cfg.Numbers.IncludeMeasurements {
		t.Errorf("expected omitted sub-patterns to stay enabled, got %+v", cfg.Numbers)
	}
	if cfg.VaultFile() != "/data/vault.yaml" {
		t.Errorf("expected vault file from config, got %q", cfg.VaultFile())
	}
	if cfg.Web.Port != "9090" {
		t.Errorf("expected port=9090, got %q", cfg.Web.Port)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(paths.EnvVaultFile, "/env/vault.json")
	t.Setenv(paths.EnvSessionFile, "/env/session.json")
	t.Setenv(EnvPort, "7000")
	configPath := writeConfig(t, `
storage:
  vault_file: /file/vault.json
web:
  port: "9090"
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.VaultFile() != "/env/vault.json" {
		t.Errorf("expected env vault override, got %q", cfg.VaultFile())
	}
	if cfg.SessionFile() != "/env/session.json" {
		t.Errorf("expected env session override, got %q", cfg.SessionFile())
	}
	if cfg.Web.Port != "7000" {
		t.Errorf("expected env port override, got %q", cfg.Web.Port)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"unsupported format", "defaults:\n  format: xml\n"},
		{"non-numeric port", "web:\n  port: http\n"},
		{"port out of range", "web:\n  port: \"70000\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, configDir)
	chdir(t, t.TempDir())

	if got := FindConfigFile(); got != "" {
		t.Errorf("expected no config file, got %q", got)
	}

	standard := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(standard, []byte("defaults:\n  format: yaml\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != standard {
		t.Errorf("expected %q, got %q", standard, got)
	}

	if err := os.WriteFile(".llm-sanitizer.yaml", []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != ".llm-sanitizer.yaml" {
		t.Errorf("expected project config to win, got %q", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte(EnvPort+"=6060\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPort, "")
	os.Unsetenv(EnvPort)

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv(EnvPort); got != "6060" {
		t.Errorf("expected %s=6060 from .env, got %q", EnvPort, got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestContainsField(t *testing.T) {
	data := []byte("numbers:\n  include_currency: false\n")

	if !containsField(data, "numbers", "include_currency") {
		t.Error("expected numbers.include_currency to be found")
	}
	if containsField(data, "numbers", "include_integers") {
		t.Error("expected numbers.include_integers to be absent")
	}
	if containsField(data, "web", "port") {
		t.Error("expected web.port to be absent")
	}
}
