// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "llm-sanitizer"

// Environment overrides
const (
	EnvConfigDir   = "LLM_SANITIZER_CONFIG_DIR"
	EnvVaultFile   = "LLM_SANITIZER_VAULT"
	EnvSessionFile = "LLM_SANITIZER_SESSION"
)

// GetConfigDir returns the llm-sanitizer configuration directory
// Uses APPDATA on Windows and XDG_CONFIG_HOME or the home directory elsewhere
func GetConfigDir() string {
	// Check for explicit override first (works on all platforms)
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName)
		}
		if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
			return filepath.Join(userProfile, "."+appDirName)
		}
		return "." + appDirName
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appDirName
	}
	return filepath.Join(home, "."+appDirName)
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetVaultFile returns the path to the profile vault
func GetVaultFile() string {
	if file := os.Getenv(EnvVaultFile); file != "" {
		return file
	}
	return filepath.Join(GetConfigDir(), "vault.json")
}

// GetSessionFile returns the path to the current numeric session
func GetSessionFile() string {
	if file := os.Getenv(EnvSessionFile); file != "" {
		return file
	}
	return filepath.Join(GetConfigDir(), "session.json")
}

// WriteFilePrivate writes data to path with owner-only permissions, creating
// the parent directory if needed. The file is replaced atomically so readers
// never observe a partial vault or session.
func WriteFilePrivate(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// RemoveIfExists deletes path, treating a missing file as success
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
