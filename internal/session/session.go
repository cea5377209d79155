// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package session keeps the numeric session of the last sanitize run on disk
// so a later restore can reverse its placeholders.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"llm-sanitizer/internal/paths"
	"llm-sanitizer/internal/sanitizer"
	"llm-sanitizer/internal/security"
)

// Store is the "current session" slot. Each save replaces the previous
// session; sessions are never merged.
type Store struct {
	Path string
}

// NewStore creates a session store at path, or at the default session file
// when path is empty
func NewStore(path string) *Store {
	if path == "" {
		path = paths.GetSessionFile()
	}
	return &Store{Path: path}
}

// Save records session as the current one. An empty session clears the slot,
// since there is nothing it could restore.
func (s *Store) Save(session sanitizer.SanitizationSession) error {
	if session.IsEmpty() {
		return s.Clear()
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	defer security.Wipe(data)
	if err := paths.WriteFilePrivate(s.Path, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the current session, or nil when there is none
func (s *Store) Load() (*sanitizer.SanitizationSession, error) {
	data, err := os.ReadFile(filepath.Clean(s.Path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session sanitizer.SanitizationSession
	if err := security.WipeAfter(data, func(raw []byte) error { return json.Unmarshal(raw, &session) }); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", s.Path, err)
	}
	return &session, nil
}

// Clear discards the current session
func (s *Store) Clear() error {
	if err := paths.RemoveIfExists(s.Path); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
