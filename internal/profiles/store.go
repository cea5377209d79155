// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"llm-sanitizer/internal/paths"
	"llm-sanitizer/internal/sanitizer"
	"llm-sanitizer/internal/security"

	"gopkg.in/yaml.v3"
)

const storeComponent = "store"

// Store persists a Vault in a single file. Files ending in .yaml or .yml are
// written as YAML; anything else is JSON.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by path. An empty path uses the default
// vault file in the configuration directory.
func NewStore(path string) *Store {
	if path == "" {
		path = paths.GetVaultFile()
	}
	return &Store{path: path}
}

// Path returns the vault file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the vault. A missing file yields DefaultVault.
func (s *Store) Load() (*Vault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save writes the vault with owner-only permissions
func (s *Store) Save(vault *Vault) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(vault)
}

// Update loads the vault, applies fn and saves the result when fn succeeds.
// The whole cycle holds the store lock.
func (s *Store) Update(fn func(*Vault) error) (*Vault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := fn(vault); err != nil {
		return nil, err
	}
	if err := s.save(vault); err != nil {
		return nil, err
	}
	return vault, nil
}

func (s *Store) load() (*Vault, error) {
	data, err := os.ReadFile(filepath.Clean(s.path))
	if errors.Is(err, os.ErrNotExist) {
		return DefaultVault(), nil
	}
	if err != nil {
		return nil, NewError(ErrorFileSystem, "failed to read vault", storeComponent, err)
	}

	vault := &Vault{}
	err = security.WipeAfter(data, func(raw []byte) error {
		if s.isYAML() {
			return yaml.Unmarshal(raw, vault)
		}
		return json.Unmarshal(raw, vault)
	})
	if err != nil {
		return nil, NewError(ErrorParse, fmt.Sprintf("failed to parse vault %s", s.path), storeComponent, err)
	}
	for i := range vault.Profiles {
		if vault.Profiles[i].Terms == nil {
			vault.Profiles[i].Terms = []sanitizer.Term{}
		}
	}
	return vault, nil
}

func (s *Store) save(vault *Vault) error {
	if vault == nil {
		return NewError(ErrorInvalidInput, "vault is nil", storeComponent, nil)
	}

	var data []byte
	var err error
	if s.isYAML() {
		data, err = yaml.Marshal(vault)
	} else {
		data, err = json.MarshalIndent(vault, "", "  ")
	}
	if err != nil {
		return NewError(ErrorFileSystem, "failed to encode vault", storeComponent, err)
	}

	defer security.Wipe(data)
	if err := paths.WriteFilePrivate(s.path, data); err != nil {
		return NewError(ErrorFileSystem, "failed to write vault", storeComponent, err)
	}
	return nil
}

func (s *Store) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(s.path))
	return ext == ".yaml" || ext == ".yml"
}
