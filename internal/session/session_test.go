// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"os"
	"path/filepath"
	"testing"

	"llm-sanitizer/internal/sanitizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() sanitizer.SanitizationSession {
	return sanitizer.SanitizationSession{
		ID:        "K3J9X2M1Q",
		Timestamp: 1709294400000,
		NumberMappings: []sanitizer.NumberMapping{
			{Placeholder: "{{NUM_001}}", Original: "5 mg", Position: 6},
			{Placeholder: "{{NUM_002}}", Original: "$100", Position: 17},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(sampleSession()))
	loaded, err := store.Load()

	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sampleSession(), *loaded)
}

func TestStoreLoadMissing(t *testing.T) {
	loaded, err := NewStore(filepath.Join(t.TempDir(), "session.json")).Load()

	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStoreSaveEmptyClears(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(sampleSession()))

	require.NoError(t, store.Save(sanitizer.EmptySession()))

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStoreReplacesPreviousSession(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(sampleSession()))

	next := sanitizer.SanitizationSession{
		ID:             "NEXT00001",
		Timestamp:      1709294500000,
		NumberMappings: []sanitizer.NumberMapping{{Placeholder: "{{NUM_001}}", Original: "7"}},
	}
	require.NoError(t, store.Save(next))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, next, *loaded)
}

func TestStoreClear(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, store.Clear())

	require.NoError(t, store.Save(sampleSession()))
	require.NoError(t, store.Clear())

	_, err := os.Stat(store.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))

	_, err := NewStore(path).Load()

	assert.ErrorContains(t, err, "failed to parse session")
}
