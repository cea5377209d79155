// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package profiles

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backupTime = time.Date(2024, 5, 17, 9, 30, 15, 123000000, time.UTC)

func TestExportImportRoundTrip(t *testing.T) {
	profiles := DefaultVault().Profiles

	data, err := Export(profiles, backupTime)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "1.0", doc["version"])
	assert.Equal(t, "2024-05-17T09:30:15.123Z", doc["exportDate"])

	imported, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, profiles, imported)
}

func TestBackupFilename(t *testing.T) {
	assert.Equal(t, "llm-sanitizer-backup-2024-05-17T09-30-15.json", BackupFilename(backupTime))
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantType  ErrorType
		wantField string
	}{
		{
			name:     "not json",
			data:     `{"version": "1.0",`,
			wantType: ErrorParse,
		},
		{
			name:      "not an object",
			data:      `[1, 2, 3]`,
			wantType:  ErrorValidation,
			wantField: "$",
		},
		{
			name:      "missing version",
			data:      `{"exportDate": "2024-01-01T00:00:00Z", "profiles": []}`,
			wantType:  ErrorValidation,
			wantField: "version",
		},
		{
			name:      "numeric export date",
			data:      `{"version": "1.0", "exportDate": 5, "profiles": []}`,
			wantType:  ErrorValidation,
			wantField: "exportDate",
		},
		{
			name:      "profiles not a list",
			data:      `{"version": "1.0", "exportDate": "x", "profiles": {}}`,
			wantType:  ErrorValidation,
			wantField: "profiles",
		},
		{
			name:      "profile without name",
			data:      `{"version": "1.0", "exportDate": "x", "profiles": [{"id": "a", "terms": []}]}`,
			wantType:  ErrorValidation,
			wantField: "profiles[0].name",
		},
		{
			name: "term with string flag",
			data: `{"version": "1.0", "exportDate": "x", "profiles": [
				{"id": "a", "name": "A", "terms": []},
				{"id": "b", "name": "B", "terms": [{"id": "t", "original": "o", "placeholder": "p", "isActive": "yes"}]}
			]}`,
			wantType:  ErrorValidation,
			wantField: "profiles[1].terms[0].isActive",
		},
		{
			name: "term without placeholder",
			data: `{"version": "1.0", "exportDate": "x", "profiles": [
				{"id": "a", "name": "A", "terms": [{"id": "t", "original": "o", "isActive": true}]}
			]}`,
			wantType:  ErrorValidation,
			wantField: "profiles[0].terms[0].placeholder",
		},
		{
			name:     "no profiles",
			data:     `{"version": "1.0", "exportDate": "x", "profiles": []}`,
			wantType: ErrorEmptyBackup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles, err := Import([]byte(tt.data))

			assert.Nil(t, profiles)
			var pe *Error
			require.True(t, errors.As(err, &pe), "expected *profiles.Error, got %T", err)
			assert.Equal(t, tt.wantType, pe.Type)
			assert.Equal(t, tt.wantField, pe.Field)
		})
	}
}

func TestImportErrorMessages(t *testing.T) {
	_, err := Import([]byte("nope"))
	assert.Contains(t, err.Error(), "Invalid JSON file")

	_, err = Import([]byte(`{}`))
	assert.Contains(t, err.Error(), "Invalid backup file format")
	assert.Contains(t, err.Error(), "(field: version)")

	_, err = Import([]byte(`{"version": "1.0", "exportDate": "x", "profiles": []}`))
	assert.Equal(t, "Backup file contains no profiles.", err.Error())
}

func TestImportAllowsEmptyTermStrings(t *testing.T) {
	data := `{"version": "1.0", "exportDate": "x", "profiles": [
		{"id": "a", "name": "A", "terms": [{"id": "t", "original": "", "placeholder": "", "isActive": false}]}
	]}`

	profiles, err := Import([]byte(data))

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "", profiles[0].Terms[0].Original)
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "parse", ErrorParse.String())
	assert.Equal(t, "validation", ErrorValidation.String())
	assert.Equal(t, "empty_backup", ErrorEmptyBackup.String())
	assert.Equal(t, "not_found", ErrorNotFound.String())
	assert.Equal(t, "invalid_input", ErrorInvalidInput.String())
	assert.Equal(t, "file_system", ErrorFileSystem.String())
	assert.Equal(t, "unknown", ErrorType(99).String())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewError(ErrorFileSystem, "failed to write vault", "store", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to write vault: disk full", err.Error())
}
