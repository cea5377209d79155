// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package profiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// BackupVersion is written into every exported backup document
	BackupVersion = "1.0"

	backupComponent = "backup"

	invalidJSONMessage   = "Invalid JSON file. Please select a valid backup file."
	invalidBackupMessage = "Invalid backup file format. Please ensure the file is a valid LLM Sanitizer backup."
	emptyBackupMessage   = "Backup file contains no profiles."
)

// BackupData is the portable document profiles are exported to and imported
// from
type BackupData struct {
	Version    string    `json:"version"`
	ExportDate string    `json:"exportDate"`
	Profiles   []Profile `json:"profiles"`
}

// Export encodes profiles as an indented backup document stamped with now
func Export(profiles []Profile, now time.Time) ([]byte, error) {
	if profiles == nil {
		profiles = []Profile{}
	}
	backup := BackupData{
		Version:    BackupVersion,
		ExportDate: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Profiles:   profiles,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, NewError(ErrorInvalidInput, "failed to encode backup", backupComponent, err)
	}
	return data, nil
}

// BackupFilename returns the suggested file name for a backup taken at now
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("llm-sanitizer-backup-%s.json", now.UTC().Format("2006-01-02T15-04-05"))
}

// Import decodes and validates a backup document. Malformed JSON is reported
// as ErrorParse, a document that does not match the backup schema as
// ErrorValidation naming the offending field, and a valid document without
// profiles as ErrorEmptyBackup.
func Import(data []byte) ([]Profile, error) {
	var raw interface{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return nil, NewError(ErrorParse, invalidJSONMessage, backupComponent, err)
	}

	if err := validateBackup(raw); err != nil {
		return nil, err
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, NewError(ErrorValidation, invalidBackupMessage, backupComponent, err)
	}
	if len(backup.Profiles) == 0 {
		return nil, NewError(ErrorEmptyBackup, emptyBackupMessage, backupComponent, nil)
	}
	return backup.Profiles, nil
}

// validateBackup checks the decoded document against the backup schema and
// returns an error naming the first field that does not conform
func validateBackup(raw interface{}) error {
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return newFieldError("$")
	}
	if !nonEmptyString(doc["version"]) {
		return newFieldError("version")
	}
	if !nonEmptyString(doc["exportDate"]) {
		return newFieldError("exportDate")
	}
	profiles, ok := doc["profiles"].([]interface{})
	if !ok {
		return newFieldError("profiles")
	}

	for i, rawProfile := range profiles {
		field := fmt.Sprintf("profiles[%d]", i)
		profile, ok := rawProfile.(map[string]interface{})
		if !ok {
			return newFieldError(field)
		}
		if !nonEmptyString(profile["id"]) {
			return newFieldError(field + ".id")
		}
		if !nonEmptyString(profile["name"]) {
			return newFieldError(field + ".name")
		}
		terms, ok := profile["terms"].([]interface{})
		if !ok {
			return newFieldError(field + ".terms")
		}

		for j, rawTerm := range terms {
			termField := fmt.Sprintf("%s.terms[%d]", field, j)
			term, ok := rawTerm.(map[string]interface{})
			if !ok {
				return newFieldError(termField)
			}
			if !nonEmptyString(term["id"]) {
				return newFieldError(termField + ".id")
			}
			if _, ok := term["original"].(string); !ok {
				return newFieldError(termField + ".original")
			}
			if _, ok := term["placeholder"].(string); !ok {
				return newFieldError(termField + ".placeholder")
			}
			if _, ok := term["isActive"].(bool); !ok {
				return newFieldError(termField + ".isActive")
			}
		}
	}
	return nil
}

func nonEmptyString(v interface{}) bool {
	s, ok := v.(string)
	return ok && s != ""
}
