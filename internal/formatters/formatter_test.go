// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"encoding/json"
	"testing"

	"llm-sanitizer/internal/formatters"
	_ "llm-sanitizer/internal/formatters/json"
	_ "llm-sanitizer/internal/formatters/text"
	_ "llm-sanitizer/internal/formatters/yaml"
	"llm-sanitizer/internal/sanitizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() sanitizer.SanitizeResult {
	return sanitizer.SanitizeResult{
		Result:             "{{SEC_AAAAAAAA}} took {{NUM_001}}",
		TermReplacements:   1,
		NumberReplacements: 1,
		OriginalLength:     17,
		SanitizedLength:    32,
		Session: sanitizer.SanitizationSession{
			ID:        "ABCDEFGHI",
			Timestamp: 1709294400000,
			NumberMappings: []sanitizer.NumberMapping{
				{Placeholder: "{{NUM_001}}", Original: "5 mg", Position: 11},
			},
		},
	}
}

func TestRegisteredFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "text", "yaml"}, formatters.List())

	info := formatters.GetFormatInfo("yaml")
	assert.Equal(t, "application/x-yaml", info.MimeType)
	assert.Equal(t, ".yaml", info.Extension)
	assert.Equal(t, formatters.FormatInfo{}, formatters.GetFormatInfo("sarif"))
	assert.Len(t, formatters.GetSupportedFormats(), 3)
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := formatters.Export("csv", formatters.Report{}, formatters.FormatterOptions{})
	assert.ErrorContains(t, err, "Available formats: json, text, yaml")
}

func TestNewSanitizeReport(t *testing.T) {
	report := formatters.NewSanitizeReport("Work", sampleResult())

	assert.Equal(t, "sanitize", report.Operation)
	assert.Equal(t, 2, report.Replacements)
	require.NotNil(t, report.Session)
	assert.Equal(t, "ABCDEFGHI", report.Session.ID)

	empty := formatters.NewSanitizeReport("Work", sanitizer.SanitizeResult{Session: sanitizer.EmptySession()})
	assert.Nil(t, empty.Session)
}

func TestJSONFormatHidesMappingsUnlessVerbose(t *testing.T) {
	report := formatters.NewSanitizeReport("Work", sampleResult())

	out, err := formatters.Export("json", report, formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.NotContains(t, out, "5 mg")

	var decoded formatters.Report
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, report.Result, decoded.Result)
	assert.Equal(t, "ABCDEFGHI", decoded.Session.ID)

	verbose, err := formatters.Export("json", report, formatters.FormatterOptions{Verbose: true})
	require.NoError(t, err)
	assert.Contains(t, verbose, "5 mg")

	// the caller's report is left untouched
	assert.Len(t, report.Session.NumberMappings, 1)
}

func TestYAMLFormat(t *testing.T) {
	report := formatters.NewRestoreReport("Work", "{{NUM_001}}", "5 mg", 1)

	out, err := formatters.Export("yaml", report, formatters.FormatterOptions{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "restore", decoded["operation"])
	assert.Equal(t, "5 mg", decoded["result"])
	assert.Equal(t, 1, decoded["replacements"])
	assert.NotContains(t, decoded, "session")
}

func TestTextFormat(t *testing.T) {
	opts := formatters.FormatterOptions{NoColor: true, Verbose: true}

	out, err := formatters.Export("text", formatters.NewSanitizeReport("Work", sampleResult()), opts)
	require.NoError(t, err)
	assert.Contains(t, out, `Sanitized with profile "Work"`)
	assert.Contains(t, out, "Terms replaced: 1")
	assert.Contains(t, out, "Numbers replaced: 1")
	assert.Contains(t, out, "Session: ABCDEFGHI (2024-03-01T12:00:00Z)")
	assert.Contains(t, out, `{{NUM_001}}  "5 mg"  @11`)

	out, err = formatters.Export("text", formatters.NewRestoreReport("", "plain", "plain", 0), opts)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored\n")
	assert.Contains(t, out, "No placeholders applied.")
}

func TestExportForWeb(t *testing.T) {
	content, mimeType, filename, err := formatters.ExportForWeb("json", formatters.NewRestoreReport("", "a", "a", 0), formatters.FormatterOptions{})

	require.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Equal(t, "application/json", mimeType)
	assert.Equal(t, "llm-sanitizer-restore.json", filename)
}
