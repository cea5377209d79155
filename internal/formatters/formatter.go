// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"

	"llm-sanitizer/internal/sanitizer"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose bool // Whether to list every numeric mapping
	NoColor bool // Whether to disable colored output
}

// Report is the outcome of one sanitize or restore run
type Report struct {
	Operation          string                         `json:"operation" yaml:"operation"`
	Profile            string                         `json:"profile,omitempty" yaml:"profile,omitempty"`
	Result             string                         `json:"result" yaml:"result"`
	TermReplacements   int                            `json:"termReplacements" yaml:"term_replacements"`
	NumberReplacements int                            `json:"numberReplacements" yaml:"number_replacements"`
	Replacements       int                            `json:"replacements" yaml:"replacements"`
	OriginalLength     int                            `json:"originalLength" yaml:"original_length"`
	ResultLength       int                            `json:"resultLength" yaml:"result_length"`
	Session            *sanitizer.SanitizationSession `json:"session,omitempty" yaml:"session,omitempty"`
}

// NewSanitizeReport builds a report from a sanitize pipeline result
func NewSanitizeReport(profile string, result sanitizer.SanitizeResult) Report {
	report := Report{
		Operation:          "sanitize",
		Profile:            profile,
		Result:             result.Result,
		TermReplacements:   result.TermReplacements,
		NumberReplacements: result.NumberReplacements,
		Replacements:       result.TotalReplacements(),
		OriginalLength:     result.OriginalLength,
		ResultLength:       result.SanitizedLength,
	}
	if !result.Session.IsEmpty() {
		session := result.Session
		report.Session = &session
	}
	return report
}

// NewRestoreReport builds a report from a restore run
func NewRestoreReport(profile, input, result string, replacements int) Report {
	return Report{
		Operation:      "restore",
		Profile:        profile,
		Result:         result,
		Replacements:   replacements,
		OriginalLength: len([]rune(input)),
		ResultLength:   len([]rune(result)),
	}
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the report in the formatter's specific output format
	Format(report Report, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "yaml")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatInfo provides metadata about a formatter for web integration
type FormatInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
	MimeType    string `json:"mimeType"`
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders report with the named formatter from the default registry
func Export(format string, report Report, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(report, options)
}

// ExportForWeb renders report and returns the MIME type and download name
func ExportForWeb(format string, report Report, options FormatterOptions) (content string, mimeType string, filename string, err error) {
	content, err = Export(format, report, options)
	if err != nil {
		return "", "", "", err
	}

	info := GetFormatInfo(format)
	return content, info.MimeType, "llm-sanitizer-" + report.Operation + info.Extension, nil
}

// GetFormatInfo returns metadata about a specific formatter
func GetFormatInfo(name string) FormatInfo {
	formatter, exists := Get(name)
	if !exists {
		return FormatInfo{}
	}

	info := FormatInfo{
		Name:        formatter.Name(),
		Description: formatter.Description(),
		Extension:   formatter.FileExtension(),
	}

	switch name {
	case "json":
		info.MimeType = "application/json"
	case "yaml":
		info.MimeType = "application/x-yaml"
	case "text":
		info.MimeType = "text/plain"
	default:
		info.MimeType = "application/octet-stream"
	}

	return info
}

// GetSupportedFormats returns information about all available formatters
func GetSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, name := range List() {
		formats = append(formats, GetFormatInfo(name))
	}
	return formats
}

// WithoutMappings returns a copy of session that keeps the id and timestamp
// but drops the mappings, which contain the original values
func WithoutMappings(session *sanitizer.SanitizationSession) *sanitizer.SanitizationSession {
	if session == nil {
		return nil
	}
	return &sanitizer.SanitizationSession{
		ID:             session.ID,
		Timestamp:      session.Timestamp,
		NumberMappings: []sanitizer.NumberMapping{},
	}
}
