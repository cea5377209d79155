// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sanitizer replaces user-listed terms and numeric values in text with
// opaque placeholders and restores them once a response comes back.
//
// Term placeholders ({{SEC_XXXXXXXX}}) are fixed per term. Numeric
// placeholders ({{NUM_NNN}}) are assigned per occurrence and recorded in a
// SanitizationSession, which is the only thing that can reverse them.
package sanitizer

// Placeholder prefixes. Term and numeric placeholders never share a prefix so
// they can be restored independently.
const (
	TermPlaceholderPrefix   = "{{SEC_"
	NumberPlaceholderPrefix = "{{NUM_"
	PlaceholderSuffix       = "}}"

	// TermTokenLength is the number of random characters in a term placeholder
	TermTokenLength = 8

	// SessionIDLength is the number of random characters in a session id
	SessionIDLength = 9
)

// Term is a user-registered literal string paired with a fixed placeholder
type Term struct {
	ID          string `json:"id" yaml:"id"`
	Original    string `json:"original" yaml:"original"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	IsActive    bool   `json:"isActive" yaml:"is_active"`
}

// NumberSanitizeOptions controls which numeric sub-patterns participate in
// one sanitize call
type NumberSanitizeOptions struct {
	Enabled             bool `json:"enabled" yaml:"enabled"`
	IncludeIntegers     bool `json:"includeIntegers" yaml:"include_integers"`
	IncludeDecimals     bool `json:"includeDecimals" yaml:"include_decimals"`
	IncludeMeasurements bool `json:"includeMeasurements" yaml:"include_measurements"`
	IncludeCurrency     bool `json:"includeCurrency" yaml:"include_currency"`
}

// DefaultNumberOptions returns numeric sanitization switched off with every
// sub-pattern selected, so enabling it covers all numeric forms.
func DefaultNumberOptions() NumberSanitizeOptions {
	return NumberSanitizeOptions{
		Enabled:             false,
		IncludeIntegers:     true,
		IncludeDecimals:     true,
		IncludeMeasurements: true,
		IncludeCurrency:     true,
	}
}

// NumberMapping records one replaced numeric occurrence
type NumberMapping struct {
	// Placeholder is the {{NUM_NNN}} token written into the output
	Placeholder string `json:"placeholder" yaml:"placeholder"`

	// Original is the matched text, including any unit or currency symbol
	Original string `json:"original" yaml:"original"`

	// Position is the zero-based character offset of the match in the text
	// before replacement
	Position int `json:"position" yaml:"position"`
}

// SanitizationSession is the one-shot record needed to reverse the numeric
// placeholders of exactly one SanitizeNumbers call.
type SanitizationSession struct {
	ID             string          `json:"id" yaml:"id"`
	Timestamp      int64           `json:"timestamp" yaml:"timestamp"`
	NumberMappings []NumberMapping `json:"numberMappings" yaml:"number_mappings"`
}

// EmptySession returns the session produced when nothing was replaced
func EmptySession() SanitizationSession {
	return SanitizationSession{NumberMappings: []NumberMapping{}}
}

// IsEmpty reports whether the session holds no mappings
func (s *SanitizationSession) IsEmpty() bool {
	return s == nil || len(s.NumberMappings) == 0
}

// SanitizeResult is the outcome of the full term + number pipeline
type SanitizeResult struct {
	Result             string              `json:"result" yaml:"result"`
	TermReplacements   int                 `json:"termReplacements" yaml:"term_replacements"`
	NumberReplacements int                 `json:"numberReplacements" yaml:"number_replacements"`
	Session            SanitizationSession `json:"session" yaml:"session"`
	OriginalLength     int                 `json:"originalLength" yaml:"original_length"`
	SanitizedLength    int                 `json:"sanitizedLength" yaml:"sanitized_length"`
}

// TotalReplacements returns term and number replacements combined
func (r SanitizeResult) TotalReplacements() int {
	return r.TermReplacements + r.NumberReplacements
}
