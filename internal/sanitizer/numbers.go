// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"strings"
	"time"
	"unicode/utf8"
)

// numberSpan is a discovered match together with its assigned placeholder
type numberSpan struct {
	Match
	placeholder string
	position    int
}

// sanitizeNumbers replaces every numeric occurrence with its own placeholder.
//
// Three orderings are kept apart: placeholders are numbered in discovery
// order, the output is assembled in one forward pass over the spans, and the
// stored mappings are ordered by placeholder sequence.
func sanitizeNumbers(text string, opts NumberSanitizeOptions, tokens TokenSource, now func() time.Time) (string, SanitizationSession, int) {
	pattern, ok := BuildPattern(opts)
	if !ok {
		return text, EmptySession(), 0
	}
	matches := pattern.FindAll(text)
	if len(matches) == 0 {
		return text, EmptySession(), 0
	}

	spans := discoverSpans(text, matches)
	result := applySpans(text, spans)

	mappings := make([]NumberMapping, len(spans))
	for i, span := range spans {
		mappings[i] = NumberMapping{
			Placeholder: span.placeholder,
			Original:    span.Text,
			Position:    span.position,
		}
	}

	session := SanitizationSession{
		ID:             tokens.Token(SessionIDLength),
		Timestamp:      now().UnixMilli(),
		NumberMappings: mappings,
	}
	return result, session, len(spans)
}

// discoverSpans numbers matches by first occurrence and converts their byte
// offsets to character offsets.
func discoverSpans(text string, matches []Match) []numberSpan {
	spans := make([]numberSpan, len(matches))
	chars := 0
	last := 0
	for i, m := range matches {
		chars += utf8.RuneCountInString(text[last:m.Start])
		last = m.Start
		spans[i] = numberSpan{
			Match:       m,
			placeholder: numberPlaceholder(i + 1),
			position:    chars,
		}
	}
	return spans
}

// applySpans copies unmatched text and substitutes matched spans in a single
// forward pass over the immutable original.
func applySpans(text string, spans []numberSpan) string {
	var b strings.Builder
	b.Grow(len(text))
	copied := 0
	for _, span := range spans {
		b.WriteString(text[copied:span.Start])
		b.WriteString(span.placeholder)
		copied = span.End
	}
	b.WriteString(text[copied:])
	return b.String()
}
