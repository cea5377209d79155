// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// isWordByte reports whether b is an ASCII letter, digit or underscore
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// sanitizeTerms replaces every active term with its placeholder, longest
// original first so a term is never pre-empted by a shorter term it contains.
func sanitizeTerms(text string, terms []Term) (string, int) {
	result := text
	count := 0
	for _, term := range activeTermsByLength(terms) {
		var n int
		result, n = replaceTerm(result, term)
		count += n
	}
	return result, count
}

// activeTermsByLength filters out inactive and blank terms and orders the
// rest by descending character length, keeping input order for ties.
func activeTermsByLength(terms []Term) []Term {
	active := make([]Term, 0, len(terms))
	for _, term := range terms {
		if !term.IsActive || strings.TrimSpace(term.Original) == "" {
			continue
		}
		active = append(active, term)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return utf8.RuneCountInString(active[i].Original) > utf8.RuneCountInString(active[j].Original)
	})
	return active
}

// replaceTerm performs one left-to-right, non-overlapping scan for the term.
// Terms that begin and end with word characters only match between word
// boundaries; anything else matches as a plain substring.
func replaceTerm(text string, term Term) (string, int) {
	needle := term.Original
	bounded := isWordByte(needle[0]) && isWordByte(needle[len(needle)-1])

	var b strings.Builder
	count := 0
	copied := 0
	for i := 0; i <= len(text)-len(needle); {
		j := strings.Index(text[i:], needle)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(needle)
		if bounded && !atWordBoundary(text, start, end) {
			i = start + 1
			continue
		}
		if count == 0 {
			b.Grow(len(text))
		}
		b.WriteString(text[copied:start])
		b.WriteString(term.Placeholder)
		copied = end
		i = end
		count++
	}
	if count == 0 {
		return text, 0
	}
	b.WriteString(text[copied:])
	return b.String(), count
}

// atWordBoundary reports whether text[start:end] is not glued to a word
// character on either side
func atWordBoundary(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}
