// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var currencySymbols = []string{"$", "€", "£", "¥"}

// Pattern matches numeric tokens for one combination of options. It is an
// explicit scanner over the numeric literal grammar:
//
//	number   = ["-"] ( int [ frac ] | frac ) [ exp ]
//	int      = digit{1,3} ( "," digit{3} )+ | digit+
//	frac     = "." digit+
//	exp      = ( "e" | "E" ) [ "+" | "-" ] digit+
//	measured = number [ space* unit ]
//	currency = ( "$" | "€" | "£" | "¥" ) space* number
//
// A match is never preceded by a word character or '.', and never followed
// by a word character.
type Pattern struct {
	integers     bool
	decimals     bool
	measurements bool
	currency     bool
}

// Match is one numeric token found in the scanned text. Start and End are
// byte offsets.
type Match struct {
	Start int
	End   int
	Text  string
}

// BuildPattern returns the matcher for opts, or false when opts cannot match
// anything (disabled, or neither integers nor decimals selected).
func BuildPattern(opts NumberSanitizeOptions) (*Pattern, bool) {
	if !opts.Enabled {
		return nil, false
	}
	if !opts.IncludeIntegers && !opts.IncludeDecimals {
		return nil, false
	}
	return &Pattern{
		integers:     opts.IncludeIntegers,
		decimals:     opts.IncludeDecimals,
		measurements: opts.IncludeMeasurements,
		currency:     opts.IncludeCurrency,
	}, true
}

// FindAll scans text once, left to right, and returns the non-overlapping
// matches in order of occurrence.
func (p *Pattern) FindAll(text string) []Match {
	if p == nil {
		return nil
	}
	var matches []Match
	for i := 0; i < len(text); {
		if end, ok := p.matchAt(text, i); ok {
			matches = append(matches, Match{Start: i, End: end, Text: text[i:end]})
			i = end
			continue
		}
		i++
	}
	return matches
}

func (p *Pattern) matchAt(text string, i int) (int, bool) {
	if i > 0 && (isWordByte(text[i-1]) || text[i-1] == '.') {
		return 0, false
	}
	if p.currency {
		if end, ok := p.matchCurrency(text, i); ok {
			return end, true
		}
	}
	return p.matchMeasured(text, i)
}

func (p *Pattern) matchCurrency(text string, i int) (int, bool) {
	for _, symbol := range currencySymbols {
		if !strings.HasPrefix(text[i:], symbol) {
			continue
		}
		start := skipSpace(text, i+len(symbol))
		for _, end := range p.numberEnds(text, start) {
			if boundaryAfter(text, end) {
				return end, true
			}
		}
		return 0, false
	}
	return 0, false
}

func (p *Pattern) matchMeasured(text string, i int) (int, bool) {
	for _, end := range p.numberEnds(text, i) {
		if p.measurements {
			if unitEnd, ok := matchUnit(text, skipSpace(text, end)); ok {
				return unitEnd, true
			}
		}
		if boundaryAfter(text, end) {
			return end, true
		}
	}
	return 0, false
}

// numberEnds returns every end offset at which a numeric literal starting at
// i could stop, longest first. Backtracking over these candidates is what a
// greedy regular expression would do; the list is short because only
// digit-group and optional-suffix boundaries produce candidates.
func (p *Pattern) numberEnds(text string, i int) []int {
	pos := i
	if pos < len(text) && text[pos] == '-' {
		pos++
	}
	if pos >= len(text) || !(isDigit(text[pos]) || text[pos] == '.') {
		return nil
	}

	var mantissas []int
	run := digitRun(text, pos)
	intEnds := []int{}
	if run > 0 {
		intEnds = append(intEnds, pos+run)
		if run <= 3 {
			g := pos + run
			for g+4 <= len(text) && text[g] == ',' && digitRun(text[:g+4], g+1) == 3 {
				g += 4
				intEnds = append(intEnds, g)
			}
		}
	} else {
		// empty integer part: only a fraction can follow
		intEnds = append(intEnds, pos)
	}

	for _, ie := range intEnds {
		if p.decimals && ie < len(text) && text[ie] == '.' {
			if frac := digitRun(text, ie+1); frac > 0 {
				mantissas = append(mantissas, ie+1+frac)
			}
		}
		if p.integers && ie > pos {
			mantissas = append(mantissas, ie)
		}
	}

	ends := make([]int, 0, len(mantissas)*2)
	for _, m := range mantissas {
		if e, ok := exponentEnd(text, m); ok {
			ends = append(ends, e)
		}
		ends = append(ends, m)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ends)))
	return dedupeSorted(ends)
}

func exponentEnd(text string, m int) (int, bool) {
	if m >= len(text) || (text[m] != 'e' && text[m] != 'E') {
		return 0, false
	}
	k := m + 1
	if k < len(text) && (text[k] == '+' || text[k] == '-') {
		k++
	}
	run := digitRun(text, k)
	if run == 0 {
		return 0, false
	}
	return k + run, true
}

// matchUnit tries the vocabulary longest first at offset k and returns the
// end of the first unit that is not glued to a following word character.
func matchUnit(text string, k int) (int, bool) {
	rest := text[k:]
	for _, unit := range matchUnits {
		if len(rest) < len(unit) || !strings.EqualFold(rest[:len(unit)], unit) {
			continue
		}
		if boundaryAfter(text, k+len(unit)) {
			return k + len(unit), true
		}
	}
	return 0, false
}

// skipSpace advances over horizontal whitespace; a number and its unit or
// currency symbol never span lines.
func skipSpace(text string, k int) int {
	for k < len(text) {
		r, size := utf8.DecodeRuneInString(text[k:])
		if r == '\n' || r == '\r' || !unicode.IsSpace(r) {
			break
		}
		k += size
	}
	return k
}

func boundaryAfter(text string, end int) bool {
	return end >= len(text) || !isWordByte(text[end])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func digitRun(text string, k int) int {
	n := 0
	for k+n < len(text) && isDigit(text[k+n]) {
		n++
	}
	return n
}

func dedupeSorted(values []int) []int {
	if len(values) < 2 {
		return values
	}
	out := values[:1]
	for _, v := range values[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
