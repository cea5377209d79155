// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import "strings"

// restore reverses term placeholders and, when a session is supplied, the
// numeric placeholders it recorded. Without a session numeric placeholders
// are left as they are.
func restore(text string, terms []Term, session *SanitizationSession) (string, int) {
	result := text
	count := 0
	for _, rule := range restoreRules(terms, session) {
		var n int
		result, n = replaceLiteral(result, rule[0], rule[1])
		count += n
	}
	return result, count
}

// replaceLiteral replaces every occurrence of old with replacement
func replaceLiteral(text, old, replacement string) (string, int) {
	if old == "" {
		return text, 0
	}
	n := strings.Count(text, old)
	if n == 0 {
		return text, 0
	}
	return strings.ReplaceAll(text, old, replacement), n
}

// restoreRules lists the placeholder -> original pairs restore applies, in
// application order
func restoreRules(terms []Term, session *SanitizationSession) [][2]string {
	var rules [][2]string
	for _, term := range terms {
		if term.IsActive && term.Placeholder != "" {
			rules = append(rules, [2]string{term.Placeholder, term.Original})
		}
	}
	if !session.IsEmpty() {
		for _, mapping := range session.NumberMappings {
			if mapping.Placeholder != "" {
				rules = append(rules, [2]string{mapping.Placeholder, mapping.Original})
			}
		}
	}
	return rules
}
