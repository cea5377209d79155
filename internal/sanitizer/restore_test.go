// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestore(t *testing.T) {
	terms := []Term{
		term("Project Orion", "{{SEC_PROJ0001}}"),
		{Original: "hidden", Placeholder: "{{SEC_OFF00001}}", IsActive: false},
		{Original: "blank", Placeholder: "", IsActive: true},
	}
	session := &SanitizationSession{
		ID: "ABC123XYZ",
		NumberMappings: []NumberMapping{
			{Placeholder: "{{NUM_001}}", Original: "5 mg"},
			{Placeholder: "{{NUM_002}}", Original: "$100"},
		},
	}

	tests := []struct {
		name      string
		text      string
		session   *SanitizationSession
		wantText  string
		wantCount int
	}{
		{
			name:      "terms and numbers",
			text:      "{{SEC_PROJ0001}} needs {{NUM_001}} for {{NUM_002}}",
			session:   session,
			wantText:  "Project Orion needs 5 mg for $100",
			wantCount: 3,
		},
		{
			name:      "without session numbers stay",
			text:      "{{SEC_PROJ0001}} needs {{NUM_001}}",
			wantText:  "Project Orion needs {{NUM_001}}",
			wantCount: 1,
		},
		{
			name:      "empty session",
			text:      "{{NUM_001}}",
			session:   &SanitizationSession{},
			wantText:  "{{NUM_001}}",
			wantCount: 0,
		},
		{
			name:      "inactive term placeholder untouched",
			text:      "{{SEC_OFF00001}}",
			session:   session,
			wantText:  "{{SEC_OFF00001}}",
			wantCount: 0,
		},
		{
			name:      "repeated placeholders",
			text:      "{{NUM_002}}{{NUM_002}} {{SEC_PROJ0001}}{{SEC_PROJ0001}}",
			session:   session,
			wantText:  "$100$100 Project OrionProject Orion",
			wantCount: 4,
		},
		{
			name:      "plain text",
			text:      "nothing to restore",
			session:   session,
			wantText:  "nothing to restore",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := restore(tt.text, terms, tt.session)
			assert.Equal(t, tt.wantText, got)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	terms := []Term{term("John Doe", "{{SEC_PERS0001}}")}
	session := &SanitizationSession{NumberMappings: []NumberMapping{{Placeholder: "{{NUM_001}}", Original: "42"}}}

	once, first := restore("{{SEC_PERS0001}} is {{NUM_001}}", terms, session)
	twice, second := restore(once, terms, session)

	assert.Equal(t, 2, first)
	assert.Equal(t, once, twice)
	assert.Equal(t, 0, second)
}

func TestReplaceLiteralEmptyPattern(t *testing.T) {
	got, count := replaceLiteral("abc", "", "x")
	assert.Equal(t, "abc", got)
	assert.Equal(t, 0, count)
}
