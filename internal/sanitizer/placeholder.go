// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

const tokenCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenSource produces the random bodies of placeholders and session ids.
// Tokens are drawn from [A-Z0-9] and carry no relationship to any input text.
type TokenSource interface {
	Token(n int) string
}

// CryptoTokenSource draws tokens from crypto/rand
type CryptoTokenSource struct{}

// Token returns n random characters from [A-Z0-9]
func (CryptoTokenSource) Token(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = tokenCharset[secureRandom(len(tokenCharset))]
	}
	return string(b)
}

func secureRandom(max int) int {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return int(time.Now().UnixNano()) % max
	}
	return int(n.Int64())
}

// SequenceTokenSource replays a fixed list of tokens, cycling when exhausted.
// Tokens are upper-cased, stripped to [A-Z0-9] and padded with '0' or
// truncated to the requested length.
type SequenceTokenSource struct {
	mu     sync.Mutex
	tokens []string
	next   int
}

// NewSequenceTokenSource creates a deterministic token source
func NewSequenceTokenSource(tokens ...string) *SequenceTokenSource {
	return &SequenceTokenSource{tokens: tokens}
}

// Token returns the next token in the sequence fitted to n characters
func (s *SequenceTokenSource) Token(n int) string {
	if n <= 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := ""
	if len(s.tokens) > 0 {
		raw = s.tokens[s.next%len(s.tokens)]
		s.next++
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if strings.ContainsRune(tokenCharset, r) {
			b.WriteRune(r)
		}
		if b.Len() == n {
			break
		}
	}
	for b.Len() < n {
		b.WriteByte('0')
	}
	return b.String()
}

// BuildPlaceholder returns a fresh term placeholder of the form
// {{SEC_XXXXXXXX}}. A nil source falls back to crypto/rand.
func BuildPlaceholder(src TokenSource) string {
	if src == nil {
		src = CryptoTokenSource{}
	}
	return TermPlaceholderPrefix + src.Token(TermTokenLength) + PlaceholderSuffix
}

// numberPlaceholder formats the placeholder for the seq-th numeric occurrence
func numberPlaceholder(seq int) string {
	return fmt.Sprintf("%s%03d%s", NumberPlaceholderPrefix, seq, PlaceholderSuffix)
}

// Errors returned by ValidatePlaceholder
var (
	ErrEmptyPlaceholder   = errors.New("placeholder cannot be empty")
	ErrNumberPlaceholder  = errors.New("placeholder uses the reserved " + NumberPlaceholderPrefix + " prefix")
	ErrNumericPlaceholder = errors.New("placeholder contains a value numeric sanitization would replace")
)

// ValidatePlaceholder rejects term placeholders that numeric sanitization
// could produce or rewrite, since restore could not tell the two apart.
func ValidatePlaceholder(placeholder string) error {
	if strings.TrimSpace(placeholder) == "" {
		return ErrEmptyPlaceholder
	}
	if strings.Contains(placeholder, NumberPlaceholderPrefix) {
		return ErrNumberPlaceholder
	}
	opts := DefaultNumberOptions()
	opts.Enabled = true
	if pattern, ok := BuildPattern(opts); ok && len(pattern.FindAll(placeholder)) > 0 {
		return fmt.Errorf("%w: %q", ErrNumericPlaceholder, placeholder)
	}
	return nil
}
