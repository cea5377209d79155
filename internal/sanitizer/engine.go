// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"time"

	"llm-sanitizer/internal/observability"

	"github.com/google/uuid"
)

const componentName = "sanitizer"

// Engine runs the sanitize and restore operations with injected entropy,
// clock and observer. An Engine holds no state between calls and is safe for
// concurrent use when its TokenSource is.
type Engine struct {
	tokens   TokenSource
	now      func() time.Time
	observer *observability.StandardObserver
}

// Option configures an Engine
type Option func(*Engine)

// WithTokenSource sets the source of placeholder and session id tokens
func WithTokenSource(src TokenSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.tokens = src
		}
	}
}

// WithClock sets the clock used for session timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithObserver attaches an observer that records operation timings and counts
func WithObserver(observer *observability.StandardObserver) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// New creates an Engine. Defaults are crypto/rand tokens, the wall clock and
// no observer.
func New(opts ...Option) *Engine {
	e := &Engine{
		tokens: CryptoTokenSource{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetComponentName returns the component name for observability
func (e *Engine) GetComponentName() string {
	return componentName
}

// SanitizeTerms replaces active terms with their placeholders and returns the
// result and the number of occurrences replaced.
func (e *Engine) SanitizeTerms(text string, terms []Term) (string, int) {
	finish := e.observer.StartTiming(componentName, "sanitize_terms", "")
	result, count := sanitizeTerms(text, terms)
	finish(true, map[string]interface{}{
		"content_length": len(text),
		"match_count":    count,
		"term_count":     len(terms),
	})
	return result, count
}

// SanitizeNumbers replaces every numeric occurrence selected by opts with a
// unique placeholder. The returned session is the only way to reverse them.
func (e *Engine) SanitizeNumbers(text string, opts NumberSanitizeOptions) (string, SanitizationSession, int) {
	finish := e.observer.StartTiming(componentName, "sanitize_numbers", "")
	result, session, count := sanitizeNumbers(text, opts, e.tokens, e.now)
	finish(true, map[string]interface{}{
		"content_length": len(text),
		"match_count":    count,
		"enabled":        opts.Enabled,
	})
	return result, session, count
}

// Restore reverses term placeholders and, when session is non-nil, the numeric
// placeholders it recorded.
func (e *Engine) Restore(text string, terms []Term, session *SanitizationSession) (string, int) {
	finish := e.observer.StartTiming(componentName, "restore", "")
	result, count := restore(text, terms, session)
	finish(true, map[string]interface{}{
		"content_length": len(text),
		"match_count":    count,
		"has_session":    !session.IsEmpty(),
	})
	return result, count
}

// Sanitize runs terms first and then numbers, the order the placeholders are
// designed for.
func (e *Engine) Sanitize(text string, terms []Term, opts NumberSanitizeOptions) SanitizeResult {
	afterTerms, termCount := e.SanitizeTerms(text, terms)
	final, session, numberCount := e.SanitizeNumbers(afterTerms, opts)
	return SanitizeResult{
		Result:             final,
		TermReplacements:   termCount,
		NumberReplacements: numberCount,
		Session:            session,
		OriginalLength:     len([]rune(text)),
		SanitizedLength:    len([]rune(final)),
	}
}

// BuildPlaceholder returns a fresh {{SEC_XXXXXXXX}} placeholder
func (e *Engine) BuildPlaceholder() string {
	return BuildPlaceholder(e.tokens)
}

// NewTerm creates an active term for original with a new id and placeholder.
// The placeholder is random and never derived from original.
func (e *Engine) NewTerm(original string) Term {
	return Term{
		ID:          uuid.New().String(),
		Original:    original,
		Placeholder: e.BuildPlaceholder(),
		IsActive:    true,
	}
}

var (
	defaultEngine = New()

	_ observability.Observable = (*Engine)(nil)
)

// SanitizeTerms replaces active terms using the default engine
func SanitizeTerms(text string, terms []Term) (string, int) {
	return defaultEngine.SanitizeTerms(text, terms)
}

// SanitizeNumbers replaces numeric occurrences using the default engine
func SanitizeNumbers(text string, opts NumberSanitizeOptions) (string, SanitizationSession, int) {
	return defaultEngine.SanitizeNumbers(text, opts)
}

// Restore reverses placeholders using the default engine
func Restore(text string, terms []Term, session *SanitizationSession) (string, int) {
	return defaultEngine.Restore(text, terms, session)
}
