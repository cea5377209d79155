// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"bytes"
	"io"
	"strings"
)

const streamChunkSize = 4096

// RestoringReader wraps a response stream and restores placeholders before
// the bytes reach the consumer. A placeholder split across reads is held back
// until the rest of it arrives.
type RestoringReader struct {
	src     io.Reader
	rules   [][2]string
	pending []byte
	out     []byte
	starts  [256]bool
	srcEOF  bool
	count   int
}

// NewRestoringReader restores the placeholders of terms and session while
// reading from src. With nothing to restore, bytes pass through unchanged.
func NewRestoringReader(src io.Reader, terms []Term, session *SanitizationSession) *RestoringReader {
	r := &RestoringReader{
		src:   src,
		rules: restoreRules(terms, session),
	}
	for _, rule := range r.rules {
		r.starts[rule[0][0]] = true
	}
	return r
}

// Replacements returns the number of placeholders restored so far
func (r *RestoringReader) Replacements() int {
	return r.count
}

// Read implements io.Reader
func (r *RestoringReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(r.out) == 0 {
		if r.srcEOF && len(r.pending) == 0 {
			return 0, io.EOF
		}
		if !r.srcEOF {
			chunk := make([]byte, streamChunkSize)
			n, err := r.src.Read(chunk)
			r.pending = append(r.pending, chunk[:n]...)
			if err == io.EOF {
				r.srcEOF = true
			} else if err != nil {
				return 0, err
			}
		}
		r.process()
	}
	n := copy(p, r.out)
	r.out = r.out[n:]
	return n, nil
}

// process moves every byte of pending that can no longer start a placeholder
// into out, substituting complete placeholders on the way.
func (r *RestoringReader) process() {
	i := 0
	for i < len(r.pending) {
		next := r.nextCandidate(r.pending[i:])
		if next < 0 {
			r.out = append(r.out, r.pending[i:]...)
			i = len(r.pending)
			break
		}
		r.out = append(r.out, r.pending[i:i+next]...)
		i += next

		rest := r.pending[i:]
		if original, size, ok := r.matchRule(rest); ok {
			r.out = append(r.out, original...)
			r.count++
			i += size
			continue
		}
		if !r.srcEOF && r.isPartialRule(rest) {
			break
		}
		r.out = append(r.out, r.pending[i])
		i++
	}
	r.pending = append(r.pending[:0], r.pending[i:]...)
}

// nextCandidate returns the offset of the first byte that begins some
// placeholder, or -1
func (r *RestoringReader) nextCandidate(b []byte) int {
	for i, c := range b {
		if r.starts[c] {
			return i
		}
	}
	return -1
}

func (r *RestoringReader) matchRule(rest []byte) (string, int, bool) {
	for _, rule := range r.rules {
		if bytes.HasPrefix(rest, []byte(rule[0])) {
			return rule[1], len(rule[0]), true
		}
	}
	return "", 0, false
}

// isPartialRule reports whether rest could be the beginning of a placeholder
// whose remainder has not been read yet
func (r *RestoringReader) isPartialRule(rest []byte) bool {
	for _, rule := range r.rules {
		if len(rest) < len(rule[0]) && strings.HasPrefix(rule[0], string(rest)) {
			return true
		}
	}
	return false
}
