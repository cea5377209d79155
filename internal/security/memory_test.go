// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestWipe_ZeroesData(t *testing.T) {
	data := []byte("Project Orion")
	Wipe(data)
	if !bytes.Equal(data, make([]byte, len("Project Orion"))) {
		t.Errorf("expected zeroed buffer, got %q", data)
	}
}

func TestWipe_EmptyAndNil(t *testing.T) {
	// Should not panic
	Wipe(nil)
	Wipe([]byte{})
}

func TestWipeAfter_DecodedValueSurvives(t *testing.T) {
	data := []byte(`{"original":"John Doe"}`)
	var decoded struct {
		Original string `json:"original"`
	}

	err := WipeAfter(data, func(b []byte) error {
		return json.Unmarshal(b, &decoded)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Original != "John Doe" {
		t.Errorf("expected decoded value to survive the wipe, got %q", decoded.Original)
	}
	if bytes.Contains(data, []byte("John")) {
		t.Error("expected raw bytes to be wiped")
	}
}

func TestWipeAfter_WipesOnError(t *testing.T) {
	data := []byte("secret")
	decodeErr := errors.New("bad input")

	err := WipeAfter(data, func([]byte) error { return decodeErr })
	if !errors.Is(err, decodeErr) {
		t.Errorf("expected decode error, got %v", err)
	}
	if !bytes.Equal(data, make([]byte, 6)) {
		t.Errorf("expected zeroed buffer after failed decode, got %q", data)
	}
}

func TestWipe_LargeValue(t *testing.T) {
	large := make([]byte, 10000)
	for i := range large {
		large[i] = byte('a' + i%26)
	}
	Wipe(large)
	for i, b := range large {
		if b != 0 {
			t.Fatalf("byte %d not wiped", i)
		}
	}
}
