// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package profiles

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType defines the type of profile error
type ErrorType int

const (
	// ErrorParse indicates a document that is not valid JSON
	ErrorParse ErrorType = iota

	// ErrorValidation indicates a document that does not match the backup schema
	ErrorValidation

	// ErrorEmptyBackup indicates a valid backup without profiles
	ErrorEmptyBackup

	// ErrorNotFound indicates an unknown profile or term id
	ErrorNotFound

	// ErrorInvalidInput indicates a rejected argument such as a blank name
	ErrorInvalidInput

	// ErrorFileSystem indicates a vault file operation failure
	ErrorFileSystem
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorParse:
		return "parse"
	case ErrorValidation:
		return "validation"
	case ErrorEmptyBackup:
		return "empty_backup"
	case ErrorNotFound:
		return "not_found"
	case ErrorInvalidInput:
		return "invalid_input"
	case ErrorFileSystem:
		return "file_system"
	default:
		return "unknown"
	}
}

// Error represents a failure in the profile vault or its backup documents
type Error struct {
	// Type is the type of error
	Type ErrorType

	// Message is the user-facing error message
	Message string

	// Field is the path of the offending field in a backup document, if any
	Field string

	// Component is the component that generated the error
	Component string

	// Cause is the underlying error that caused this error
	Cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Field != "" {
		fmt.Fprintf(&b, " (field: %s)", e.Field)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %s", e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error for error unwrapping
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error
func NewError(errorType ErrorType, message, component string, cause error) *Error {
	return &Error{
		Type:      errorType,
		Message:   message,
		Component: component,
		Cause:     cause,
	}
}

// newFieldError creates a validation error pointing at a backup field
func newFieldError(field string) *Error {
	return &Error{
		Type:      ErrorValidation,
		Message:   invalidBackupMessage,
		Field:     field,
		Component: backupComponent,
	}
}

// IsType reports whether err is a profiles error of the given type
func IsType(err error, errorType ErrorType) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Type == errorType
}
