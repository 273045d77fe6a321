// File: error.go
// Title: Core Error Implementation
// Description: Implements the structured Error type used across mChat. An
//              Error carries a code, a severity, structured details and an
//              optional localization key while remaining compatible with
//              Go's standard error interface and errors.Unwrap.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package error

import (
	"fmt"
	"time"
)

// Error is a structured error with code, severity and metadata
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	timestamp time.Time

	details   map[string]interface{}
	operation string

	// Localization
	messageKey  string
	messageArgs map[string]interface{}
}

// New creates a new Error with the given message
func New(message string) *Error {
	return &Error{
		message:   message,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
		details:   make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with an additional message. Wrapping nil
// returns nil. Wrapping an *Error preserves its code, severity and
// localization information.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{
		message:   message,
		cause:     err,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
		details:   make(map[string]interface{}),
	}

	if inner, ok := err.(*Error); ok {
		wrapped.code = inner.code
		wrapped.severity = inner.severity
		wrapped.messageKey = inner.messageKey
		wrapped.messageArgs = inner.messageArgs
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}

	return wrapped
}

// Error implements the standard error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the error code
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	return e
}

// WithSeverity sets the severity
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	return e
}

// WithDetail attaches a single detail value
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithDetails attaches multiple detail values
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	for k, v := range details {
		e.details[k] = v
	}
	return e
}

// WithOperation records the operation that produced the error
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithMessage attaches a localization key and its template arguments.
// The key is resolved against the i18n catalogue when the error is
// presented to a user; the plain message remains the log representation.
func (e *Error) WithMessage(key string, args map[string]interface{}) *Error {
	e.messageKey = key
	e.messageArgs = args
	return e
}

// Code returns the error code
func (e *Error) Code() Code { return e.code }

// Severity returns the severity
func (e *Error) Severity() Severity { return e.severity }

// Timestamp returns when the error was created
func (e *Error) Timestamp() time.Time { return e.timestamp }

// Operation returns the recorded operation
func (e *Error) Operation() string { return e.operation }

// MessageKey returns the localization key, if any
func (e *Error) MessageKey() string { return e.messageKey }

// MessageArgs returns the localization template arguments, if any
func (e *Error) MessageArgs() map[string]interface{} { return e.messageArgs }

// Details returns a copy of the detail map
func (e *Error) Details() map[string]interface{} {
	details := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		details[k] = v
	}
	return details
}

// RootCause returns the deepest error in the chain
func (e *Error) RootCause() error {
	var current error = e
	for {
		inner, ok := current.(*Error)
		if !ok || inner.cause == nil {
			return current
		}
		current = inner.cause
	}
}

// HasCode reports whether err is an *Error carrying the given code
func HasCode(err error, code Code) bool {
	structured, ok := err.(*Error)
	return ok && structured.code == code
}
