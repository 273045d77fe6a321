// File: entry.go
// Title: Log Entry and Field Types
// Description: Defines the Entry structure emitted by the logger and the
//              Fields map used to attach structured context to entries.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package log

import "time"

// Fields holds structured key/value context for a log entry
type Fields map[string]interface{}

// Merge returns a new Fields map containing the receiver's entries
// overlaid with the entries of other
func (f Fields) Merge(other Fields) Fields {
	merged := make(Fields, len(f)+len(other))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Entry represents a single log record ready for formatting
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Logger    string    `json:"logger,omitempty"`
	Fields    Fields    `json:"fields,omitempty"`
	Err       error     `json:"-"`
}

// NewEntry creates an entry with the current timestamp
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
