// File: format.go
// Title: Log Output Formatters
// Description: Implements the JSON and text formatters used to render log
//              entries, plus format selection by name.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package log

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Format identifies an output format
type Format int

const (
	// FormatJSON renders entries as single-line JSON objects (default)
	FormatJSON Format = iota

	// FormatText renders entries as human-readable text
	FormatText
)

// ParseFormat converts a format name into a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "text", "console":
		return FormatText, nil
	default:
		return 0, fmt.Errorf("unknown log format: %q", name)
	}
}

// Formatter renders a log entry into bytes
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// GetFormatter returns the formatter for the given format
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatText:
		return NewTextFormatter()
	default:
		return NewJSONFormatter()
	}
}

// JSONFormatter renders entries as single-line JSON
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter creates a JSON formatter with RFC3339 timestamps
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339Nano}
}

// Format implements Formatter
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	record := make(map[string]interface{}, len(entry.Fields)+5)
	record["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	record["level"] = entry.Level.String()
	record["message"] = entry.Message
	if entry.Logger != "" {
		record["logger"] = entry.Logger
	}
	if entry.Err != nil {
		record["error"] = entry.Err.Error()
	}
	for k, v := range entry.Fields {
		// Field values that cannot be marshalled are stringified so a
		// single bad value never drops the whole entry.
		if _, err := json.Marshal(v); err != nil {
			record[k] = fmt.Sprintf("%v", v)
			continue
		}
		record[k] = v
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log entry: %w", err)
	}
	return append(data, '\n'), nil
}

// TextFormatter renders entries as aligned human-readable text
type TextFormatter struct {
	TimestampFormat string
}

// NewTextFormatter creates a text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: "2006-01-02 15:04:05.000"}
}

// Format implements Formatter
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var b strings.Builder

	b.WriteString(entry.Timestamp.Format(f.TimestampFormat))
	b.WriteString(" [")
	b.WriteString(entry.Level.String())
	b.WriteString("]")
	if entry.Logger != "" {
		b.WriteString(" (")
		b.WriteString(entry.Logger)
		b.WriteString(")")
	}
	b.WriteString(" ")
	b.WriteString(entry.Message)

	if entry.Err != nil {
		b.WriteString(" error=")
		b.WriteString(fmt.Sprintf("%q", entry.Err.Error()))
	}

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(fmt.Sprintf("%v", entry.Fields[k]))
		}
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}
