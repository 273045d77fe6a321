// File: level.go
// Title: Log Level Definitions
// Description: Defines the log levels used by the mChat logging system,
//              together with parsing and ordering helpers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package log

import (
	"fmt"
	"strings"
)

// Level represents the severity of a log entry
type Level int

const (
	// LevelTrace is for very fine-grained diagnostic output
	LevelTrace Level = iota + 1

	// LevelDebug is for development diagnostics
	LevelDebug

	// LevelInfo is for normal operational messages
	LevelInfo

	// LevelWarn is for recoverable problems
	LevelWarn

	// LevelError is for failures that abort an operation
	LevelError

	// LevelFatal is for unrecoverable failures; logging at this level
	// terminates the process
	LevelFatal
)

// String returns the canonical name of the level
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ShouldLog reports whether an entry at level l passes the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel converts a level name into a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL":
		return LevelFatal, nil
	default:
		return 0, fmt.Errorf("unknown log level: %q", name)
	}
}

// AllLevels returns every defined level in ascending order
func AllLevels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}
}

// DefaultLevel returns the level used when none is configured
func DefaultLevel() Level {
	return LevelInfo
}
