// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type providing structured, leveled
//              logging with persistent context fields, plus the process-wide
//              default logger and package-level convenience functions.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package log

import (
	"io"
	"os"
	"sync"
)

// Logger is a structured logger with contextual fields
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string

	contextFields Fields

	mutex sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates a logger with default configuration (INFO, JSON, stdout)
func New() *Logger {
	return &Logger{
		level:         DefaultLevel(),
		formatter:     NewJSONFormatter(),
		output:        os.Stdout,
		contextFields: make(Fields),
	}
}

// NewWithConfig creates a logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	logger := &Logger{
		level:         config.Level,
		output:        config.Output,
		name:          config.Name,
		formatter:     GetFormatter(config.Format),
		contextFields: make(Fields),
	}
	if logger.level == 0 {
		logger.level = DefaultLevel()
	}
	if logger.output == nil {
		logger.output = os.Stdout
	}
	return logger
}

// clone creates a copy of the logger sharing the output writer
func (l *Logger) clone() *Logger {
	fields := make(Fields, len(l.contextFields))
	for k, v := range l.contextFields {
		fields[k] = v
	}
	return &Logger{
		level:         l.level,
		formatter:     l.formatter,
		output:        l.output,
		name:          l.name,
		contextFields: fields,
	}
}

// WithLevel returns a copy of the logger with the given minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithName returns a copy of the logger with the given name
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithOutput returns a copy of the logger writing to output
func (l *Logger) WithOutput(output io.Writer) *Logger {
	clone := l.clone()
	clone.output = output
	return clone
}

// WithField returns a copy of the logger with a persistent field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy of the logger with persistent fields
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// Trace logs a message at TRACE level
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a message at DEBUG level
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs a message at INFO level
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a message at WARN level
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs a message at ERROR level
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// Fatal logs a message at FATAL level and exits the process
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, nil, fields...)
	os.Exit(1)
}

// ErrorWithErr logs a message at ERROR level with an attached error
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a message at WARN level with an attached error
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// IsLevelEnabled reports whether the given level would be logged
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.level)
}

// GetLevel returns the minimum level of the logger
func (l *Logger) GetLevel() Level {
	return l.level
}

// StartTimer starts a timer that logs its duration when stopped
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.Err = err
	entry.Fields = l.contextFields.Merge(nil)
	for _, f := range fields {
		entry.Fields = entry.Fields.Merge(f)
	}

	data, ferr := l.formatter.Format(entry)
	if ferr != nil {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.output.Write(data)
}

// Default logger management

var (
	defaultLogger     = New()
	defaultLoggerLock sync.RWMutex
)

// GetDefault returns the process-wide default logger
func GetDefault() *Logger {
	defaultLoggerLock.RLock()
	defer defaultLoggerLock.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide default logger
func SetDefault(logger *Logger) {
	if logger == nil {
		return
	}
	defaultLoggerLock.Lock()
	defer defaultLoggerLock.Unlock()
	defaultLogger = logger
}

// Package-level convenience functions using the default logger

// Debug logs at DEBUG level on the default logger
func Debug(message string, fields ...Fields) { GetDefault().Debug(message, fields...) }

// Info logs at INFO level on the default logger
func Info(message string, fields ...Fields) { GetDefault().Info(message, fields...) }

// Warn logs at WARN level on the default logger
func Warn(message string, fields ...Fields) { GetDefault().Warn(message, fields...) }

// Error logs at ERROR level on the default logger
func Error(message string, fields ...Fields) { GetDefault().Error(message, fields...) }
