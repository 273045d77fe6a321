// File: timer.go
// Title: Operation Timer
// Description: Implements a lightweight timer that measures the duration of
//              an operation and logs it on completion.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package log

import (
	"sync"
	"time"
)

// Timer measures the duration of an operation
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    Fields
	stopped   bool
	mutex     sync.Mutex
}

// NewTimer creates and starts a timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		fields:    make(Fields),
	}
}

// WithField attaches a field to the completion log entry
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// StartTime returns the moment the timer was started
func (t *Timer) StartTime() time.Time {
	return t.start
}

// Stop stops the timer and logs the duration at DEBUG level
func (t *Timer) Stop() time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	elapsed := time.Since(t.start)
	if t.stopped {
		return elapsed
	}
	t.stopped = true

	if t.logger != nil {
		t.logger.Debug("operation completed", t.fields.Merge(Fields{
			"operation": t.operation,
			"duration":  elapsed.String(),
		}))
	}
	return elapsed
}

// StopWithError stops the timer and logs the duration and error at WARN level
func (t *Timer) StopWithError(err error) time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	elapsed := time.Since(t.start)
	if t.stopped {
		return elapsed
	}
	t.stopped = true

	if t.logger != nil {
		t.logger.WarnWithErr("operation failed", err, t.fields.Merge(Fields{
			"operation": t.operation,
			"duration":  elapsed.String(),
		}))
	}
	return elapsed
}
