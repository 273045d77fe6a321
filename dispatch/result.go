// File: result.go
// Title: Resolution Result Type
// Description: Defines the two-variant result carried by the command grammar.
//              An unknown command is an ordinary data outcome of a successful
//              parse, not a parse failure, so the caller can inspect it and
//              suppress the report via configuration.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package dispatch

import (
	"fmt"

	mcregistry "github.com/msto63/mChat/registry"
)

// Result holds exactly one of a value or a typed error
type Result[T any, E error] struct {
	val   T
	err   E
	isErr bool
}

// Ok creates a value result
func Ok[T any, E error](val T) Result[T, E] {
	return Result[T, E]{val: val}
}

// Err creates an error result
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err, isErr: true}
}

// IsErr reports whether the result carries the error variant
func (r Result[T, E]) IsErr() bool {
	return r.isErr
}

// Val returns the value variant; the zero value for error results
func (r Result[T, E]) Val() T {
	return r.val
}

// Err returns the error variant; the zero value for value results
func (r Result[T, E]) Err() E {
	return r.err
}

// NotFound is the error variant produced when the reconstructed dotted
// key matches no registered command
type NotFound struct {
	// Key is the dotted command path that was looked up
	Key string
}

// Error implements error
func (e *NotFound) Error() string {
	return fmt.Sprintf("command not found: %s", e.Key)
}

// CommandResult is the outcome of the command grammar: either a handle
// to a registered command or the key that failed to resolve
type CommandResult = Result[*mcregistry.Command, *NotFound]
