// File: state.go
// Title: Parser State and Stated Parsers
// Description: Defines the ambient parsing context threaded through nested
//              grammar composition, and the StatedParser shape every grammar
//              rule in the engine takes.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package dispatch

import (
	mccombinator "github.com/msto63/mChat/combinator"
)

// State is the ambient parsing context of one invocation. It is an
// immutable value: a layer that wants different behavior for its nested
// sub-parses constructs a new State and resolves the inner grammar with
// that, rather than mutating the one it received. Concurrent parses
// therefore never observe each other's overrides.
type State struct {
	// Terminator, when set, is probed as an additional stop condition
	// while scanning bare argument tokens.
	Terminator mccombinator.Parser[string]
}

// WithTerminator returns a copy of the state carrying the terminator
func (s State) WithTerminator(terminator mccombinator.Parser[string]) State {
	s.Terminator = terminator
	return s
}

// StatedParser is a grammar rule parameterized by ambient parsing
// context. Every stack resolves to exactly one StatedParser; resolving
// a stack inside another stack forwards the same State so outer layers
// can influence inner tokenization.
type StatedParser[T any] func(st State) mccombinator.Parser[T]
