// File: stack.go
// Title: Layer and Stack Model
// Description: Implements the named, precedence-ordered middleware stacks the
//              grammar engine composes its parsers from. Layers can be
//              registered and disposed at any time; composition re-reads the
//              layer list on every call so changes take effect on the very
//              next parse.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package dispatch

import (
	"sort"
	"sync"

	mccombinator "github.com/msto63/mChat/combinator"
	mclog "github.com/msto63/mChat/core/log"
)

// Inner is the composition accumulated below a layer. The lowest layer
// of a stack receives an invalid Inner; its middleware must supply the
// base grammar instead of delegating. Resolving an invalid Inner yields
// a parser that fails unconditionally.
type Inner[T any] struct {
	parser StatedParser[T]
}

// WrapInner marks a stated parser as a valid inner composition
func WrapInner[T any](parser StatedParser[T]) Inner[T] {
	return Inner[T]{parser: parser}
}

// Valid reports whether an inner composition exists
func (i Inner[T]) Valid() bool {
	return i.parser != nil
}

// Stated returns the inner stated parser, or a parser that always
// fails when no inner composition exists
func (i Inner[T]) Stated() StatedParser[T] {
	if i.parser == nil {
		return func(State) mccombinator.Parser[T] {
			return mccombinator.Fail[T]()
		}
	}
	return i.parser
}

// Resolve applies the inner stated parser to the given state
func (i Inner[T]) Resolve(st State) mccombinator.Parser[T] {
	return i.Stated()(st)
}

// Middleware builds a replacement grammar from the composition of all
// lower-precedence layers. A middleware may ignore its inner parser and
// replace the grammar, delegate to it unchanged, or fall back to it
// conditionally.
type Middleware[T any] func(inner Inner[T]) StatedParser[T]

// Layer is one named contribution to a stack's grammar. Layers compose
// in ascending precedence order; the name is the identity key used for
// disposal.
type Layer[T any] struct {
	Name       string
	Precedence int
	Middleware Middleware[T]
}

// Stack is one named, independently extensible grammar. Every stack is
// created with a single layer named "default" at precedence 0 carrying
// the base grammar. Removing the default layer is allowed but leaves
// the stack without a working grammar; that is the caller's problem.
type Stack[T any] struct {
	name   string
	layers []Layer[T]
	logger *mclog.Logger
	mutex  sync.RWMutex
}

// DefaultLayerName is the name of the seeded base layer of every stack
const DefaultLayerName = "default"

// NewStack creates a stack seeded with the default layer at precedence 0
func NewStack[T any](name string, base Middleware[T], logger *mclog.Logger) *Stack[T] {
	if logger == nil {
		logger = mclog.GetDefault()
	}
	return &Stack[T]{
		name: name,
		layers: []Layer[T]{
			{Name: DefaultLayerName, Precedence: 0, Middleware: base},
		},
		logger: logger.WithField("stack", name),
	}
}

// Name returns the stack's grammar name
func (s *Stack[T]) Name() string {
	return s.name
}

// Use registers a layer and returns its disposer. Disposal removes
// every layer in this stack whose name equals the registered layer's
// name; callers that need independent disposal must choose unique
// names.
func (s *Stack[T]) Use(layer Layer[T]) func() {
	if layer.Middleware == nil {
		s.logger.Warn("ignoring layer without middleware", mclog.Fields{
			"layer": layer.Name,
		})
		return func() {}
	}

	s.mutex.Lock()
	s.layers = append(s.layers, layer)
	s.mutex.Unlock()

	s.logger.Debug("layer registered", mclog.Fields{
		"layer":      layer.Name,
		"precedence": layer.Precedence,
	})

	name := layer.Name
	return func() { s.remove(name) }
}

// remove deletes all layers registered under name
func (s *Stack[T]) remove(name string) {
	s.mutex.Lock()
	kept := s.layers[:0]
	removed := 0
	for _, layer := range s.layers {
		if layer.Name == name {
			removed++
			continue
		}
		kept = append(kept, layer)
	}
	s.layers = kept
	s.mutex.Unlock()

	s.logger.Debug("layer disposed", mclog.Fields{
		"layer":   name,
		"removed": removed,
	})
}

// LayerNames returns the layer names in current composition order
func (s *Stack[T]) LayerNames() []string {
	layers := s.snapshot()
	names := make([]string, len(layers))
	for i, layer := range layers {
		names[i] = layer.Name
	}
	return names
}

// snapshot copies the current layers and stable-sorts them by ascending
// precedence, so layers sharing a precedence keep registration order
func (s *Stack[T]) snapshot() []Layer[T] {
	s.mutex.RLock()
	layers := make([]Layer[T], len(s.layers))
	copy(layers, s.layers)
	s.mutex.RUnlock()

	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].Precedence < layers[j].Precedence
	})
	return layers
}

// Compose folds the current layers into the stack's effective grammar.
// Nothing is cached; every call reflects the layer list at the moment
// of the call. The lowest layer receives an invalid Inner.
func (s *Stack[T]) Compose() StatedParser[T] {
	var inner Inner[T]
	for _, layer := range s.snapshot() {
		inner = WrapInner(layer.Middleware(inner))
	}
	return inner.Stated()
}

// Resolve composes the stack and applies the result to st
func (s *Stack[T]) Resolve(st State) mccombinator.Parser[T] {
	return s.Compose()(st)
}
