// File: service.go
// Title: Dispatch Service
// Description: Implements the dispatch entry point of the grammar engine. The
//              service owns the four named stacks, seeds their default
//              layers and turns raw chat input into an executed command by
//              running the root grammar and invoking the action it produces.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package dispatch

import (
	"context"

	mcargv "github.com/msto63/mChat/argv"
	mcerror "github.com/msto63/mChat/core/error"
	mclog "github.com/msto63/mChat/core/log"
	mcregistry "github.com/msto63/mChat/registry"
	mcruntime "github.com/msto63/mChat/runtime"
	mcsession "github.com/msto63/mChat/session"
)

// Env is the execution environment handed to a parsed action
type Env struct {
	// Session is the chat session the input arrived on
	Session *mcsession.Session
}

// Action is the deferred outcome of a successful root parse. Invoking
// it runs the resolved command, or reports the unknown command when
// resolution missed and reporting is enabled.
type Action func(ctx context.Context, env Env) (*mcregistry.Fragment, error)

// Service is the grammar engine and dispatch entry point. The stack
// fields are exported so hosts can register additional grammar layers.
type Service struct {
	// CommandName parses one dotted-path segment
	CommandName *Stack[string]

	// Command parses a dotted path and resolves it against the registry
	Command *Stack[CommandResult]

	// Argv tokenizes the argument text following the command
	Argv *Stack[mcargv.Shape]

	// Root sequences Command and Argv into a deferred action
	Root *Stack[Action]

	registry *mcregistry.Registry
	runner   mcruntime.Runner
	logger   *mclog.Logger
	options  Options
}

// Options configures the dispatch service
type Options struct {
	// Logger for dispatch operations (optional)
	Logger *mclog.Logger

	// Registry resolves dotted command paths (required)
	Registry *mcregistry.Registry

	// Runner executes resolved commands (required)
	Runner mcruntime.Runner

	// SilenceUnknownCommands turns unresolved commands into no-ops
	// instead of user-facing errors (default: report them)
	SilenceUnknownCommands bool

	// MaxInputLength rejects longer inputs before parsing
	// (default: 4096, negative: unlimited)
	MaxInputLength int
}

// New creates a dispatch service with the default grammars seeded
func New(opts Options) (*Service, error) {
	if opts.Registry == nil {
		return nil, mcerror.New("registry cannot be nil").WithCode(mcerror.CodeInvalidInput)
	}
	if opts.Runner == nil {
		return nil, mcerror.New("runner cannot be nil").WithCode(mcerror.CodeInvalidInput)
	}
	if opts.Logger == nil {
		opts.Logger = mclog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = 4096
	}

	s := &Service{
		registry: opts.Registry,
		runner:   opts.Runner,
		logger:   opts.Logger.WithField("component", "dispatch"),
		options:  opts,
	}

	s.CommandName = NewStack("commandName", s.commandNameGrammar, opts.Logger)
	s.Command = NewStack("command", s.commandGrammar, opts.Logger)
	s.Argv = NewStack("argv", s.argvGrammar, opts.Logger)
	s.Root = NewStack("root", s.rootGrammar, opts.Logger)

	s.logger.Info("dispatch service initialized", mclog.Fields{
		"reportCommandNotFound": !opts.SilenceUnknownCommands,
		"maxInputLength":        opts.MaxInputLength,
	})

	return s, nil
}

// Execute parses input with the root grammar under an empty state and
// invokes the resulting action. Input the grammar does not match is
// dropped without an error; the caller sees a nil fragment. Absence of
// a registered command is not a grammar mismatch and surfaces through
// the action's error instead, unless reporting is disabled.
func (s *Service) Execute(ctx context.Context, session *mcsession.Session, input string) (*mcregistry.Fragment, error) {
	if s.options.MaxInputLength > 0 && len(input) > s.options.MaxInputLength {
		return nil, mcerror.Newf("input exceeds %d bytes", s.options.MaxInputLength).
			WithCode(mcerror.CodeInvalidInput).
			WithMessage("dispatch.syntax_error", nil).
			WithDetail("length", len(input))
	}

	action, rest, ok := s.Root.Resolve(State{})(input)
	if !ok {
		s.logger.Debug("input did not match the root grammar", mclog.Fields{
			"length": len(input),
		})
		return nil, nil
	}
	if rest != "" {
		s.logger.Debug("root grammar left input unconsumed", mclog.Fields{
			"rest": rest,
		})
	}

	return action(ctx, Env{Session: session})
}
