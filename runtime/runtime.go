// File: runtime.go
// Title: Command Execution Runtime
// Description: Implements the runtime that executes resolved commands. The
//              Runner interface is the seam between the dispatcher and the
//              execution environment; LocalRunner executes command handlers
//              in-process with a timeout, structured logging and optional
//              history recording.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package runtime

import (
	"context"
	"time"

	"github.com/google/uuid"

	mcerror "github.com/msto63/mChat/core/error"
	mclog "github.com/msto63/mChat/core/log"
	mcregistry "github.com/msto63/mChat/registry"
	mcsession "github.com/msto63/mChat/session"
)

// Runner executes a resolved command with its call data
type Runner interface {
	Run(ctx context.Context, cmd *mcregistry.Command, call *mcregistry.Call) (*mcregistry.Fragment, error)
}

// LocalRunner executes command handlers in-process
type LocalRunner struct {
	logger  *mclog.Logger
	history mcsession.HistoryStore
	options Options
}

// Options configures the local runner
type Options struct {
	// Logger for runtime operations (optional)
	Logger *mclog.Logger

	// ExecutionTimeout bounds a single command execution (default: 30s)
	ExecutionTimeout time.Duration

	// History receives one entry per executed command (optional)
	History mcsession.HistoryStore
}

// NewLocalRunner creates a local runner with the given options
func NewLocalRunner(opts Options) (*LocalRunner, error) {
	if opts.Logger == nil {
		opts.Logger = mclog.GetDefault()
	}
	if opts.ExecutionTimeout == 0 {
		opts.ExecutionTimeout = 30 * time.Second
	}
	if opts.History == nil {
		opts.History = mcsession.NopHistoryStore{}
	}

	return &LocalRunner{
		logger:  opts.Logger.WithField("component", "runtime"),
		history: opts.History,
		options: opts,
	}, nil
}

// Run implements Runner
func (r *LocalRunner) Run(ctx context.Context, cmd *mcregistry.Command, call *mcregistry.Call) (*mcregistry.Fragment, error) {
	if cmd == nil {
		return nil, mcerror.New("command cannot be nil").WithCode(mcerror.CodeInvalidInput)
	}
	if call == nil {
		call = &mcregistry.Call{}
	}

	requestID := uuid.NewString()
	timer := r.logger.StartTimer("command_execution").
		WithField("requestID", requestID).
		WithField("command", cmd.Path)

	r.logger.Debug("executing command", mclog.Fields{
		"requestID": requestID,
		"command":   cmd.Path,
		"args":      call.Args,
		"root":      call.Root,
	})

	runCtx, cancel := context.WithTimeout(ctx, r.options.ExecutionTimeout)
	defer cancel()

	fragment, err := cmd.Handler(runCtx, call)

	if runCtx.Err() == context.DeadlineExceeded {
		err = mcerror.Newf("command %s timed out", cmd.Path).
			WithCode(mcerror.CodeTimeout).
			WithSeverity(mcerror.SeverityHigh).
			WithMessage("runtime.timeout", map[string]interface{}{"Command": cmd.Path}).
			WithDetail("timeout", r.options.ExecutionTimeout.String())
	}

	r.record(ctx, cmd, call, fragment, err)

	if err != nil {
		timer.StopWithError(err)
		if _, ok := err.(*mcerror.Error); ok {
			return nil, err
		}
		return nil, mcerror.Wrap(err, "command execution failed").
			WithCode(mcerror.CodeExecutionFailed).
			WithMessage("runtime.execution_failed", map[string]interface{}{"Command": cmd.Path}).
			WithDetail("command", cmd.Path)
	}

	timer.Stop()
	return fragment, nil
}

// record writes a history entry; history failures are logged, never
// propagated into the command result
func (r *LocalRunner) record(ctx context.Context, cmd *mcregistry.Command, call *mcregistry.Call, fragment *mcregistry.Fragment, execErr error) {
	entry := &mcsession.HistoryEntry{
		Input:   call.Raw,
		Command: cmd.Path,
		Success: execErr == nil,
	}
	if call.Session != nil {
		entry.SessionID = call.Session.ID
		entry.UserID = call.Session.UserID
	}
	if fragment != nil {
		entry.Response = fragment.Text
	}

	if err := r.history.Record(ctx, entry); err != nil {
		r.logger.WarnWithErr("failed to record history entry", err, mclog.Fields{
			"command": cmd.Path,
		})
	}
}
