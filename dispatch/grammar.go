// File: grammar.go
// Title: Default Grammars
// Description: Implements the base middlewares seeded into the four named
//              stacks: the command-name word, the dotted command path with
//              registry resolution, the whitespace-led argument tokenizer and
//              the root grammar that sequences command and argv into a
//              deferred action.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package dispatch

import (
	"context"
	"strings"
	"unicode"

	mcargv "github.com/msto63/mChat/argv"
	mccombinator "github.com/msto63/mChat/combinator"
	mcerror "github.com/msto63/mChat/core/error"
	mclog "github.com/msto63/mChat/core/log"
	mcregistry "github.com/msto63/mChat/registry"
)

// isWordChar matches the command-name character class: ASCII letters,
// digits and underscore. The dot separator is deliberately outside it.
func isWordChar(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '_'
}

// commandNameGrammar is the default middleware of the commandName
// stack: one or more word characters, failing softly on zero so the
// command grammar stops accumulating path segments
func (s *Service) commandNameGrammar(Inner[string]) StatedParser[string] {
	word := mccombinator.Join(mccombinator.Some(mccombinator.Satisfy(isWordChar)))
	return func(State) mccombinator.Parser[string] {
		return word
	}
}

// commandGrammar is the default middleware of the command stack: dotted
// commandName segments joined back into the full key, then resolved
// against the registry. Resolution misses are data, not parse failures;
// the grammar succeeds structurally either way. The registry is
// consulted fresh on every parse, never cached.
func (s *Service) commandGrammar(Inner[CommandResult]) StatedParser[CommandResult] {
	return func(st State) mccombinator.Parser[CommandResult] {
		return func(input string) (CommandResult, string, bool) {
			segments := mccombinator.SepBy1(s.CommandName.Resolve(st), mccombinator.Rune('.'))
			lookup := mccombinator.Map(segments, func(parts []string) CommandResult {
				key := strings.Join(parts, ".")
				if cmd := s.registry.Resolve(key); cmd != nil {
					return Ok[*mcregistry.Command, *NotFound](cmd)
				}
				return Err[*mcregistry.Command](&NotFound{Key: key})
			})
			return lookup(input)
		}
	}
}

// quoted parses a quote, exactly one interior character that is not the
// quote, and the closing quote
func quoted(q rune) mccombinator.Parser[string] {
	body := mccombinator.Satisfy(func(r rune) bool { return r != q })
	return mccombinator.Right(mccombinator.Rune(q), mccombinator.Left(body, mccombinator.Rune(q)))
}

// argvGrammar is the default middleware of the argv stack. With at
// least one leading whitespace character the whitespace run is consumed
// and tokens are parsed until none match; without leading whitespace
// the grammar succeeds with the empty string and consumes nothing. A
// bare token runs up to the next quote, end of input or the ambient
// terminator when the state carries one. The recognized pieces are
// concatenated without a delimiter and shaped into the argument vector.
func (s *Service) argvGrammar(Inner[mcargv.Shape]) StatedParser[mcargv.Shape] {
	return func(st State) mccombinator.Parser[mcargv.Shape] {
		stops := []mccombinator.Parser[string]{
			mccombinator.Rune('\''),
			mccombinator.Rune('"'),
			mccombinator.End(),
		}
		if st.Terminator != nil {
			stops = append(stops, st.Terminator)
		}

		bare := mccombinator.NotEmpty(mccombinator.Until(stops...))
		token := mccombinator.Alt(bare, quoted('\''), quoted('"'))

		whitespace := mccombinator.Some(mccombinator.Satisfy(unicode.IsSpace))
		joined := mccombinator.Alt(
			mccombinator.Right(whitespace, mccombinator.Join(mccombinator.Many(token))),
			mccombinator.Pure(""),
		)

		return mccombinator.Map(joined, mcargv.Parse)
	}
}

// rootGrammar is the default middleware of the root stack: command and
// argv in sequence over the same remaining input, both resolved with
// the state this grammar received. The inner stacks are composed at
// parse time, so layer changes are visible even to parses already in
// flight at the root. The parse result is a deferred action; nothing
// executes until the dispatcher invokes it.
func (s *Service) rootGrammar(Inner[Action]) StatedParser[Action] {
	return func(st State) mccombinator.Parser[Action] {
		return func(input string) (Action, string, bool) {
			seq := mccombinator.Bind(s.Command.Resolve(st), func(res CommandResult) mccombinator.Parser[Action] {
				return mccombinator.Map(s.Argv.Resolve(st), func(shape mcargv.Shape) Action {
					return s.makeAction(res, shape)
				})
			})
			return seq(input)
		}
	}
}

// makeAction binds a resolution outcome and argument shape into the
// deferred action the dispatcher runs
func (s *Service) makeAction(res CommandResult, shape mcargv.Shape) Action {
	return func(ctx context.Context, env Env) (*mcregistry.Fragment, error) {
		if res.IsErr() {
			notFound := res.Err()
			if s.options.SilenceUnknownCommands {
				s.logger.Debug("unknown command ignored", mclog.Fields{
					"command": notFound.Key,
				})
				return nil, nil
			}
			return nil, mcerror.Newf("unknown command: %s", notFound.Key).
				WithCode(mcerror.CodeCommandNotFound).
				WithSeverity(mcerror.SeverityLow).
				WithMessage("dispatch.command_not_found", map[string]interface{}{
					"Command": notFound.Key,
				}).
				WithDetail("command", notFound.Key)
		}

		call := &mcregistry.Call{
			Root:    true,
			Session: env.Session,
			Args:    shape.Args,
			Options: shape.Options,
			Raw:     shape.Raw,
		}
		return s.runner.Run(ctx, res.Val(), call)
	}
}
