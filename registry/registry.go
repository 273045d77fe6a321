// File: registry.go
// Title: Command Registry
// Description: Implements the registry of executable chat commands. Commands
//              are addressed by dotted paths ("weather", "admin.user.ban"),
//              may carry aliases, and are resolved fresh for every parse so
//              registration changes take effect immediately.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package registry

import (
	"context"
	"sort"
	"strings"
	"sync"

	mcerror "github.com/msto63/mChat/core/error"
	mclog "github.com/msto63/mChat/core/log"
	mcsession "github.com/msto63/mChat/session"
)

// Fragment is the response produced by an executed command
type Fragment struct {
	// Text is the user-visible response text
	Text string

	// Data carries optional structured response data
	Data map[string]interface{}
}

// NewFragment creates a text-only response fragment
func NewFragment(text string) *Fragment {
	return &Fragment{Text: text}
}

// Call carries everything a command handler needs for one invocation
type Call struct {
	// Root marks an invocation entered directly by a user rather than
	// triggered by another command
	Root bool

	// Session is the chat session the input arrived on
	Session *mcsession.Session

	// Args holds the positional arguments
	Args []string

	// Options holds flag arguments (--key=value, --flag, -abc)
	Options map[string]string

	// Raw is the joined argument text before shaping
	Raw string
}

// HandlerFunc executes a command invocation
type HandlerFunc func(ctx context.Context, call *Call) (*Fragment, error)

// Command describes one registered command
type Command struct {
	// Path is the full dotted command path
	Path string

	// Description is a short help text
	Description string

	// Handler executes the command
	Handler HandlerFunc
}

// Registry holds the registered commands and aliases
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
	logger   *mclog.Logger
	options  Options
	mutex    sync.RWMutex
}

// Options configures the registry
type Options struct {
	// Logger for registry operations (optional)
	Logger *mclog.Logger

	// EnableAliases allows alias registration and resolution
	// (default: true via New)
	EnableAliases bool

	// EnableBuiltins registers the builtin help commands
	// (default: true via New)
	EnableBuiltins bool
}

// New creates a registry with aliases and builtins enabled
func New() (*Registry, error) {
	return NewWithOptions(Options{EnableAliases: true, EnableBuiltins: true})
}

// NewWithOptions creates a registry with the given options
func NewWithOptions(opts Options) (*Registry, error) {
	if opts.Logger == nil {
		opts.Logger = mclog.GetDefault()
	}

	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
		logger:   opts.Logger.WithField("component", "registry"),
		options:  opts,
	}

	if opts.EnableBuiltins {
		if err := r.registerBuiltins(); err != nil {
			return nil, mcerror.Wrap(err, "failed to register builtin commands")
		}
	}

	r.logger.Info("command registry initialized", mclog.Fields{
		"commandCount":   len(r.commands),
		"enableAliases":  opts.EnableAliases,
		"enableBuiltins": opts.EnableBuiltins,
	})

	return r, nil
}

// Register adds a command under its dotted path
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil {
		return mcerror.New("command cannot be nil").WithCode(mcerror.CodeInvalidInput)
	}
	if strings.TrimSpace(cmd.Path) == "" {
		return mcerror.New("command path cannot be empty").WithCode(mcerror.CodeInvalidInput)
	}
	if cmd.Handler == nil {
		return mcerror.New("command handler cannot be nil").
			WithCode(mcerror.CodeInvalidInput).
			WithDetail("path", cmd.Path)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.commands[cmd.Path]; exists {
		return mcerror.Newf("command %s already registered", cmd.Path).
			WithCode(mcerror.CodeInvalidInput).
			WithDetail("path", cmd.Path)
	}
	r.commands[cmd.Path] = cmd

	r.logger.Debug("command registered", mclog.Fields{"path": cmd.Path})
	return nil
}

// Unregister removes the command at path, reporting whether it existed
func (r *Registry) Unregister(path string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.commands[path]
	delete(r.commands, path)
	return exists
}

// RegisterAlias maps alias onto the command at path
func (r *Registry) RegisterAlias(alias, path string) error {
	if !r.options.EnableAliases {
		return mcerror.New("aliases are disabled in this registry").
			WithCode(mcerror.CodeInvalidInput)
	}
	if strings.TrimSpace(alias) == "" || strings.TrimSpace(path) == "" {
		return mcerror.New("alias and path cannot be empty").
			WithCode(mcerror.CodeInvalidInput)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.aliases[alias] = path

	r.logger.Debug("alias registered", mclog.Fields{"alias": alias, "path": path})
	return nil
}

// Resolve looks up the command registered under the exact dotted key.
// When no command matches and aliases are enabled, the key is retried
// as an alias. Resolve returns nil when nothing matches; absence of a
// command is an ordinary outcome, not an error.
func (r *Registry) Resolve(key string) *Command {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if cmd, ok := r.commands[key]; ok {
		return cmd
	}
	if r.options.EnableAliases {
		if target, ok := r.aliases[key]; ok {
			return r.commands[target]
		}
	}
	return nil
}

// Has reports whether a command (or alias) exists for key
func (r *Registry) Has(key string) bool {
	return r.Resolve(key) != nil
}

// Paths returns the sorted dotted paths of all registered commands
func (r *Registry) Paths() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	paths := make([]string, 0, len(r.commands))
	for path := range r.commands {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Aliases returns a copy of the alias table
func (r *Registry) Aliases() map[string]string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	aliases := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		aliases[k] = v
	}
	return aliases
}

// registerBuiltins installs the help commands every deployment gets
func (r *Registry) registerBuiltins() error {
	help := &Command{
		Path:        "help",
		Description: "Show available commands",
		Handler: func(ctx context.Context, call *Call) (*Fragment, error) {
			return r.helpFragment(), nil
		},
	}
	if err := r.Register(help); err != nil {
		return err
	}

	list := &Command{
		Path:        "help.commands",
		Description: "List all registered command paths",
		Handler: func(ctx context.Context, call *Call) (*Fragment, error) {
			return NewFragment(strings.Join(r.Paths(), "\n")), nil
		},
	}
	return r.Register(list)
}

func (r *Registry) helpFragment() *Fragment {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	paths := make([]string, 0, len(r.commands))
	for path := range r.commands {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, path := range paths {
		b.WriteString("  ")
		b.WriteString(path)
		if desc := r.commands[path].Description; desc != "" {
			b.WriteString(" - ")
			b.WriteString(desc)
		}
		b.WriteString("\n")
	}
	return NewFragment(strings.TrimRight(b.String(), "\n"))
}
