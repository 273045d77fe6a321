// File: registry_test.go
// Title: Command Registry Tests
// Description: Unit tests for command registration, resolution, aliases,
//              unregistration and the builtin help commands.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package registry

import (
	"context"
	"io"
	"strings"
	"testing"

	mclog "github.com/msto63/mChat/core/log"
)

func quietLogger() *mclog.Logger {
	return mclog.NewWithConfig(mclog.Config{
		Level:  mclog.LevelFatal,
		Output: io.Discard,
	})
}

func noopHandler(ctx context.Context, call *Call) (*Fragment, error) {
	return NewFragment("done"), nil
}

func newTestRegistry(t *testing.T, opts Options) *Registry {
	t.Helper()
	opts.Logger = quietLogger()
	r, err := NewWithOptions(opts)
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	return r
}

func TestRegisterAndResolve(t *testing.T) {
	r := newTestRegistry(t, Options{})

	cmd := &Command{Path: "admin.user.ban", Handler: noopHandler}
	if err := r.Register(cmd); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if got := r.Resolve("admin.user.ban"); got != cmd {
		t.Errorf("Resolve returned %+v", got)
	}
	if got := r.Resolve("admin.user"); got != nil {
		t.Errorf("partial path resolved to %+v", got)
	}
	if got := r.Resolve("missing"); got != nil {
		t.Errorf("unknown path resolved to %+v", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRegistry(t, Options{})

	tests := []struct {
		name string
		cmd  *Command
	}{
		{"nil command", nil},
		{"empty path", &Command{Path: "  ", Handler: noopHandler}},
		{"nil handler", &Command{Path: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Register(tt.cmd); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRegisterRejectsDuplicatePath(t *testing.T) {
	r := newTestRegistry(t, Options{})

	if err := r.Register(&Command{Path: "dup", Handler: noopHandler}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(&Command{Path: "dup", Handler: noopHandler}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestUnregister(t *testing.T) {
	r := newTestRegistry(t, Options{})
	r.Register(&Command{Path: "temp", Handler: noopHandler})

	if !r.Unregister("temp") {
		t.Error("expected true for existing command")
	}
	if r.Has("temp") {
		t.Error("command still resolvable after unregister")
	}
	if r.Unregister("temp") {
		t.Error("expected false for missing command")
	}
}

func TestAliases(t *testing.T) {
	r := newTestRegistry(t, Options{EnableAliases: true})
	cmd := &Command{Path: "weather.today", Handler: noopHandler}
	r.Register(cmd)

	if err := r.RegisterAlias("wx", "weather.today"); err != nil {
		t.Fatalf("alias registration failed: %v", err)
	}
	if got := r.Resolve("wx"); got != cmd {
		t.Errorf("alias resolved to %+v", got)
	}

	aliases := r.Aliases()
	if aliases["wx"] != "weather.today" {
		t.Errorf("aliases = %v", aliases)
	}
	// The returned map is a copy.
	aliases["wx"] = "tampered"
	if got := r.Resolve("wx"); got != cmd {
		t.Error("alias table was not copied")
	}
}

func TestAliasesDisabled(t *testing.T) {
	r := newTestRegistry(t, Options{EnableAliases: false})
	r.Register(&Command{Path: "target", Handler: noopHandler})

	if err := r.RegisterAlias("t", "target"); err == nil {
		t.Error("expected alias registration to fail")
	}
}

func TestPathsSorted(t *testing.T) {
	r := newTestRegistry(t, Options{})
	for _, path := range []string{"zeta", "alpha", "beta.one"} {
		r.Register(&Command{Path: path, Handler: noopHandler})
	}

	paths := r.Paths()
	want := []string{"alpha", "beta.one", "zeta"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestBuiltinHelp(t *testing.T) {
	r := newTestRegistry(t, Options{EnableBuiltins: true})
	r.Register(&Command{Path: "greet", Description: "Say hello", Handler: noopHandler})

	help := r.Resolve("help")
	if help == nil {
		t.Fatal("help command not registered")
	}
	fragment, err := help.Handler(context.Background(), &Call{})
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !strings.Contains(fragment.Text, "greet") || !strings.Contains(fragment.Text, "Say hello") {
		t.Errorf("help output missing command: %q", fragment.Text)
	}

	list := r.Resolve("help.commands")
	if list == nil {
		t.Fatal("help.commands not registered")
	}
	fragment, err = list.Handler(context.Background(), &Call{})
	if err != nil {
		t.Fatalf("help.commands failed: %v", err)
	}
	if !strings.Contains(fragment.Text, "greet") {
		t.Errorf("command list missing greet: %q", fragment.Text)
	}
}
