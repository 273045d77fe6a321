package cmd

import (
	"context"
	"os"
	"strings"

	mcconfig "github.com/msto63/mChat/core/config"
	mci18n "github.com/msto63/mChat/core/i18n"
	mclog "github.com/msto63/mChat/core/log"
	mcdispatch "github.com/msto63/mChat/dispatch"
	mcregistry "github.com/msto63/mChat/registry"
	mcruntime "github.com/msto63/mChat/runtime"
	mcsession "github.com/msto63/mChat/session"
)

// app bundles the wired service components shared by repl and serve
type app struct {
	cfg      *mcconfig.Config
	logger   *mclog.Logger
	messages *mci18n.Manager
	history  mcsession.HistoryStore
	registry *mcregistry.Registry
	service  *mcdispatch.Service
}

func buildApp() (*app, error) {
	cfg, err := mcconfig.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level, err := mclog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = mclog.LevelDebug
	}
	format, err := mclog.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	logger := mclog.NewWithConfig(mclog.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
		Name:   "mchat",
	})
	mclog.SetDefault(logger)

	messages, err := mci18n.New(mci18n.Options{
		Locale:    cfg.I18n.Locale,
		LocaleDir: cfg.I18n.LocaleDir,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	var history mcsession.HistoryStore = mcsession.NopHistoryStore{}
	if cfg.History.Enabled {
		store, err := mcsession.NewSQLiteHistoryStore(mcsession.HistoryConfig{Path: cfg.History.Path})
		if err != nil {
			return nil, err
		}
		history = store
	}

	registry, err := mcregistry.New()
	if err != nil {
		return nil, err
	}
	if err := registerCommands(registry, history); err != nil {
		return nil, err
	}

	runner, err := mcruntime.NewLocalRunner(mcruntime.Options{
		Logger:  logger,
		History: history,
	})
	if err != nil {
		return nil, err
	}

	service, err := mcdispatch.New(mcdispatch.Options{
		Logger:                 logger,
		Registry:               registry,
		Runner:                 runner,
		SilenceUnknownCommands: !cfg.Dispatch.ReportCommandNotFound,
		MaxInputLength:         cfg.Dispatch.MaxInputLength,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		messages: messages,
		history:  history,
		registry: registry,
		service:  service,
	}, nil
}

func (a *app) close() {
	if err := a.history.Close(); err != nil {
		a.logger.WarnWithErr("failed to close history store", err, nil)
	}
}

// registerCommands installs the commands shipped with the binary
func registerCommands(registry *mcregistry.Registry, history mcsession.HistoryStore) error {
	echo := &mcregistry.Command{
		Path:        "echo",
		Description: "Echo the arguments back",
		Handler: func(ctx context.Context, call *mcregistry.Call) (*mcregistry.Fragment, error) {
			return mcregistry.NewFragment(strings.Join(call.Args, " ")), nil
		},
	}
	if err := registry.Register(echo); err != nil {
		return err
	}

	version := &mcregistry.Command{
		Path:        "version",
		Description: "Show the service version",
		Handler: func(ctx context.Context, call *mcregistry.Call) (*mcregistry.Fragment, error) {
			return mcregistry.NewFragment("mChat v" + Version), nil
		},
	}
	if err := registry.Register(version); err != nil {
		return err
	}

	recent := &mcregistry.Command{
		Path:        "session.history",
		Description: "Show recent commands of this session",
		Handler: func(ctx context.Context, call *mcregistry.Call) (*mcregistry.Fragment, error) {
			if call.Session == nil {
				return mcregistry.NewFragment("No session."), nil
			}
			entries, err := history.Recent(ctx, call.Session.ID, 10)
			if err != nil {
				return nil, err
			}
			if len(entries) == 0 {
				return mcregistry.NewFragment("No history yet."), nil
			}
			lines := make([]string, len(entries))
			for i, entry := range entries {
				lines[i] = entry.Command + " " + entry.Input
			}
			return mcregistry.NewFragment(strings.Join(lines, "\n")), nil
		},
	}
	if err := registry.Register(recent); err != nil {
		return err
	}

	return registry.RegisterAlias("v", "version")
}
