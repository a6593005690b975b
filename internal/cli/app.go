package cli

import (
	"github.com/spf13/cobra"

	"github.com/badrsabra/clinicpro/internal/auth"
	"github.com/badrsabra/clinicpro/internal/backup"
	"github.com/badrsabra/clinicpro/internal/config"
	"github.com/badrsabra/clinicpro/internal/notify"
	"github.com/badrsabra/clinicpro/internal/reports"
	"github.com/badrsabra/clinicpro/internal/scheduling"
	"github.com/badrsabra/clinicpro/internal/storage"
	"github.com/badrsabra/clinicpro/internal/store"
)

// app is the wired object graph every command works against. The store
// instance is passed into each service explicitly; nothing reaches for
// package-level state.
type app struct {
	cfg      config.Config
	adapter  *storage.SQLite
	db       *store.DB
	auth     *auth.Manager
	notifier *notify.Service
	sched    *scheduling.Engine
	backups  *backup.Manager
	reports  *reports.Service
}

// openApp loads configuration, opens the storage adapter and wires the
// services. A probe failure surfaces as a command error - the store
// refuses to initialize without working storage.
func openApp(opts *RootOptions) (*app, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load config", err)
		}
		cfg = loaded
	}

	adapter, err := storage.OpenSQLite(opts.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open storage", err)
	}

	db, err := store.New(adapter, store.Options{})
	if err != nil {
		adapter.Close()
		return nil, WrapExitError(ExitCommandError, "initialize store", err)
	}

	notifier := notify.NewService(db)
	return &app{
		cfg:      cfg,
		adapter:  adapter,
		db:       db,
		auth:     auth.NewManager(db, notifier, cfg.Security),
		notifier: notifier,
		sched:    scheduling.NewEngine(db, notifier, cfg),
		backups:  backup.NewManager(db, cfg.Backup),
		reports:  reports.NewService(db),
	}, nil
}

func (a *app) Close() {
	a.adapter.Close()
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
