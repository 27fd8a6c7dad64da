package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/empetur/consolidacao/internal/config"
	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/repository"
	"github.com/empetur/consolidacao/internal/sheet"
	"github.com/empetur/consolidacao/internal/sqlite"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	source   string
	logLevel string
}

// app carries the state shared by every command: configuration, logger and
// the resources to release on exit.
type app struct {
	flags   globalFlags
	cfg     config.Config
	logger  *slog.Logger
	closers []func() error
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if a.flags.source != "" {
		cfg.Source.Path = a.flags.source
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	if cmd.Name() == "serve" {
		if mode, _ := cmd.Flags().GetString("transport"); mode != "" {
			cfg.Transport.Mode = mode
			if err := cfg.Transport.Validate(); err != nil {
				return fmt.Errorf("config error: %w", err)
			}
		}
	}
	a.cfg = cfg

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stderr)
	if cmd.Name() == "serve" && cfg.Transport.Mode == "http" {
		logWriter = os.Stdout
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file.Close)
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

// openSource opens the table repository of an existing source, choosing the
// backend from its extension. The returned DB is non-nil for SQLite sources.
func (a *app) openSource(path string) (repository.TableRepository, *sqlite.DB, error) {
	return a.openTable(path, false)
}

// openTarget is openSource for a table that may not exist yet.
func (a *app) openTarget(path string) (repository.TableRepository, *sqlite.DB, error) {
	return a.openTable(path, true)
}

func (a *app) openTable(path string, create bool) (repository.TableRepository, *sqlite.DB, error) {
	backend, err := config.SourceConfig{Path: path}.Backend()
	if err != nil {
		return nil, nil, err
	}
	switch backend {
	case config.BackendSQLite:
		if !create {
			// sqlite.Open would create an empty database file.
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				return nil, nil, fmt.Errorf("%w: %s", repository.ErrSourceNotFound, path)
			}
		}
		if err := ensureDBDir(path); err != nil {
			return nil, nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, db.Close)
		return sqlite.NewTableRepository(db), db, nil
	default:
		repo, err := sheet.NewFileRepository(path, a.logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	}
}

// openActivity opens the activity log. It shares sourceDB when the activity
// DSN points at the SQLite source itself.
func (a *app) openActivity(sourceDB *sqlite.DB) (*activity.Service, error) {
	dsn := a.cfg.ActivityDataSource()
	db := sourceDB
	if db == nil || dsn != a.cfg.Source.Path {
		if err := ensureDBDir(dsn); err != nil {
			return nil, fmt.Errorf("prepare activity path: %w", err)
		}
		opened, err := sqlite.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("open activity log: %w", err)
		}
		a.closers = append(a.closers, opened.Close)
		db = opened
	}
	return activity.NewService(sqlite.NewActivityRepository(db), a.logger), nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
