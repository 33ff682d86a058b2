// Package main implements the entry point for the Quill API server, a small
// authenticated blogging service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phrazzld/quill-api/internal/apperr"
	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/platform/postgres/migrations"
	"github.com/phrazzld/quill-api/internal/redact"
)

// options are the command-line flags of the server.
type options struct {
	configFile string
	migrate    string
	seed       bool
	verbose    bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configFile, "config", "", "path to a config file (default: ./config.yaml if present)")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command and exit: "+strings.Join(migrations.Commands, "|"))
	fs.BoolVar(&opts.seed, "seed", false, "insert the demo users and posts and exit")
	fs.BoolVar(&opts.verbose, "verbose", false, "log at debug level")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	defer func() {
		if rec := recover(); rec != nil {
			if err, ok := rec.(error); ok && apperr.IsOperational(err) {
				slog.Warn("operational panic outside a request", "error", redact.Error(err))
				return
			}
			slog.Error("panic outside a request",
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run is the whole process lifecycle; main only turns its error into an
// exit status.
func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	if opts.verbose {
		cfg.Server.LogLevel = "debug"
	}

	log := logger.Setup(cfg.Server)
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	ctx = logger.WithLogger(ctx, log)

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	switch {
	case opts.migrate != "":
		return runMigrations(ctx, db, opts.migrate, log)
	case opts.seed:
		return seedDatabase(ctx, db, cfg.Auth, log)
	}

	if err := runMigrations(ctx, db, migrations.CommandUp, log); err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
