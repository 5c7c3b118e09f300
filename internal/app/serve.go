package app

import (
	"context"
	"fmt"
	"net"

	"github.com/five82/cohort/internal/catalog"
	"github.com/five82/cohort/internal/config"
	"github.com/five82/cohort/internal/logging"
	"github.com/five82/cohort/internal/server"
)

// ServeOptions configure the patient-list API backend.
type ServeOptions struct {
	ConfigPath string
	Listen     string // overrides the configured listen address
	DBPath     string // overrides the configured database path
	Seed       bool   // insert the demo lists into an empty catalog
	Ready      func(addr net.Addr)
}

// Serve runs the patient-list API over the SQLite catalog until ctx is
// cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}

	logger, closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	cat, err := catalog.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = cat.Close() }()

	if version, err := cat.SchemaVersion(); err == nil {
		logger.Info("catalog ready", "path", cfg.DBPath, "schema_version", version)
	}

	if opts.Seed {
		n, err := cat.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("catalog seeded", "lists", n)
	}

	srv := server.New(server.Config{
		Store:  cat,
		Logger: logger,
		Ready:  opts.Ready,
	})
	return srv.Serve(ctx, cfg.Listen)
}
