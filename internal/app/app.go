package app

import (
	"context"
	"fmt"

	"github.com/five82/cohort/internal/cohortapi"
	"github.com/five82/cohort/internal/config"
	"github.com/five82/cohort/internal/i18n"
	"github.com/five82/cohort/internal/listview"
	"github.com/five82/cohort/internal/location"
	"github.com/five82/cohort/internal/logging"
	"github.com/five82/cohort/internal/prefs"
	"github.com/five82/cohort/internal/state"
	"github.com/five82/cohort/internal/ui"
)

// Options configure the list browser.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/cohort/prefs.toml
	Address    string // starting address; empty opens the configured base path
}

// Run boots the list browser until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	translator, err := i18n.New(cfg.Language, logger)
	if err != nil {
		return fmt.Errorf("init translations: %w", err)
	}

	client, err := cohortapi.NewClient(cfg.APIBind, cohortapi.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	address := opts.Address
	if address == "" {
		address = listview.CloseAddress(cfg.BasePath)
	}
	store := &state.Store{}

	p, cleanup := ui.NewProgram(ui.Options{
		Context:    ctx,
		Service:    client,
		Store:      store,
		History:    location.New(address),
		Translator: translator,
		Logger:     logger,
		Config:     &cfg,
		ThemeName:  userPrefs.Theme,
		Mode:       listview.ParseViewMode(userPrefs.ViewMode),
		PageSize:   userPrefs.PageSize,
		PrefsPath:  prefsPath,
	})
	defer cleanup()

	logger.Info("list browser starting",
		"api", cfg.APIBind,
		"address", address,
		"language", translator.Language().String(),
	)

	// Revalidation stops with the program; the context covers the rest.
	revalCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	StartRevalidator(revalCtx, store, p, cfg.RevalidateEvery, logger)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("list browser stopped")
	return nil
}
