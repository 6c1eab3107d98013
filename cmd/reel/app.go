package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/omdb"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/state"
	"github.com/mmcdole/reel/internal/store"
)

// application holds the services shared by the TUI and the subcommands
type application struct {
	cfg    *config.Config
	logger *slog.Logger

	storage    *store.LocalStore
	storageErr error // why storage fell back to memory, if it did

	store   *state.Store
	client  *omdb.Client
	search  *service.SearchService
	details *service.DetailService
	ratings *service.RatingsService
	browse  *service.BrowseService
}

func newApplication(cfg *config.Config) *application {
	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting reel", "version", Version)

	a := &application{cfg: cfg, logger: logger}

	a.storage, err = store.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("local storage unavailable, ratings will not persist", "path", cfg.Storage.Path, "error", err)
		a.storage = store.NewMemory()
		a.storageErr = err
	}

	a.store = state.New()
	a.client = omdb.NewClient(omdb.Options{
		BaseURL:   cfg.OMDb.BaseURL,
		APIKey:    cfg.OMDb.APIKey,
		Timeout:   cfg.OMDb.Timeout,
		UserAgent: cfg.OMDb.UserAgent,
	}, logger)

	a.search = service.NewSearchService(a.client, cfg.Search.RankResults, logger)
	a.details = service.NewDetailService(a.client, a.store, logger)
	a.ratings = service.NewRatingsService(a.store, a.storage, logger)
	a.browse = service.NewBrowseService(adapter.NewLauncher(cfg.Browser.Command, cfg.Browser.Args, logger), logger)

	a.ratings.Restore()
	a.ratings.Attach()
	return a
}

// requirePersistentStorage fails when ratings would silently be lost
func (a *application) requirePersistentStorage() error {
	if a.storageErr != nil {
		return fmt.Errorf("local storage unavailable: %w", a.storageErr)
	}
	if !a.storage.Persistent() {
		a.logger.Warn("storage.path is empty, ratings last only for this run")
	}
	return nil
}

// requestContext bounds n sequential OMDb calls by the configured timeout.
// A zero timeout leaves the client's own default in charge.
func (a *application) requestContext(parent context.Context, n int) (context.Context, context.CancelFunc) {
	if a.cfg.OMDb.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, time.Duration(max(n, 1))*a.cfg.OMDb.Timeout)
}

func (a *application) Close() {
	a.ratings.Detach()
	if err := a.storage.Close(); err != nil {
		a.logger.Error("failed to close local storage", "error", err)
	}
	a.logger.Info("shutting down")
}
