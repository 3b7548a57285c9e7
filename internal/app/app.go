package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/catalog"
	"github.com/five82/shutter/internal/config"
	"github.com/five82/shutter/internal/logging"
	"github.com/five82/shutter/internal/metrics"
	"github.com/five82/shutter/internal/prefs"
	"github.com/five82/shutter/internal/store"
	"github.com/five82/shutter/internal/ui"
	"github.com/five82/shutter/internal/upload"
)

// initialLoadWait bounds how long startup waits for the first responses
// before showing the UI with whatever arrived.
const initialLoadWait = 3 * time.Second

// Options configure the shutter application. Non-zero fields override the
// config file and environment.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/shutter/prefs.toml
	APIURL       string
	UserID       int64
	RefreshEvery time.Duration
	LogLevel     string
}

// Run boots the shutter TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	logger, closer, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Path:   cfg.LogPath(),
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	policies, err := cfg.StorePolicies()
	if err != nil {
		return err
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		addr, err := metrics.Serve(ctx, cfg.MetricsAddr, m, logger)
		if err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		logger.Info("metrics listening", "addr", addr.String())
	}

	client, err := api.NewClient(cfg.APIURL, api.Options{
		SessionCookie: cfg.SessionCookie,
		CSRFToken:     cfg.CSRFToken,
	})
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	st := store.New(store.Options{Policies: policies, Observer: m})
	cat := catalog.New(client, st, catalog.Options{Logger: logger, Metrics: m})

	logger.Info("shutter starting",
		"api", client.BaseURL(),
		"user_id", cfg.UserID,
		"refresh_every", cfg.RefreshEvery,
	)

	initialLoad(ctx, cat, cfg.UserID, initialLoadWait, logger)
	StartPoller(ctx, cat, cfg.RefreshEvery, logger)

	return ui.Run(ui.Options{
		Context: ctx,
		Catalog: cat,
		Logger:  logger,
		UserID:  cfg.UserID,
		Upload: upload.Options{
			MaxDimension: cfg.Upload.MaxDimension,
			JPEGQuality:  cfg.Upload.JPEGQuality,
		},
		LogPath:   cfg.LogPath(),
		ThemeName: userPrefs.Theme,
		UserTab:   userPrefs.UserTab,
		PrefsPath: opts.PrefsPath,
	})
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.UserID > 0 {
		cfg.UserID = opts.UserID
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshEvery = opts.RefreshEvery
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
}

// initialLoad fetches the feed, the album list and the user's photos in
// parallel so the first frame has data. It waits at most wait for them; the
// requests themselves are not cut short, and late responses merge and record
// their outcome in the background. A failed feed load counts toward the
// offline state like any other feed refresh.
func initialLoad(ctx context.Context, cat *catalog.Catalog, userID int64, wait time.Duration, logger *slog.Logger) {
	logger = logging.OrDiscard(logger)

	photos := catalog.Go(ctx, cat.FetchPhotos)
	albums := catalog.Go(ctx, cat.FetchAlbums)
	var mine *catalog.Task[[]api.Photo]
	if userID > 0 {
		mine = catalog.Go(ctx, func(ctx context.Context) ([]api.Photo, error) {
			return cat.FetchUserPhotos(ctx, userID)
		})
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := photos.Wait()
		if err != nil && ctx.Err() != nil {
			return
		}
		recordFeed(cat.Store(), err)
		if err != nil {
			logger.Warn("initial feed load failed", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := albums.Wait(); err != nil {
			logger.Warn("initial album load failed", "error", err)
		}
	}()
	if mine != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := mine.Wait(); err != nil {
				logger.Warn("initial user photo load failed", "user_id", userID, "error", err)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-done:
	case <-ctx.Done():
	case <-timer.C:
		logger.Info("initial load still running, starting ui", "waited", wait)
	}
}
