// @title Animal Shelter Dashboard API
// @version 1.0
// @description Dashboard de egresos del refugio y API de registros.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelter-dashboard/internal/adapters/storage"
	"shelter-dashboard/internal/dashboard"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/config"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/platform/metrics"
	"shelter-dashboard/internal/router"
	"shelter-dashboard/internal/seed"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    logger.DefaultApp,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fatal", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	m := metrics.New(cfg.Store.Driver)

	// Conexión al store: una sola, compartida por todo el proceso.
	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	store, err := storage.Open(openCtx, cfg.Store, log)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}()

	svc := animals.NewService(store.Records, log, m)

	// En memoria no hay datos previos: el seed es la única fuente.
	if cfg.Store.Driver == config.DriverMemory && cfg.Store.SeedFile != "" {
		if _, err := seed.Run(ctx, svc, cfg.Store.SeedFile, "", nil, log); err != nil {
			return err
		}
	}

	snap, err := svc.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	app, err := dashboard.NewApp(snap, svc, settingsFrom(cfg.Dashboard), m, log)
	if err != nil {
		return err
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		w, err := config.NewWatcher(path, log, func(c *config.Config) {
			app.ApplySettings(settingsFrom(c.Dashboard))
			log.Info("dashboard settings reloaded", map[string]any{"title": c.Dashboard.Title})
		})
		if err != nil {
			log.Warn("config watcher disabled", map[string]any{"error": err.Error()})
		} else {
			defer w.Stop()
		}
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Options{
			Service:     svc,
			App:         app,
			Metrics:     m,
			Logger:      log,
			OperatorKey: cfg.Server.OperatorKey,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Server.Addr, "driver": cfg.Store.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func settingsFrom(d config.DashboardConfig) dashboard.Settings {
	config.ApplyDashboardDefaults(&d)
	return dashboard.Settings{
		Title:          d.Title,
		HeaderImage:    d.HeaderImage,
		PageSize:       d.PageSize,
		MapZoom:        d.MapZoom,
		HighlightColor: d.HighlightColor,
	}
}
