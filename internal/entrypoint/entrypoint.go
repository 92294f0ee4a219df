package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/slokas/internal/config"
	"github.com/mrlokans/slokas/internal/entities"
	http_controllers "github.com/mrlokans/slokas/internal/http"
	"github.com/mrlokans/slokas/internal/lifecycle"
	"github.com/mrlokans/slokas/internal/logging"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until ctx is done, then shuts it down within
// the configured timeout.
func Serve(ctx context.Context, router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	log := logging.Component("entrypoint")
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.WithField("timeout", timeout.String()).Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

// Run serves the API until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return RunContext(ctx, cfg, version)
}

// RunContext wires the application and serves until ctx is done.
func RunContext(ctx context.Context, cfg *config.Config, version string) error {
	log := logging.Component("entrypoint")
	log.WithField("version", version).Info("Starting slokas")

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.WithError(err).Error("Error closing application")
		}
	}()

	// Resolve once so a fresh install has a daily sloka before any request
	if _, err := app.Tracker.DailySloka(ctx); err != nil {
		log.WithError(err).Warn("Could not resolve the daily sloka at startup")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	watcher := lifecycle.NewWatcher(app.Signal, app.Tracker,
		lifecycle.WithOnRefresh(func(s entities.Sloka) {
			log.WithField("sloka", s.ID).Info("Daily sloka refreshed")
		}),
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		watcher.Run(runCtx)
	}()

	if err := app.Rotation.Start(runCtx); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Slokas:   app.Slokas,
		Tracker:  app.Tracker,
		Profile:  app.Profile,
		Signal:   app.Signal,
		Store:    app.Store,
		Rotation: app.Rotation,
		Version:  version,
	})

	err = Serve(ctx, router, cfg, func(context.Context) {
		cancel()
		app.Rotation.Stop()
		wg.Wait()
	})
	cancel()
	wg.Wait()
	return err
}
