package entrypoint

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/slokas/internal/config"
	"github.com/mrlokans/slokas/internal/kvstore"
	"github.com/mrlokans/slokas/internal/lifecycle"
	"github.com/mrlokans/slokas/internal/logging"
	"github.com/mrlokans/slokas/internal/scheduler"
	"github.com/mrlokans/slokas/internal/settingsstore"
	"github.com/mrlokans/slokas/internal/slokas"
	"github.com/mrlokans/slokas/internal/tracker"
)

// App is the wired service graph shared by the server and CLI commands.
type App struct {
	Config   *config.Config
	Store    kvstore.Backend
	Slokas   *slokas.Repository
	Tracker  *tracker.Tracker
	Profile  *settingsstore.SettingsStore
	Signal   *lifecycle.Signal
	Rotation *scheduler.DailyRotationScheduler
}

// NewApp opens the store, loads the slokas and hydrates the tracker.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := logging.SetLogLevel(cfg.Global.LogLevel); err != nil {
		return nil, err
	}
	if cfg.DailyRotation.Enabled {
		if err := scheduler.ValidateSchedule(cfg.DailyRotation.Schedule); err != nil {
			return nil, fmt.Errorf("invalid DAILY_ROTATION_SCHEDULE %q: %w", cfg.DailyRotation.Schedule, err)
		}
	}

	repo, err := slokas.Open(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load slokas: %w", err)
	}

	store, err := kvstore.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}

	loc := cfg.Daily.Location()
	t := tracker.New(store, repo,
		tracker.WithLocation(loc),
		tracker.WithInactivityThreshold(cfg.Daily.InactivityThreshold),
	)
	snap := t.Initialize(ctx)

	logging.Component("entrypoint").WithFields(logrus.Fields{
		"backend":    cfg.Storage.Backend,
		"slokas":     repo.Len(),
		"favourites": len(snap.Favorites),
		"read":       snap.ReadCount,
		"visited":    snap.VisitedCount,
		"timezone":   loc.String(),
	}).Info("State loaded")

	return &App{
		Config:   cfg,
		Store:    store,
		Slokas:   repo,
		Tracker:  t,
		Profile:  settingsstore.New(store, cfg.Profile.DefaultUsername),
		Signal:   lifecycle.NewSignal(),
		Rotation: scheduler.NewDailyRotationScheduler(t, cfg.DailyRotation, loc),
	}, nil
}

// Close stops background work and closes the store.
func (a *App) Close() error {
	a.Rotation.Stop()
	a.Signal.Close()
	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
