// Command generate_demo creates a demo store with a week of reading history.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/slokas/internal/config"
	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/kvstore"
	"github.com/mrlokans/slokas/internal/logging"
	"github.com/mrlokans/slokas/internal/settingsstore"
	"github.com/mrlokans/slokas/internal/slokas"
	"github.com/mrlokans/slokas/internal/tracker"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	dataDir := flag.String("data", "", "directory with chapter*.json files (default: bundled set)")
	days := flag.Int("days", 7, "number of simulated days of history")
	flag.Parse()

	log := logging.Component("generate_demo")
	log.WithField("path", *dbPath).Info("Generating demo database")

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Fatal("Failed to remove existing demo database")
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.WithError(err).Fatal("Failed to create demo directory")
	}

	repo, err := slokas.Open(*dataDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to load slokas")
	}

	store, err := kvstore.Open(config.Storage{Backend: config.StorageBackendSQLite, DatabasePath: *dbPath})
	if err != nil {
		log.WithError(err).Fatal("Failed to create database")
	}
	defer store.Close()

	ctx := context.Background()
	start := time.Now().AddDate(0, 0, -*days)
	day := start
	t := tracker.New(store, repo, tracker.WithClock(func() time.Time { return day }))
	t.Initialize(ctx)

	// Read every daily sloka, favourite every third one
	for i := 0; i <= *days; i++ {
		day = start.AddDate(0, 0, i)
		s, err := t.DailySloka(ctx)
		if err != nil {
			log.WithError(err).Fatal("Failed to resolve daily sloka")
		}
		t.MarkRead(ctx, s.ID)
		if i%3 == 0 && !t.IsFavorite(s.ID) {
			t.ToggleFavorite(ctx, s)
		}
		log.WithFields(logrus.Fields{
			"date":  day.Format(entities.DateLayout),
			"sloka": s.ID,
		}).Info("Simulated day")
	}

	if err := settingsstore.New(store, "").SetUsername(ctx, "Demo Reader"); err != nil {
		log.WithError(err).Warn("Failed to set demo username")
	}

	snap := t.Snapshot()
	log.WithFields(logrus.Fields{
		"read":       snap.ReadCount,
		"favourites": len(snap.Favorites),
		"visited":    snap.VisitedCount,
	}).Info("Demo database generated successfully")
}
