package http

import (
	"github.com/mrlokans/slokas/internal/kvstore"
	"github.com/mrlokans/slokas/internal/lifecycle"
	"github.com/mrlokans/slokas/internal/scheduler"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Slokas  SlokaReader
	Tracker EngagementTracker
	Profile ProfileStore

	// Lifecycle events from the client are published here
	Signal *lifecycle.Signal

	// Store is pinged by the health check
	Store kvstore.Backend

	// Rotation is optional; nil when the daily rotation job is not wired
	Rotation *scheduler.DailyRotationScheduler

	// Application info
	Version string
}
