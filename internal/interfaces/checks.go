package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/slokas/internal/http"
	"github.com/mrlokans/slokas/internal/kvstore"
	"github.com/mrlokans/slokas/internal/lifecycle"
	"github.com/mrlokans/slokas/internal/scheduler"
	"github.com/mrlokans/slokas/internal/settingsstore"
	"github.com/mrlokans/slokas/internal/slokas"
	"github.com/mrlokans/slokas/internal/tracker"
)

// =============================================================================
// Storage
// =============================================================================

// Backend implementations
var _ kvstore.Backend = (*kvstore.SQLStore)(nil)
var _ kvstore.Backend = (*kvstore.BadgerStore)(nil)
var _ kvstore.Backend = (*kvstore.MemoryStore)(nil)

// Atomic pair writes
var _ kvstore.BatchStore = (*kvstore.SQLStore)(nil)
var _ kvstore.BatchStore = (*kvstore.BadgerStore)(nil)
var _ kvstore.BatchStore = (*kvstore.MemoryStore)(nil)

// =============================================================================
// Domain
// =============================================================================

// SlokaSource implementations
var _ tracker.SlokaSource = (*slokas.Repository)(nil)
var _ http.SlokaReader = (*slokas.Repository)(nil)

// Tracker consumers
var _ http.EngagementTracker = (*tracker.Tracker)(nil)
var _ lifecycle.Foregrounder = (*tracker.Tracker)(nil)
var _ scheduler.DailyResolver = (*tracker.Tracker)(nil)

// ProfileStore implementations
var _ http.ProfileStore = (*settingsstore.SettingsStore)(nil)
