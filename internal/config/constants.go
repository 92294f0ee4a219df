package config

import "time"

// Default paths for storage backends
const (
	// DefaultDatabasePath is the default path for the sqlite key-value store
	DefaultDatabasePath = "./slokas.db"

	// DefaultBadgerDir is the default directory for the badger key-value store
	DefaultBadgerDir = "./slokas-badger"
)

const (
	// DefaultInactivityThreshold is how long the app must be in the background
	// before returning to the foreground re-checks the daily sloka.
	DefaultInactivityThreshold = 30 * time.Minute

	// DefaultUsername is shown on the profile until the user sets a name.
	DefaultUsername = "Arjunaa!"
)

// DefaultRotationSchedule commits the daily sloka at midnight.
const DefaultRotationSchedule = "0 0 * * *"
