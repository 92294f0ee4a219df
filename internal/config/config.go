package config

import (
	"time"

	"github.com/spf13/viper"
)

type StorageBackend string

const (
	StorageBackendSQLite StorageBackend = "sqlite" // gorm + sqlite settings table (default)
	StorageBackendBadger StorageBackend = "badger" // embedded badger KV
	StorageBackendMemory StorageBackend = "memory" // non-durable, for demos and tests
)

type (
	Config struct {
		HTTP
		Global
		Storage
		Data
		Daily
		DailyRotation
		Profile
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		LogLevel                 string
	}
	Storage struct {
		Backend      StorageBackend
		DatabasePath string
		BadgerDir    string
	}
	Data struct {
		Dir string // Directory with chapter*.json files; empty uses the bundled set
	}
	Daily struct {
		InactivityThreshold time.Duration // Inactivity after which a foreground re-checks the daily sloka
		Timezone            string        // IANA name or "Local"
	}
	DailyRotation struct {
		Enabled  bool
		Schedule string // Cron format: "0 0 * * *" = midnight
	}
	Profile struct {
		DefaultUsername string
	}
)

// Location resolves the configured timezone, falling back to time.Local.
func (d Daily) Location() *time.Location {
	if d.Timezone == "" || d.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("log_level", "info")

	// Storage defaults
	v.SetDefault("storage_backend", string(StorageBackendSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("badger_dir", DefaultBadgerDir)

	v.SetDefault("sloka_data_dir", "")

	// Daily sloka defaults
	v.SetDefault("daily_inactivity_threshold", DefaultInactivityThreshold.String())
	v.SetDefault("daily_timezone", "Local")
	v.SetDefault("daily_rotation_enabled", true)
	v.SetDefault("daily_rotation_schedule", DefaultRotationSchedule)

	v.SetDefault("default_username", DefaultUsername)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			LogLevel:                 v.GetString("LOG_LEVEL"),
		},
		Storage: Storage{
			Backend:      StorageBackend(v.GetString("STORAGE_BACKEND")),
			DatabasePath: v.GetString("DATABASE_PATH"),
			BadgerDir:    v.GetString("BADGER_DIR"),
		},
		Data: Data{
			Dir: v.GetString("SLOKA_DATA_DIR"),
		},
		Daily: Daily{
			InactivityThreshold: v.GetDuration("DAILY_INACTIVITY_THRESHOLD"),
			Timezone:            v.GetString("DAILY_TIMEZONE"),
		},
		DailyRotation: DailyRotation{
			Enabled:  v.GetBool("DAILY_ROTATION_ENABLED"),
			Schedule: v.GetString("DAILY_ROTATION_SCHEDULE"),
		},
		Profile: Profile{
			DefaultUsername: v.GetString("DEFAULT_USERNAME"),
		},
	}
}
