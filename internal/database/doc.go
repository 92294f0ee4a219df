// Package database provides the sqlite data access layer.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── settings/        # Key/value settings rows
//
// The engagement tracker never talks to gorm directly; it goes through
// kvstore.SQLStore, which wraps settings.Repository.
//
//	db, err := database.NewDatabase("./slokas.db")
//	repo := settings.NewRepository(db.DB)
//	err = repo.SetSetting(ctx, "username", `"Arjuna"`)
package database
