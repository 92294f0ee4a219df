package kvstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/slokas/internal/database"
	"github.com/mrlokans/slokas/internal/database/settings"
)

// SQLStore keeps each key as a row of the sqlite settings table.
type SQLStore struct {
	db   *database.Database
	repo *settings.Repository
}

// NewSQLStore wraps an already opened database.
func NewSQLStore(db *database.Database) *SQLStore {
	return &SQLStore{db: db, repo: settings.NewRepository(db.DB)}
}

// OpenSQLStore opens (and migrates) the sqlite database at path.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := database.NewDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	return NewSQLStore(db), nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	setting, err := s.repo.GetSetting(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}

func (s *SQLStore) SetMany(ctx context.Context, values map[string]string) error {
	return s.repo.SetSettings(ctx, values)
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	return s.repo.DeleteSetting(ctx, key)
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
