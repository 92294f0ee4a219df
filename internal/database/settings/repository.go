// Package settings provides database operations for key/value settings.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	setting, err := repo.GetSetting(ctx, "favorites")
package settings

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/mrlokans/slokas/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by key. Returns gorm.ErrRecordNotFound
// when the key has never been set.
func (r *Repository) GetSetting(ctx context.Context, key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSetting creates or updates a setting.
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	return setSetting(r.db.WithContext(ctx), key, value)
}

// SetSettings writes several settings in one transaction. Either all of
// them are stored or none are.
func (r *Repository) SetSettings(ctx context.Context, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := setSetting(tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSetting removes a setting by key. Deleting a missing key is not an
// error.
func (r *Repository) DeleteSetting(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.Setting{}).Error
}

func setSetting(db *gorm.DB, key, value string) error {
	var setting entities.Setting
	result := db.Where("key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			Key:   key,
			Value: value,
		}
		return db.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return db.Save(&setting).Error
}
