package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys. Values are JSON encoded.
const (
	// Engagement state
	SettingKeyFavorites     = "favorites"
	SettingKeyReadSlokas    = "readSlokas"
	SettingKeyVisitedSlokas = "visitedSlokas"
	SettingKeyLastVisitDate = "lastVisitDate"
	SettingKeyDailySlokaID  = "currentDailyVerseId"

	// Profile
	SettingKeyUsername = "username"
)

// DateLayout is the format of SettingKeyLastVisitDate.
const DateLayout = "2006-01-02"
