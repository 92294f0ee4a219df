package settingsstore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/slokas/internal/config"
	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/kvstore"
)

const UsernameEnv = "SLOKA_USERNAME"

// Priority: store > environment > default
type SettingsStore struct {
	store           kvstore.Store
	defaultUsername string
}

func New(store kvstore.Store, defaultUsername string) *SettingsStore {
	if defaultUsername == "" {
		defaultUsername = config.DefaultUsername
	}
	return &SettingsStore{store: store, defaultUsername: defaultUsername}
}

func (s *SettingsStore) Username(ctx context.Context) string {
	name, _ := s.resolveUsername(ctx)
	return name
}

func (s *SettingsStore) UsernameSource(ctx context.Context) string {
	_, source := s.resolveUsername(ctx)
	return source
}

type UsernameInfo struct {
	Username string `json:"username"`
	Source   string `json:"source"` // "store", "environment", or "default"
}

func (s *SettingsStore) UsernameInfo(ctx context.Context) UsernameInfo {
	name, source := s.resolveUsername(ctx)
	return UsernameInfo{Username: name, Source: source}
}

func (s *SettingsStore) SetUsername(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("username must not be empty")
	}
	return s.store.Set(ctx, entities.SettingKeyUsername, name)
}

func (s *SettingsStore) ClearUsername(ctx context.Context) error {
	return s.store.Remove(ctx, entities.SettingKeyUsername)
}

func (s *SettingsStore) resolveUsername(ctx context.Context) (string, string) {
	// A read failure falls through to the next source
	if v, ok, err := s.store.Get(ctx, entities.SettingKeyUsername); err == nil && ok && v != "" {
		return v, "store"
	}

	if env := os.Getenv(UsernameEnv); env != "" {
		return env, "environment"
	}

	return s.defaultUsername, "default"
}
