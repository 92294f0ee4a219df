// Package kvstore provides the durable string-keyed store behind the
// engagement tracker.
//
// Three backends implement Backend:
//
//   - SQLStore: gorm + sqlite "settings" table (default)
//   - BadgerStore: embedded badger/v4 database, on disk or in memory
//   - MemoryStore: process-local map, used by tests and the "memory" backend
//
// Values are opaque strings; the tracker stores JSON in them.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/slokas/internal/config"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a string-keyed store that survives process restarts.
type Store interface {
	// Get returns the value and true, or "" and false when key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// BatchStore is implemented by stores that can write several keys
// atomically.
type BatchStore interface {
	SetMany(ctx context.Context, values map[string]string) error
}

// Backend is a Store with a connection lifecycle.
type Backend interface {
	Store
	Ping(ctx context.Context) error
	Close() error
}

// SetAll writes values through SetMany when the store supports it, or one
// key at a time otherwise. In the fallback the first failure stops the
// remaining writes.
func SetAll(ctx context.Context, s Store, values map[string]string) error {
	if b, ok := s.(BatchStore); ok {
		return b.SetMany(ctx, values)
	}
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
	}
	return nil
}

// Open creates the backend selected by cfg.Backend.
func Open(cfg config.Storage) (Backend, error) {
	switch cfg.Backend {
	case config.StorageBackendSQLite, "":
		return OpenSQLStore(cfg.DatabasePath)
	case config.StorageBackendBadger:
		return OpenBadgerStore(cfg.BadgerDir)
	case config.StorageBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
