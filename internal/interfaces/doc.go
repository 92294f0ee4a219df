// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Storage
//
//   - kvstore.Store: string key-value persistence (internal/kvstore/store.go)
//   - kvstore.BatchStore: optional all-or-nothing multi-key writes
//   - kvstore.Backend: a Store that can be pinged and closed
//
// ## Domain
//
//   - tracker.SlokaSource: the verse collection the rotation draws from
//   - http.SlokaReader: read-only verse lookups (internal/http/slokas.go)
//   - http.EngagementTracker: favourites, reads and the daily sloka
//   - http.ProfileStore: display name (internal/http/profile.go)
//   - lifecycle.Foregrounder: foreground/background handling (internal/lifecycle/watcher.go)
//   - scheduler.DailyResolver: the cron rotation job target
//
// # Adding a New Storage Backend
//
//  1. Implement kvstore.Backend in internal/kvstore/, and BatchStore when
//     the backend has transactions, so the visited history and daily pick
//     are written together.
//
//     type BoltStore struct { db *bbolt.DB }
//
//     func (s *BoltStore) Get(ctx context.Context, key string) (string, bool, error)
//     func (s *BoltStore) Set(ctx context.Context, key, value string) error
//     func (s *BoltStore) SetMany(ctx context.Context, values map[string]string) error
//
//  2. Add a config.StorageBackend value and a case in kvstore.Open.
//
//  3. Add the store to the conformance suite in internal/kvstore/store_test.go.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
