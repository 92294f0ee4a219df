package tracker

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/kvstore"
)

// idSet is a set of ids that remembers insertion order, so it persists as
// a stable JSON array.
type idSet struct {
	order []string
	index map[string]struct{}
}

func newIDSet(ids []string) *idSet {
	s := &idSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// add inserts id and reports whether it was new. Empty ids are ignored.
func (s *idSet) add(id string) bool {
	if id == "" {
		return false
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *idSet) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *idSet) len() int {
	return len(s.order)
}

func (s *idSet) clear() {
	s.order = nil
	s.index = make(map[string]struct{})
}

func (s *idSet) list() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// dedupeFavorites drops entries without an id and repeated ids, keeping the
// first occurrence.
func dedupeFavorites(in []entities.Sloka) []entities.Sloka {
	seen := make(map[string]bool, len(in))
	out := make([]entities.Sloka, 0, len(in))
	for _, s := range in {
		if s.ID == "" || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}

// loadJSON decodes the value stored under key. It returns the zero value
// and false when the key is absent, unreadable or malformed.
func loadJSON[T any](ctx context.Context, t *Tracker, key string) (T, bool) {
	var zero T
	raw, ok, err := t.store.Get(ctx, key)
	if err != nil {
		t.log.WithError(err).WithField("key", key).Warn("failed to read persisted state, using default")
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.log.WithError(err).WithField("key", key).Warn("malformed persisted state, using default")
		return zero, false
	}
	return v, true
}

// saveJSON overwrites key with the JSON encoding of v. Failures are logged.
func (t *Tracker) saveJSON(ctx context.Context, key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		t.log.WithError(err).WithField("key", key).Error("failed to encode state")
		return false
	}
	if err := t.store.Set(ctx, key, string(raw)); err != nil {
		t.log.WithError(err).WithField("key", key).Error("failed to persist state")
		return false
	}
	return true
}

// commitDailyLocked writes the visited history together with the daily
// state. On failure the pair is marked pending and retried by the next
// resolve.
func (t *Tracker) commitDailyLocked(ctx context.Context) bool {
	values := make(map[string]string, 3)
	for key, v := range map[string]any{
		entities.SettingKeyVisitedSlokas: t.visitedIDs.list(),
		entities.SettingKeyLastVisitDate: t.daily.LastVisitDate,
		entities.SettingKeyDailySlokaID:  t.daily.SlokaID,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			t.log.WithError(err).WithField("key", key).Error("failed to encode state")
			t.dailyPending = true
			return false
		}
		values[key] = string(raw)
	}

	if err := kvstore.SetAll(ctx, t.store, values); err != nil {
		t.log.WithError(err).WithFields(logrus.Fields{
			"date":  t.daily.LastVisitDate,
			"sloka": t.daily.SlokaID,
		}).Error("failed to persist daily sloka, will retry")
		t.dailyPending = true
		return false
	}
	t.dailyPending = false
	return true
}
