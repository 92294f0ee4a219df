package tracker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/slokas/internal/entities"
)

// ResolveDailySloka returns today's sloka, picking a new one when the
// stored pick belongs to another day or no longer exists in all.
//
// A new pick is drawn uniformly from the slokas not yet visited in the
// current cycle. When every sloka has been visited the history is cleared
// first. The visited history and the daily state are written as one pair.
func (t *Tracker) ResolveDailySloka(ctx context.Context, now time.Time, all []entities.Sloka) (entities.Sloka, error) {
	if len(all) == 0 {
		return entities.Sloka{}, ErrNoSlokas
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.today(now)

	if t.daily != nil && t.daily.LastVisitDate == today {
		if s, ok := findSloka(all, t.daily.SlokaID); ok {
			if t.dailyPending {
				t.commitDailyLocked(ctx)
			}
			return s, nil
		}
		t.log.WithField("sloka", t.daily.SlokaID).Warn("daily sloka no longer exists, picking a new one")
	}

	unvisited := make([]entities.Sloka, 0, len(all))
	for _, s := range all {
		if !t.visitedIDs.has(s.ID) {
			unvisited = append(unvisited, s)
		}
	}
	if len(unvisited) == 0 {
		t.log.WithField("visited", t.visitedIDs.len()).Info("every sloka visited, starting a new cycle")
		t.visitedIDs.clear()
		unvisited = all
	}

	picked := unvisited[t.intN(len(unvisited))]
	t.visitedIDs.add(picked.ID)
	t.daily = &entities.DailyState{LastVisitDate: today, SlokaID: picked.ID}
	t.commitDailyLocked(ctx)

	t.log.WithFields(logrus.Fields{
		"date":    today,
		"sloka":   picked.ID,
		"visited": t.visitedIDs.len(),
	}).Info("picked daily sloka")

	return picked, nil
}

// DailySloka resolves today's sloka with the tracker's clock and source.
func (t *Tracker) DailySloka(ctx context.Context) (entities.Sloka, error) {
	return t.ResolveDailySloka(ctx, t.now(), t.source.All())
}

// OnForeground re-resolves the daily sloka after the app returns to the
// foreground, when it was inactive for longer than the threshold or the
// calendar day changed since it was last active. The boolean reports
// whether a resolve happened.
func (t *Tracker) OnForeground(ctx context.Context, now time.Time, inactive time.Duration) (entities.Sloka, bool, error) {
	t.mu.Lock()
	last := t.lastActive
	t.lastActive = now
	dayChanged := last.IsZero() || t.today(last) != t.today(now)
	threshold := t.threshold
	t.mu.Unlock()

	if inactive <= threshold && !dayChanged {
		return entities.Sloka{}, false, nil
	}

	s, err := t.ResolveDailySloka(ctx, now, t.source.All())
	if err != nil {
		return entities.Sloka{}, false, err
	}
	return s, true, nil
}

// RecordActive stores at as the last moment the app was active.
func (t *Tracker) RecordActive(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastActive = at
}

// RandomSloka picks any sloka other than excludingID. It is unrelated to
// the daily rotation and does not touch the visited history. With a single
// sloka that sloka is returned.
func (t *Tracker) RandomSloka(excludingID string, all []entities.Sloka) (entities.Sloka, error) {
	if len(all) == 0 {
		return entities.Sloka{}, ErrNoSlokas
	}
	if len(all) == 1 {
		return all[0], nil
	}

	candidates := make([]entities.Sloka, 0, len(all))
	for _, s := range all {
		if s.ID != excludingID {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return all[0], nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return candidates[t.intN(len(candidates))], nil
}

func findSloka(all []entities.Sloka, id string) (entities.Sloka, bool) {
	for _, s := range all {
		if s.ID == id {
			return s, true
		}
	}
	return entities.Sloka{}, false
}
