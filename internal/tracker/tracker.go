// Package tracker implements the engagement tracker: favourites, the read
// counter and the daily sloka rotation.
//
// State is loaded from a kvstore.Store by Initialize, cached in memory and
// written back on every mutation. Persistence failures are logged and never
// returned; the in-memory state stays authoritative for the lifetime of
// the process.
//
// Daily rotation guarantees that no sloka is picked twice before every
// sloka has been picked once. When the visited history covers the whole
// set it is cleared and a new cycle starts.
package tracker

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/slokas/internal/config"
	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/kvstore"
	"github.com/mrlokans/slokas/internal/logging"
)

// ErrNoSlokas is returned when a pick is requested from an empty set.
var ErrNoSlokas = errors.New("no slokas available")

// SlokaSource is the read-only verse set the tracker picks from.
type SlokaSource interface {
	All() []entities.Sloka
}

// Snapshot is the hydrated state handed to the presentation layer.
type Snapshot struct {
	Favorites    []entities.Sloka     `json:"favorites"`
	ReadCount    int                  `json:"read_count"`
	VisitedCount int                  `json:"visited_count"`
	Daily        *entities.DailyState `json:"daily,omitempty"`
}

type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithRand sets the random source used for picks.
func WithRand(r *rand.Rand) Option {
	return func(t *Tracker) { t.intN = r.IntN }
}

// WithLocation sets the zone used to compute the calendar day.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

// WithInactivityThreshold sets how long a background period must last
// before OnForeground re-resolves the daily sloka.
func WithInactivityThreshold(d time.Duration) Option {
	return func(t *Tracker) { t.threshold = d }
}

func WithLogger(log *logrus.Entry) Option {
	return func(t *Tracker) { t.log = log }
}

// Tracker is safe for use from several goroutines; operations are
// serialised by an internal mutex.
type Tracker struct {
	mu sync.Mutex

	store  kvstore.Store
	source SlokaSource
	log    *logrus.Entry

	now       func() time.Time
	intN      func(n int) int
	loc       *time.Location
	threshold time.Duration

	favorites  []entities.Sloka
	readIDs    *idSet
	visitedIDs *idSet
	daily      *entities.DailyState

	// dailyPending is set when the last visited/daily pair write failed.
	dailyPending bool
	lastActive   time.Time
}

func New(store kvstore.Store, source SlokaSource, opts ...Option) *Tracker {
	t := &Tracker{
		store:      store,
		source:     source,
		log:        logging.Component("tracker"),
		now:        time.Now,
		intN:       rand.IntN,
		loc:        time.Local,
		threshold:  config.DefaultInactivityThreshold,
		readIDs:    newIDSet(nil),
		visitedIDs: newIDSet(nil),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialize loads the persisted state. Absent or malformed values become
// empty defaults; nothing is returned as an error.
func (t *Tracker) Initialize(ctx context.Context) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	favorites, _ := loadJSON[[]entities.Sloka](ctx, t, entities.SettingKeyFavorites)
	t.favorites = dedupeFavorites(favorites)

	readIDs, _ := loadJSON[[]string](ctx, t, entities.SettingKeyReadSlokas)
	t.readIDs = newIDSet(readIDs)

	visitedIDs, _ := loadJSON[[]string](ctx, t, entities.SettingKeyVisitedSlokas)
	t.visitedIDs = newIDSet(visitedIDs)

	t.daily = t.loadDailyState(ctx)
	t.dailyPending = false
	t.lastActive = t.now()

	t.log.WithFields(logrus.Fields{
		"favorites": len(t.favorites),
		"read":      t.readIDs.len(),
		"visited":   t.visitedIDs.len(),
	}).Debug("engagement state loaded")

	return t.snapshotLocked()
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	s := Snapshot{
		Favorites:    t.favoritesLocked(),
		ReadCount:    t.readIDs.len(),
		VisitedCount: t.visitedIDs.len(),
	}
	if t.daily != nil {
		d := *t.daily
		s.Daily = &d
	}
	return s
}

func (t *Tracker) loadDailyState(ctx context.Context) *entities.DailyState {
	date, ok := loadJSON[string](ctx, t, entities.SettingKeyLastVisitDate)
	if !ok {
		return nil
	}
	id, ok := loadJSON[string](ctx, t, entities.SettingKeyDailySlokaID)
	if !ok {
		return nil
	}
	if _, err := time.Parse(entities.DateLayout, date); err != nil {
		t.log.WithField("value", date).Warn("ignoring malformed last visit date")
		return nil
	}
	if id == "" {
		return nil
	}
	return &entities.DailyState{LastVisitDate: date, SlokaID: id}
}

// today returns the calendar day of now in the tracker's zone.
func (t *Tracker) today(now time.Time) string {
	return now.In(t.loc).Format(entities.DateLayout)
}
