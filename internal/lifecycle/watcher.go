package lifecycle

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/logging"
)

// Foregrounder is the part of the tracker the watcher drives.
type Foregrounder interface {
	RecordActive(at time.Time)
	OnForeground(ctx context.Context, now time.Time, inactive time.Duration) (entities.Sloka, bool, error)
}

// Watcher converts lifecycle events into tracker calls. A background event
// remembers when the app left the foreground; the next active event
// reports the time spent away.
type Watcher struct {
	signal    *Signal
	tracker   Foregrounder
	onRefresh func(entities.Sloka)
	buffer    int
	log       *logrus.Entry

	backgroundAt time.Time
}

type WatcherOption func(*Watcher)

// WithOnRefresh is called with the resolved sloka after a foreground
// transition triggered a resolve.
func WithOnRefresh(fn func(entities.Sloka)) WatcherOption {
	return func(w *Watcher) { w.onRefresh = fn }
}

func WithBuffer(n int) WatcherOption {
	return func(w *Watcher) { w.buffer = n }
}

func NewWatcher(signal *Signal, tracker Foregrounder, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		signal:  signal,
		tracker: tracker,
		buffer:  8,
		log:     logging.Component("lifecycle"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run consumes events until ctx is done or the signal is closed.
func (w *Watcher) Run(ctx context.Context) {
	sub := w.signal.Subscribe(w.buffer)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			w.handle(ctx, ev)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev Event) {
	switch ev.State {
	case Background:
		w.backgroundAt = ev.At
		w.tracker.RecordActive(ev.At)
	case Active:
		var inactive time.Duration
		if !w.backgroundAt.IsZero() && ev.At.After(w.backgroundAt) {
			inactive = ev.At.Sub(w.backgroundAt)
		}
		w.backgroundAt = time.Time{}

		s, refreshed, err := w.tracker.OnForeground(ctx, ev.At, inactive)
		if err != nil {
			w.log.WithError(err).Error("Failed to refresh daily sloka")
			return
		}
		if !refreshed {
			return
		}
		w.log.WithFields(logrus.Fields{
			"sloka":    s.ID,
			"inactive": inactive.String(),
		}).Debug("daily sloka refreshed on foreground")
		if w.onRefresh != nil {
			w.onRefresh(s)
		}
	}
}
