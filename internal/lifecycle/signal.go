// Package lifecycle broadcasts foreground and background transitions of
// the app and turns them into daily rotation refreshes.
package lifecycle

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/slokas/internal/logging"
)

type State int

const (
	Active State = iota
	Background
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Background:
		return "background"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ParseState accepts the names produced by State.String.
func ParseState(name string) (State, error) {
	switch name {
	case "active":
		return Active, nil
	case "background":
		return Background, nil
	default:
		return 0, fmt.Errorf("unknown lifecycle state %q", name)
	}
}

type Event struct {
	State State
	At    time.Time
}

// Signal fans events out to every subscriber. Publish never blocks: an
// event that does not fit into a subscriber's buffer is dropped for that
// subscriber.
type Signal struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
	log    *logrus.Entry
}

func NewSignal() *Signal {
	return &Signal{
		subs: make(map[*Subscription]struct{}),
		log:  logging.Component("lifecycle"),
	}
}

type Subscription struct {
	signal *Signal
	events chan Event
	once   sync.Once
}

// Subscribe registers a subscriber with the given channel buffer. On a
// closed signal the returned subscription's channel is already closed.
func (s *Signal) Subscribe(buffer int) *Subscription {
	if buffer < 0 {
		buffer = 0
	}
	sub := &Subscription{signal: s, events: make(chan Event, buffer)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		sub.once.Do(func() { close(sub.events) })
		return sub
	}
	s.subs[sub] = struct{}{}
	return sub
}

func (s *Signal) Publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	for sub := range s.subs {
		select {
		case sub.events <- ev:
		default:
			s.log.WithField("state", ev.State.String()).Warn("subscriber is not keeping up, dropping lifecycle event")
		}
	}
}

// Close closes every subscriber channel. Later publishes are ignored.
func (s *Signal) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for sub := range s.subs {
		sub.closeLocked()
	}
	s.subs = nil
}

// Subscribers reports the number of live subscriptions.
func (s *Signal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (sub *Subscription) Events() <-chan Event {
	return sub.events
}

// Unsubscribe detaches the subscription and closes its channel. Safe to
// call more than once.
func (sub *Subscription) Unsubscribe() {
	s := sub.signal
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subs, sub)
	sub.closeLocked()
}

func (sub *Subscription) closeLocked() {
	sub.once.Do(func() { close(sub.events) })
}
