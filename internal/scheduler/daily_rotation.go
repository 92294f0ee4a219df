package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/slokas/internal/config"
	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/logging"
)

// DailyResolver commits today's sloka.
type DailyResolver interface {
	DailySloka(ctx context.Context) (entities.Sloka, error)
}

// Status describes the last rotation run.
type Status struct {
	Enabled   bool       `json:"enabled"`
	Running   bool       `json:"running"`
	Schedule  string     `json:"schedule"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastSloka string     `json:"last_sloka,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// DailyRotationScheduler resolves the daily sloka on a cron schedule so a
// new day's pick is committed even when no client comes to the foreground.
type DailyRotationScheduler struct {
	resolver DailyResolver
	cfg      config.DailyRotation
	log      *logrus.Entry

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	ctx        context.Context
	cancelFunc context.CancelFunc

	statusMu  sync.Mutex
	lastRun   time.Time
	lastSloka string
	lastErr   error
}

func NewDailyRotationScheduler(resolver DailyResolver, cfg config.DailyRotation, loc *time.Location) *DailyRotationScheduler {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultRotationSchedule
	}
	if loc == nil {
		loc = time.Local
	}
	return &DailyRotationScheduler{
		resolver: resolver,
		cfg:      cfg,
		log:      logging.Component("scheduler"),
		cron:     cron.New(cron.WithParser(parser), cron.WithLocation(loc)),
	}
}

// Start begins the scheduler if rotation is enabled. The scheduler stops
// when ctx is cancelled.
func (s *DailyRotationScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		s.log.Info("Daily rotation scheduler disabled")
		return nil
	}

	if err := ValidateSchedule(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, s.runRotation)
	if err != nil {
		return fmt.Errorf("failed to schedule rotation job: %w", err)
	}
	s.entryID = entryID

	s.ctx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunAfter(s.cfg.Schedule, time.Now().In(s.cron.Location()))
	s.log.WithFields(logrus.Fields{
		"schedule":    s.cfg.Schedule,
		"description": Describe(s.cfg.Schedule),
		"next_run":    nextRun,
	}).Info("Daily rotation scheduler started")

	go func(ctx context.Context) {
		<-ctx.Done()
		s.Stop()
	}(s.ctx)

	return nil
}

// Stop waits for a running rotation to finish.
func (s *DailyRotationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	stopped := s.cron.Stop()
	<-stopped.Done()

	s.cron.Remove(s.entryID)
	s.cancelFunc()
	s.isRunning = false
	s.cancelFunc = nil

	s.log.Info("Daily rotation scheduler stopped")
}

// RunNow triggers an immediate rotation in the background.
func (s *DailyRotationScheduler) RunNow() {
	go s.runRotation()
}

func (s *DailyRotationScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next rotation will occur, nil when stopped.
func (s *DailyRotationScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

func (s *DailyRotationScheduler) Status() Status {
	st := Status{
		Enabled:  s.cfg.Enabled,
		Running:  s.IsRunning(),
		Schedule: s.cfg.Schedule,
		NextRun:  s.NextRun(),
	}

	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	if !s.lastRun.IsZero() {
		t := s.lastRun
		st.LastRun = &t
	}
	st.LastSloka = s.lastSloka
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

func (s *DailyRotationScheduler) runRotation() {
	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}

	started := time.Now()
	sloka, err := s.resolver.DailySloka(ctx)

	s.statusMu.Lock()
	s.lastRun = started
	s.lastErr = err
	if err == nil {
		s.lastSloka = sloka.ID
	}
	s.statusMu.Unlock()

	if err != nil {
		s.log.WithError(err).Error("Daily rotation failed")
		return
	}
	s.log.WithFields(logrus.Fields{
		"sloka":    sloka.ID,
		"duration": time.Since(started).Round(time.Millisecond).String(),
	}).Info("Daily rotation completed")
}
