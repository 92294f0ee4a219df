package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/slokas/internal/config"
	"github.com/mrlokans/slokas/internal/entities"
)

type fakeResolver struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeResolver) DailySloka(context.Context) (entities.Sloka, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return entities.Sloka{}, f.err
	}
	return entities.Sloka{ID: "18.66"}, nil
}

func (f *fakeResolver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func enabled(schedule string) config.DailyRotation {
	return config.DailyRotation{Enabled: true, Schedule: schedule}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"0 0 * * *", false},
		{"*/15 * * * *", false},
		{"30 5 * * 1-5", false},
		{"0 0 0 * * *", true},
		{"every day", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNextRunAfter(t *testing.T) {
	from := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	next, err := NextRunAfter("0 0 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), next)

	_, err = NextRunAfter("nope", from)
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Daily at midnight", Describe("0 0 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", Describe("5 4 * * *"))
}

func TestDailyRotationScheduler_Start(t *testing.T) {
	t.Run("disabled does not start", func(t *testing.T) {
		s := NewDailyRotationScheduler(&fakeResolver{}, config.DailyRotation{Enabled: false}, time.UTC)

		require.NoError(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
		assert.Nil(t, s.NextRun())
	})

	t.Run("invalid schedule is rejected", func(t *testing.T) {
		s := NewDailyRotationScheduler(&fakeResolver{}, enabled("61 * * * *"), time.UTC)

		assert.Error(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
	})

	t.Run("empty schedule defaults to midnight", func(t *testing.T) {
		s := NewDailyRotationScheduler(&fakeResolver{}, enabled(""), time.UTC)
		require.NoError(t, s.Start(context.Background()))
		defer s.Stop()

		next := s.NextRun()
		require.NotNil(t, next)
		inUTC := next.In(time.UTC)
		assert.Equal(t, 0, inUTC.Hour())
		assert.Equal(t, 0, inUTC.Minute())
		assert.Equal(t, config.DefaultRotationSchedule, s.Status().Schedule)
	})

	t.Run("start is idempotent and stop halts", func(t *testing.T) {
		s := NewDailyRotationScheduler(&fakeResolver{}, enabled("0 0 * * *"), time.UTC)

		require.NoError(t, s.Start(context.Background()))
		require.NoError(t, s.Start(context.Background()))
		assert.True(t, s.IsRunning())

		s.Stop()
		s.Stop()
		assert.False(t, s.IsRunning())
		assert.Nil(t, s.NextRun())
	})

	t.Run("context cancellation stops the scheduler", func(t *testing.T) {
		s := NewDailyRotationScheduler(&fakeResolver{}, enabled("0 0 * * *"), time.UTC)
		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, s.Start(ctx))

		cancel()

		assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 5*time.Millisecond)
	})

	t.Run("can be restarted", func(t *testing.T) {
		s := NewDailyRotationScheduler(&fakeResolver{}, enabled("0 0 * * *"), time.UTC)
		require.NoError(t, s.Start(context.Background()))
		s.Stop()

		require.NoError(t, s.Start(context.Background()))
		defer s.Stop()
		assert.NotNil(t, s.NextRun())
	})
}

func TestDailyRotationScheduler_RunNow(t *testing.T) {
	t.Run("records the committed sloka", func(t *testing.T) {
		resolver := &fakeResolver{}
		s := NewDailyRotationScheduler(resolver, enabled("0 0 * * *"), time.UTC)

		s.RunNow()

		require.Eventually(t, func() bool { return s.Status().LastRun != nil }, time.Second, 5*time.Millisecond)
		status := s.Status()
		assert.Equal(t, "18.66", status.LastSloka)
		assert.Empty(t, status.LastError)
		assert.Equal(t, 1, resolver.count())
	})

	t.Run("records failures", func(t *testing.T) {
		resolver := &fakeResolver{err: errors.New("no slokas available")}
		s := NewDailyRotationScheduler(resolver, enabled("0 0 * * *"), time.UTC)

		s.RunNow()

		require.Eventually(t, func() bool { return s.Status().LastRun != nil }, time.Second, 5*time.Millisecond)
		assert.Equal(t, "no slokas available", s.Status().LastError)
		assert.Empty(t, s.Status().LastSloka)
	})
}
