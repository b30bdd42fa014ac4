package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgifai/clientstore"
	"github.com/tgifai/clientstore/config"
	"github.com/tgifai/clientstore/internal/pkg/logs"
	"github.com/tgifai/clientstore/storage"
)

type stubExpirer struct {
	mu      sync.Mutex
	calls   int
	removed int
	err     error
	logIDs  []string
	ran     chan struct{}
}

func (s *stubExpirer) Expire(ctx context.Context) (int, error) {
	s.mu.Lock()
	s.calls++
	s.logIDs = append(s.logIDs, logs.GetLogID(ctx))
	s.mu.Unlock()
	if s.ran != nil {
		select {
		case s.ran <- struct{}{}:
		default:
		}
	}
	return s.removed, s.err
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, "@every 1m")
	assert.Error(t, err)

	_, err = New(&stubExpirer{}, "not a schedule")
	assert.True(t, errors.Is(err, config.ErrInvalidSchedule), "got %v", err)

	s, err := New(&stubExpirer{}, "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSweepSchedule, s.spec)
}

func TestRunOnce(t *testing.T) {
	target := &stubExpirer{removed: 3}
	s, err := New(target, "*/5 * * * *")
	require.NoError(t, err)

	removed, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	require.Len(t, target.logIDs, 1)
	assert.NotEmpty(t, target.logIDs[0], "sweep should carry a log id")

	ctx := logs.SetLogID(context.Background(), "fixed")
	_, _ = s.RunOnce(ctx)
	assert.Equal(t, "fixed", target.logIDs[1])

	target.err = errors.New("boom")
	_, err = s.RunOnce(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestStartStop(t *testing.T) {
	target := &stubExpirer{ran: make(chan struct{}, 1)}
	s, err := New(target, "@every 1s")
	require.NoError(t, err)

	s.Start(context.Background())
	s.Start(context.Background()) // no-op while running

	select {
	case <-target.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep did not run on schedule")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Stop(stopCtx)
	s.Stop(stopCtx) // stopping twice is safe
}

func TestSweepsStore(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	area := storage.NewMemoryArea()
	store := clientstore.New(config.Options{ExpirationMultiplier: 1000}, storage.Environment{Session: area},
		clientstore.WithClock(func() time.Time { return now }))

	require.NoError(t, store.SetWithExpiration("short", "1", 1))
	require.NoError(t, store.SetWithExpiration("long", "2", 3600))
	require.NoError(t, store.Set("forever", "3"))

	s, err := New(store, "@every 1m")
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	removed, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"long", "forever"}, area.Keys())
}

func TestFromConfig(t *testing.T) {
	s, err := FromConfig(&stubExpirer{}, config.SweepConfig{Schedule: "@every 1s"})
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = FromConfig(&stubExpirer{}, config.SweepConfig{Enabled: true, Schedule: "bogus"})
	assert.True(t, errors.Is(err, config.ErrInvalidSchedule), "got %v", err)

	target := &stubExpirer{ran: make(chan struct{}, 1)}
	s, err = FromConfig(target, config.SweepConfig{Enabled: true, Schedule: "@every 1s"})
	require.NoError(t, err)
	require.NotNil(t, s)

	s.Start(context.Background())
	defer s.Stop(context.Background())

	select {
	case <-target.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("configured sweep did not run")
	}
}

func TestStart_AfterContextDone(t *testing.T) {
	target := &stubExpirer{ran: make(chan struct{}, 1)}
	s, err := New(target, "@every 1s")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.cron == nil
	}, 2*time.Second, 10*time.Millisecond)

	s.Start(context.Background())
	defer s.Stop(context.Background())

	select {
	case <-target.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("restarted sweeper did not run")
	}
}
