// Package sweeper runs a Store's expiration sweep on a cron schedule.
package sweeper

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/tgifai/clientstore/config"
	"github.com/tgifai/clientstore/internal/pkg/logs"
)

// Expirer is satisfied by *clientstore.Store.
type Expirer interface {
	Expire(ctx context.Context) (int, error)
}

// Sweeper calls Expire on a schedule. Runs never overlap.
type Sweeper struct {
	target   Expirer
	spec     string
	schedule cron.Schedule

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

// New validates spec (5-field cron or a descriptor such as "@every 30s").
func New(target Expirer, spec string) (*Sweeper, error) {
	if target == nil {
		return nil, fmt.Errorf("sweep target cannot be nil")
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = config.DefaultSweepSchedule
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", config.ErrInvalidSchedule, spec, err)
	}
	return &Sweeper{target: target, spec: spec, schedule: schedule}, nil
}

// FromConfig builds a Sweeper for cfg. It returns nil when sweeping is
// disabled.
func FromConfig(target Expirer, cfg config.SweepConfig) (*Sweeper, error) {
	if !cfg.Enabled {
		logs.Debug("[sweeper] disabled by configuration")
		return nil, nil
	}
	return New(target, cfg.Schedule)
}

// Start begins sweeping until ctx is done or Stop is called. Calling Start on
// a running Sweeper does nothing; once ctx is done it may be started again.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	l := cronLogger{}
	s.cron = cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
	s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		_, _ = s.RunOnce(ctx)
	}))
	s.cron.Start()

	go func(c *cron.Cron) {
		<-ctx.Done()
		c.Stop()
		s.mu.Lock()
		if s.cron == c {
			s.cron, s.cancel = nil, nil
		}
		s.mu.Unlock()
	}(s.cron)

	logs.CtxInfo(ctx, "[sweeper] started (schedule=%s)", s.spec)
}

// Stop halts scheduling and waits for an in-flight sweep, or for ctx.
func (s *Sweeper) Stop(ctx context.Context) {
	s.mu.Lock()
	c, cancel := s.cron, s.cancel
	s.cron, s.cancel = nil, nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	done := c.Stop()
	cancel()

	select {
	case <-done.Done():
		logs.CtxInfo(ctx, "[sweeper] stopped")
	case <-ctx.Done():
		logs.CtxWarn(ctx, "[sweeper] stop timed out waiting for running sweep")
	}
}

// RunOnce sweeps synchronously.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	if logs.GetLogID(ctx) == "" {
		ctx = logs.SetLogID(ctx, logs.NewLogID())
	}

	removed, err := s.target.Expire(ctx)
	if err != nil {
		logs.CtxWarn(ctx, "[sweeper] sweep failed after removing %d entries: %v", removed, err)
		return removed, err
	}
	if removed > 0 {
		logs.CtxInfo(ctx, "[sweeper] removed %d expired entries", removed)
	}
	return removed, nil
}
