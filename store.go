package clientstore

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tgifai/clientstore/config"
	"github.com/tgifai/clientstore/internal/pkg/logs"
	metrics "github.com/tgifai/clientstore/internal/pkg/prometheus"
	"github.com/tgifai/clientstore/storage"
)

// Store is the key/value facade. It is bound to exactly one backend for its
// whole lifetime.
type Store struct {
	opts    config.Options
	backend backend
	now     func() time.Time
}

type Option func(*Store)

// WithClock sets the time source for expiration timestamps and sweeps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New selects the backend once: structured storage when cookies are not
// forced and the environment reports it available, cookies otherwise.
// Selection performs no I/O.
func New(opts config.Options, env storage.Environment, options ...Option) *Store {
	opts.Normalize()
	s := &Store{
		opts: opts,
		now:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	s.backend = selectBackend(opts, env)
	logs.Debug("[clientstore] bound %s backend (persistent=%t multiplier=%v)",
		s.backend.kind(), opts.Persistent, opts.ExpirationMultiplier)
	return s
}

func selectBackend(opts config.Options, env storage.Environment) backend {
	if !opts.ForceCookies && env.StorageAvailable() {
		if area := env.Area(opts.Persistent); area != nil {
			return &structuredBackend{area: area}
		}
	}

	jar := env.Cookies
	if jar == nil {
		logs.Warn("[clientstore] no cookie jar available, falling back to an in-memory jar")
		jar = storage.NewMemoryJar()
	}
	return &cookieBackend{jar: jar}
}

// Kind reports which backend the Store is bound to.
func (s *Store) Kind() Kind {
	return s.backend.kind()
}

// Get returns the stored value. Expired structured entries are still
// returned until a sweep removes them.
func (s *Store) Get(key string) (string, bool) {
	value, result := s.backend.get(key)
	metrics.Gets.WithLabelValues(string(s.backend.kind()), result).Inc()
	return value, result != resultMiss
}

// Set stores value under key with no expiration.
func (s *Store) Set(key, value string) error {
	return s.set(key, value, nil)
}

// SetWithExpiration stores value under key until duration (scaled by the
// expiration multiplier, in milliseconds) has passed from now.
func (s *Store) SetWithExpiration(key, value string, duration float64) error {
	return s.set(key, value, &duration)
}

func (s *Store) set(key, value string, duration *float64) error {
	expiration := CalculateExpiration(s.now(), duration, s.opts.ExpirationMultiplier)
	if err := s.backend.set(key, value, expiration); err != nil {
		logs.Error("[clientstore] set key=%s failed: %v", key, err)
		return err
	}
	metrics.Sets.WithLabelValues(string(s.backend.kind())).Inc()
	return nil
}

// Expire removes every structured entry whose expiration has passed and
// returns how many were removed. Errors only come from the storage area
// itself; the sweep continues past them.
func (s *Store) Expire(ctx context.Context) (int, error) {
	removed, err := s.backend.expire(ctx, s.now())
	metrics.Expired.Add(float64(removed))
	if err != nil {
		metrics.Sweeps.WithLabelValues("error").Inc()
		logs.CtxWarn(ctx, "[clientstore] expire removed %d entries with errors: %v", removed, err)
		return removed, err
	}
	metrics.Sweeps.WithLabelValues("ok").Inc()
	return removed, nil
}

// Registry exposes the store counters for scraping.
func Registry() *prometheus.Registry {
	return metrics.GetRegistry()
}

// SetupLogging replaces the package logger according to cfg.
func SetupLogging(cfg config.LoggingConfig) error {
	return logs.Init(loggingOptions(cfg))
}

func loggingOptions(cfg config.LoggingConfig) logs.Options {
	return logs.Options{
		Level:      cfg.Level,
		Format:     cfg.Format,
		Output:     cfg.Output,
		File:       cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}
