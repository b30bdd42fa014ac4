package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/tgifai/clientstore/internal/pkg/logs"
)

const (
	DefaultExpirationMultiplier = 1
	DefaultSweepSchedule        = "@every 1m"
)

// Validate .
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	c.Store.Normalize()

	c.Area.URL = strings.TrimSpace(c.Area.URL)

	c.Sweep.Schedule = strings.TrimSpace(c.Sweep.Schedule)
	if c.Sweep.Schedule == "" {
		c.Sweep.Schedule = DefaultSweepSchedule
	}
	if _, err := cron.ParseStandard(c.Sweep.Schedule); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSchedule, c.Sweep.Schedule, err)
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}
	return nil
}

// Normalize replaces a multiplier that is not a finite positive number with
// the default. It never fails.
func (o *Options) Normalize() {
	m := o.ExpirationMultiplier
	if m == 0 {
		o.ExpirationMultiplier = DefaultExpirationMultiplier
		return
	}
	if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		logs.Warn("[config] expiration multiplier %v is not a positive number, using %d", m, DefaultExpirationMultiplier)
		o.ExpirationMultiplier = DefaultExpirationMultiplier
	}
}
