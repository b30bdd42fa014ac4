package clientstore

import (
	"math"
	"time"

	"github.com/tgifai/clientstore/internal/pkg/logs"
)

// CalculateExpiration turns a caller duration into an absolute timestamp in
// milliseconds since the Unix epoch, measured from now. A nil duration means
// the entry never expires.
//
// Durations are never rejected: NaN and +Inf mean "never expires", and
// negative values are clamped to zero so the entry is already due.
func CalculateExpiration(now time.Time, duration *float64, multiplier float64) *int64 {
	if duration == nil {
		return nil
	}
	d := *duration
	switch {
	case math.IsNaN(d):
		logs.Warn("[clientstore] NaN expiration duration treated as no expiration")
		return nil
	case math.IsInf(d, 1):
		return nil
	case d < 0:
		logs.Debug("[clientstore] negative expiration duration %v clamped to 0", d)
		d = 0
	}

	if !(multiplier > 0) || math.IsInf(multiplier, 1) {
		multiplier = 1
	}

	offset := d * multiplier
	nowMs := now.UnixMilli()
	if offset >= float64(math.MaxInt64-nowMs) {
		return nil
	}
	ts := nowMs + int64(math.Round(offset))
	return &ts
}
