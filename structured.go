package clientstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tgifai/clientstore/internal/pkg/logs"
	"github.com/tgifai/clientstore/storage"
)

// structuredBackend stores envelopes in a storage area and reclaims expired
// ones with a sweep. Reads never look at the expiry.
type structuredBackend struct {
	area storage.Area
}

func (b *structuredBackend) kind() Kind { return KindStructured }

func (b *structuredBackend) get(key string) (string, string) {
	raw, ok := b.area.GetItem(key)
	if !ok {
		return "", resultMiss
	}
	env, ok := decodeEnvelope(raw)
	if !ok {
		return raw, resultRaw
	}
	if env.NullData {
		return "", resultMiss
	}
	return env.Data, resultHit
}

func (b *structuredBackend) set(key, value string, expiration *int64) error {
	payload, err := encodeEnvelope(value, expiration)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if err := b.area.SetItem(key, payload); err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}
	return nil
}

// expire sweeps every key in the area, including keys written by other code.
// Check and removal are not atomic: a value rewritten in between may still
// be removed.
func (b *structuredBackend) expire(ctx context.Context, now time.Time) (int, error) {
	nowMs := now.UnixMilli()

	var (
		removed int
		errs    []error
	)
	for _, key := range b.area.Keys() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		raw, ok := b.area.GetItem(key)
		if !ok {
			continue
		}
		env, ok := decodeEnvelope(raw)
		if !ok || !env.expiredAt(nowMs) {
			continue
		}

		if err := b.area.RemoveItem(key); err != nil {
			errs = append(errs, fmt.Errorf("remove %q: %w", key, err))
			continue
		}
		logs.CtxDebug(ctx, "[clientstore] expired key=%s expiration=%.0f", key, *env.Expiration)
		removed++
	}
	return removed, errors.Join(errs...)
}
