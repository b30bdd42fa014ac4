package clientstore

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tgifai/clientstore/storage"
)

// cookieBackend keeps entries as plain cookies. Expiry is the cookie's own
// expires attribute, enforced by the jar.
type cookieBackend struct {
	jar storage.CookieJar
}

func (b *cookieBackend) kind() Kind { return KindCookie }

func (b *cookieBackend) get(key string) (string, string) {
	for _, pair := range strings.Split(b.jar.Cookie(), ";") {
		name, value, _ := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if name != "" && name == key {
			return value, resultHit
		}
	}
	return "", resultMiss
}

func (b *cookieBackend) set(key, value string, expiration *int64) error {
	b.jar.SetCookie(formatCookie(key, value, expiration))
	return nil
}

// expire has nothing to do: the jar drops cookies past their expiry.
func (b *cookieBackend) expire(context.Context, time.Time) (int, error) {
	return 0, nil
}

func formatCookie(key, value string, expiration *int64) string {
	if expiration == nil {
		return key + "=" + value
	}
	expires := cookieExpiry(*expiration).Format(http.TimeFormat)
	return key + "=" + value + "; expires=" + expires
}

// cookieExpiry rounds up to the whole second the HTTP date can carry, so a
// sub-second lifetime never yields a cookie that is already expired.
func cookieExpiry(ms int64) time.Time {
	sec, rem := ms/1000, ms%1000
	if rem > 0 {
		sec++
	}
	return time.Unix(sec, 0).UTC()
}
