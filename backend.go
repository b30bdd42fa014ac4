package clientstore

import (
	"context"
	"time"
)

// Kind names the backend a Store is bound to.
type Kind string

const (
	KindStructured Kind = "structured"
	KindCookie     Kind = "cookie"
)

const (
	resultHit  = "hit"
	resultMiss = "miss"
	resultRaw  = "raw"
)

// backend is one of the two storage variants. The expiration handed to set is
// already absolute (ms since epoch) or nil.
type backend interface {
	kind() Kind
	get(key string) (value string, result string)
	set(key, value string, expiration *int64) error
	expire(ctx context.Context, now time.Time) (int, error)
}
