// Package storage defines the collaborators a clientstore.Store persists
// through: key/value storage areas and a cookie jar.
//
// Two storage areas normally exist side by side, a persistent one that
// survives restarts and a session-scoped one. The package ships an in-memory
// area, a file/URL-backed area built on viant/afs, a document-style cookie
// jar and an adapter over any net/http cookie jar. Tests use the in-memory
// variants as fakes.
package storage

import "errors"

// ErrQuotaExceeded is returned by SetItem when an area cannot hold the value.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Area is a string key/value storage area with enumerable keys.
type Area interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
	RemoveItem(key string) error
	// Keys returns a snapshot of the keys currently present.
	Keys() []string
}

// CookieJar exposes every cookie visible to the client as one
// "k1=v1; k2=v2" string. SetCookie takes a single cookie assignment such as
// "k=v; expires=Mon, 02 Jan 2006 15:04:05 GMT" and adds, replaces or
// deletes that cookie.
type CookieJar interface {
	Cookie() string
	SetCookie(assignment string)
}

// Environment is the set of collaborators available to a Store.
type Environment struct {
	Persistent Area
	Session    Area
	Cookies    CookieJar

	// Probe reports whether structured storage can be used at all. When nil,
	// structured storage counts as available if either area is set.
	Probe func() bool
}

// StorageAvailable evaluates the capability probe.
func (e Environment) StorageAvailable() bool {
	if e.Probe != nil {
		return e.Probe()
	}
	return e.Persistent != nil || e.Session != nil
}

// Area returns the persistent or the session-scoped area.
func (e Environment) Area(persistent bool) Area {
	if persistent {
		return e.Persistent
	}
	return e.Session
}
