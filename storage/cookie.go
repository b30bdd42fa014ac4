package storage

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Assignment is one parsed "name=value; attr=..." cookie write.
type Assignment struct {
	Name    string
	Value   string
	Expires time.Time // zero for a session cookie
	// MaxAge is in seconds and only meaningful when HasMaxAge is set.
	MaxAge    int
	HasMaxAge bool
}

// ParseAssignment parses a cookie assignment the way a browser treats a write
// to document.cookie. Unknown attributes are ignored. It reports false when
// the assignment carries no cookie name.
func ParseAssignment(s string) (Assignment, bool) {
	parts := strings.Split(s, ";")
	name, value, ok := strings.Cut(parts[0], "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Assignment{}, false
	}
	a := Assignment{Name: name, Value: strings.TrimSpace(value)}

	for _, attr := range parts[1:] {
		key, val, _ := strings.Cut(attr, "=")
		val = strings.TrimSpace(val)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "expires":
			if t, err := http.ParseTime(val); err == nil {
				a.Expires = t.UTC()
			}
		case "max-age":
			if secs, err := strconv.Atoi(val); err == nil {
				a.MaxAge = secs
				a.HasMaxAge = true
			}
		}
	}
	return a, true
}

// ExpiresAt resolves the absolute expiry relative to now. Max-Age wins over
// Expires. A zero time means the cookie lives for the session.
func (a Assignment) ExpiresAt(now time.Time) time.Time {
	if a.HasMaxAge {
		return now.Add(time.Duration(a.MaxAge) * time.Second)
	}
	return a.Expires
}

type jarCookie struct {
	name    string
	value   string
	expires time.Time
}

func (c jarCookie) expired(now time.Time) bool {
	return !c.expires.IsZero() && !c.expires.After(now)
}

// MemoryJar is an in-memory CookieJar with document.cookie semantics: cookies
// are kept in write order and disappear once their expiry passes.
type MemoryJar struct {
	mu      sync.Mutex
	now     func() time.Time
	cookies []jarCookie
}

type JarOption func(*MemoryJar)

// WithJarClock sets the time source used to enforce cookie expiry.
func WithJarClock(now func() time.Time) JarOption {
	return func(j *MemoryJar) {
		if now != nil {
			j.now = now
		}
	}
}

func NewMemoryJar(options ...JarOption) *MemoryJar {
	j := &MemoryJar{now: time.Now}
	for _, opt := range options {
		opt(j)
	}
	return j
}

func (j *MemoryJar) Cookie() string {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	j.cookies = slices.DeleteFunc(j.cookies, func(c jarCookie) bool { return c.expired(now) })

	pairs := make([]string, 0, len(j.cookies))
	for _, c := range j.cookies {
		pairs = append(pairs, c.name+"="+c.value)
	}
	return strings.Join(pairs, "; ")
}

func (j *MemoryJar) SetCookie(assignment string) {
	a, ok := ParseAssignment(assignment)
	if !ok {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	c := jarCookie{name: a.Name, value: a.Value, expires: a.ExpiresAt(now)}
	i := slices.IndexFunc(j.cookies, func(one jarCookie) bool { return one.name == a.Name })
	switch {
	case c.expired(now):
		if i >= 0 {
			j.cookies = slices.Delete(j.cookies, i, i+1)
		}
	case i >= 0:
		j.cookies[i] = c
	default:
		j.cookies = append(j.cookies, c)
	}
}

// HTTPJar exposes the cookies an http.CookieJar holds for one URL as a
// CookieJar, so a Store can share state with an http.Client.
type HTTPJar struct {
	jar http.CookieJar
	url *url.URL
}

func NewHTTPJar(jar http.CookieJar, u *url.URL) *HTTPJar {
	target := *u
	if target.Path == "" {
		target.Path = "/"
	}
	return &HTTPJar{jar: jar, url: &target}
}

func (h *HTTPJar) Cookie() string {
	cookies := h.jar.Cookies(h.url)
	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}

func (h *HTTPJar) SetCookie(assignment string) {
	a, ok := ParseAssignment(assignment)
	if !ok {
		return
	}
	c := &http.Cookie{Name: a.Name, Value: a.Value, Path: "/", Expires: a.Expires}
	if a.HasMaxAge {
		c.MaxAge = a.MaxAge
		if a.MaxAge <= 0 {
			c.MaxAge = -1
		}
	}
	h.jar.SetCookies(h.url, []*http.Cookie{c})
}
