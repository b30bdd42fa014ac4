package storage

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignment(t *testing.T) {
	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		in     string
		want   Assignment
		wantOK bool
	}{
		{
			name:   "plain",
			in:     "k=v",
			want:   Assignment{Name: "k", Value: "v"},
			wantOK: true,
		},
		{
			name:   "expires",
			in:     "k=v; expires=" + expires.Format(http.TimeFormat),
			want:   Assignment{Name: "k", Value: "v", Expires: expires},
			wantOK: true,
		},
		{
			name:   "max-age and unknown attributes",
			in:     " k = v ; Path=/; Max-Age=60; Secure",
			want:   Assignment{Name: "k", Value: "v", MaxAge: 60, HasMaxAge: true},
			wantOK: true,
		},
		{
			name:   "value keeps inner equals",
			in:     "k=a=b",
			want:   Assignment{Name: "k", Value: "a=b"},
			wantOK: true,
		},
		{
			name:   "unparseable expires ignored",
			in:     "k=v; expires=someday",
			want:   Assignment{Name: "k", Value: "v"},
			wantOK: true,
		},
		{name: "no equals", in: "novalue"},
		{name: "empty name", in: "=v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAssignment(tt.in)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryJar(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	jar := NewMemoryJar(WithJarClock(func() time.Time { return now }))

	jar.SetCookie("a=1")
	jar.SetCookie("b=2; expires=" + now.Add(time.Minute).Format(http.TimeFormat))
	jar.SetCookie("c=3; max-age=10")
	assert.Equal(t, "a=1; b=2; c=3", jar.Cookie())

	t.Run("replace keeps position", func(t *testing.T) {
		jar.SetCookie("a=one")
		assert.Equal(t, "a=one; b=2; c=3", jar.Cookie())
	})

	t.Run("native expiry", func(t *testing.T) {
		now = now.Add(11 * time.Second)
		assert.Equal(t, "a=one; b=2", jar.Cookie())
		now = now.Add(time.Minute)
		assert.Equal(t, "a=one", jar.Cookie())
	})

	t.Run("past expires deletes", func(t *testing.T) {
		jar.SetCookie("a=gone; expires=" + now.Add(-time.Second).Format(http.TimeFormat))
		assert.Equal(t, "", jar.Cookie())
	})

	t.Run("invalid assignment ignored", func(t *testing.T) {
		jar.SetCookie("garbage")
		assert.Equal(t, "", jar.Cookie())
	})
}

func TestHTTPJar(t *testing.T) {
	inner, err := cookiejar.New(nil)
	require.NoError(t, err)
	u, err := url.Parse("https://app.example.com")
	require.NoError(t, err)

	jar := NewHTTPJar(inner, u)
	jar.SetCookie("token=abc")
	jar.SetCookie("theme=dark; expires=" + time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
	assert.Equal(t, "token=abc; theme=dark", jar.Cookie())

	// Visible to an http.Client sharing the same jar.
	cookies := inner.Cookies(u)
	require.Len(t, cookies, 2)

	jar.SetCookie("token=x; max-age=0")
	assert.Equal(t, "theme=dark", jar.Cookie())

	jar.SetCookie("theme=x; expires=" + time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat))
	assert.Equal(t, "", jar.Cookie())
}
