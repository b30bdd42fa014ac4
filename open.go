package clientstore

import (
	"context"
	"fmt"

	"github.com/tgifai/clientstore/config"
	"github.com/tgifai/clientstore/storage"
)

// Open builds a Store from a loaded configuration. The persistent area is the
// afs snapshot at cfg.Area.URL (left unset when the URL is empty), the session
// area lives in memory, and cookies go to jar.
func Open(ctx context.Context, cfg *config.Config, jar storage.CookieJar, options ...Option) (*Store, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	env := storage.Environment{
		Session: storage.NewMemoryArea(),
		Cookies: jar,
	}
	if cfg.Area.URL != "" {
		area, err := storage.OpenFileArea(ctx, cfg.Area.URL)
		if err != nil {
			return nil, fmt.Errorf("open persistent area: %w", err)
		}
		env.Persistent = area
	}
	return New(cfg.Store, env, options...), nil
}
