package storage

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/gg/gmap"
	"github.com/bytedance/sonic"
	"github.com/viant/afs"

	"github.com/tgifai/clientstore/internal/pkg/logs"
)

const (
	fileAreaFormat = "clientstore-area"
	fileAreaSchema = 1
)

// FileArea is a persistent Area kept as a single JSON snapshot at a URL
// (a plain path, file:// or any other scheme afs understands). Every
// mutation rewrites the snapshot through a temporary object and a move.
type FileArea struct {
	mu    sync.RWMutex
	fs    afs.Service
	url   string
	items map[string]string
}

type fileSnapshot struct {
	Format string            `json:"format"`
	Schema int               `json:"schema"`
	Items  map[string]string `json:"items"`
}

// OpenFileArea loads the snapshot at URL. A missing snapshot yields an empty
// area; an unreadable one is logged and replaced on the next write.
func OpenFileArea(ctx context.Context, URL string) (*FileArea, error) {
	URL = strings.TrimSpace(URL)
	if URL == "" {
		return nil, fmt.Errorf("area url is required")
	}
	a := &FileArea{
		fs:    afs.New(),
		url:   URL,
		items: make(map[string]string),
	}
	if err := a.load(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *FileArea) GetItem(key string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.items[key]
	return v, ok
}

func (a *FileArea) SetItem(key, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	prev, existed := a.items[key]
	a.items[key] = value
	if err := a.save(context.Background()); err != nil {
		if existed {
			a.items[key] = prev
		} else {
			delete(a.items, key)
		}
		return err
	}
	return nil
}

func (a *FileArea) RemoveItem(key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	prev, ok := a.items[key]
	if !ok {
		return nil
	}
	delete(a.items, key)
	if err := a.save(context.Background()); err != nil {
		a.items[key] = prev
		return err
	}
	return nil
}

// Keys returns the stored keys in lexical order.
func (a *FileArea) Keys() []string {
	a.mu.RLock()
	keys := gmap.ToSlice(a.items, func(k string, _ string) string { return k })
	a.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// URL returns the snapshot location.
func (a *FileArea) URL() string {
	return a.url
}

func (a *FileArea) load(ctx context.Context) error {
	exists, err := a.fs.Exists(ctx, a.url)
	if err != nil {
		return fmt.Errorf("check area snapshot: %w", err)
	}
	if !exists {
		return nil
	}

	data, err := a.fs.DownloadWithURL(ctx, a.url)
	if err != nil {
		return fmt.Errorf("read area snapshot: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var snap fileSnapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		logs.CtxWarn(ctx, "[storage] discard unreadable area snapshot %s: %v", a.url, err)
		return nil
	}
	if snap.Format != "" && snap.Format != fileAreaFormat {
		logs.CtxWarn(ctx, "[storage] discard area snapshot %s with format %q", a.url, snap.Format)
		return nil
	}
	for k, v := range snap.Items {
		a.items[k] = v
	}
	return nil
}

func (a *FileArea) save(ctx context.Context) error {
	data, err := sonic.Marshal(fileSnapshot{
		Format: fileAreaFormat,
		Schema: fileAreaSchema,
		Items:  a.items,
	})
	if err != nil {
		return fmt.Errorf("marshal area snapshot: %w", err)
	}

	tmp := a.url + ".tmp"
	if err := a.fs.Upload(ctx, tmp, 0o600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write area snapshot: %w", err)
	}
	if err := a.fs.Move(ctx, tmp, a.url); err != nil {
		_ = a.fs.Delete(ctx, tmp)
		return fmt.Errorf("replace area snapshot: %w", err)
	}
	return nil
}
