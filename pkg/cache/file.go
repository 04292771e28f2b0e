package cache

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// entryExt marks files written by FileCache; Clear and Prune touch nothing
// else in the directory.
const entryExt = ".entry"

// entryMagic starts the header line of every entry file. The header is
// followed by the raw value, so large PNG and PDF artifacts are stored
// without re-encoding.
const entryMagic = "sunburst-cache/1"

// FileCache stores one file per entry under dir, sharded by the first byte
// of the key's hash. Writes go through a temporary file and a rename, so a
// CLI and a server sharing the directory never read half an entry.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the entry for key. Expired and unreadable entries are removed
// and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	expires, data, err := decodeEntry(raw)
	if err != nil || c.expired(expires) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set writes data under key. A non-positive ttl never expires.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = c.now().Add(ttl)
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	fmt.Fprintf(w, "%s %d\n", entryMagic, unixNano(expires))
	w.Write(data)
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes key.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every entry and reports how many there were.
func (c *FileCache) Clear() (int, error) {
	return c.remove(func(string) bool { return true })
}

// Prune removes expired and unreadable entries and reports how many.
func (c *FileCache) Prune() (int, error) {
	return c.remove(func(path string) bool {
		raw, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		expires, _, err := decodeEntry(raw)
		return err != nil || c.expired(expires)
	})
}

func (c *FileCache) remove(match func(path string) bool) (int, error) {
	removed := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, entryExt) || !match(path) {
			return nil
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

// Close does nothing.
func (c *FileCache) Close() error { return nil }

func (c *FileCache) expired(expires time.Time) bool {
	return !expires.IsZero() && !c.now().Before(expires)
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

func decodeEntry(raw []byte) (expires time.Time, data []byte, err error) {
	header, data, ok := bytes.Cut(raw, []byte("\n"))
	if !ok {
		return time.Time{}, nil, errors.New("cache entry: missing header")
	}
	var magic string
	var nanos int64
	if _, err := fmt.Sscanf(string(header), "%s %d", &magic, &nanos); err != nil || magic != entryMagic {
		return time.Time{}, nil, fmt.Errorf("cache entry: bad header %q", header)
	}
	if nanos != 0 {
		expires = time.Unix(0, nanos)
	}
	return expires, data, nil
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

var _ Cache = (*FileCache)(nil)
