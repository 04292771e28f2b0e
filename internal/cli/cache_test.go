package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sunburst/pkg/cache"
)

func testCLI(cfg *Config) *CLI {
	c := New(io.Discard, LogInfo)
	c.Config = cfg
	return c
}

func TestCacheClear(t *testing.T) {
	buf := captureOutput(t)
	dir := filepath.Join(t.TempDir(), "cache")
	ctx := context.Background()

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, key, []byte(key), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	c := testCLI(&Config{Cache: CacheConfig{Backend: cache.BackendFile, Dir: dir}})
	if err := c.runCacheClear(ctx, false); err != nil {
		t.Fatalf("runCacheClear: %v", err)
	}
	if !strings.Contains(buf.String(), "Cleared 3 cached entries") {
		t.Errorf("output = %q", buf.String())
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived cache clear")
	}
}

func TestCacheClearExpired(t *testing.T) {
	buf := captureOutput(t)
	dir := filepath.Join(t.TempDir(), "cache")
	ctx := context.Background()

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	fc.Set(ctx, "stale", []byte("x"), time.Millisecond)
	fc.Set(ctx, "fresh", []byte("y"), time.Hour)
	time.Sleep(5 * time.Millisecond)

	c := testCLI(&Config{Cache: CacheConfig{Backend: cache.BackendFile, Dir: dir}})
	if err := c.runCacheClear(ctx, true); err != nil {
		t.Fatalf("runCacheClear: %v", err)
	}
	if !strings.Contains(buf.String(), "Cleared 1 expired entries") {
		t.Errorf("output = %q", buf.String())
	}
	if _, hit, _ := fc.Get(ctx, "fresh"); !hit {
		t.Error("fresh entry removed")
	}
}

func TestCacheClearEmpty(t *testing.T) {
	buf := captureOutput(t)
	dir := filepath.Join(t.TempDir(), "never-created")

	c := testCLI(&Config{Cache: CacheConfig{Backend: cache.BackendFile, Dir: dir}})
	if err := c.runCacheClear(context.Background(), false); err != nil {
		t.Fatalf("runCacheClear: %v", err)
	}
	if !strings.Contains(buf.String(), "Cache is empty") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCacheClearRemoteBackend(t *testing.T) {
	buf := captureOutput(t)

	c := testCLI(&Config{Cache: CacheConfig{Backend: cache.BackendRedis}})
	if err := c.runCacheClear(context.Background(), false); err != nil {
		t.Fatalf("runCacheClear: %v", err)
	}
	if !strings.Contains(buf.String(), "not cleared locally") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCacheClearMemoryBackend(t *testing.T) {
	buf := captureOutput(t)

	c := testCLI(&Config{Cache: CacheConfig{Backend: cache.BackendMemory}})
	if err := c.runCacheClear(context.Background(), false); err != nil {
		t.Fatalf("runCacheClear: %v", err)
	}
	if !strings.Contains(buf.String(), "keeps nothing between runs") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     CacheConfig
		noCache bool
		want    string
		wantErr bool
	}{
		{"no-cache flag", CacheConfig{Backend: cache.BackendFile}, true, "*cache.NullCache", false},
		{"none backend", CacheConfig{Backend: cache.BackendNone}, false, "*cache.NullCache", false},
		{"file backend", CacheConfig{Backend: cache.BackendFile, Dir: t.TempDir()}, false, "*cache.FileCache", false},
		{"memory backend", CacheConfig{Backend: "Memory"}, false, "*cache.MemoryCache", false},
		{"unknown backend", CacheConfig{Backend: "memcached"}, false, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCLI(&Config{Cache: tt.cfg})
			got, err := c.newCache(ctx, tt.noCache)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newCache() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer got.Close()
			if typ := typeName(got); typ != tt.want {
				t.Errorf("newCache() = %s, want %s", typ, tt.want)
			}
		})
	}
}

func TestNewRunnerTTL(t *testing.T) {
	c := testCLI(&Config{Cache: CacheConfig{Backend: cache.BackendNone, TTL: time.Hour}})
	r, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer r.Close()
	if r.TTL != time.Hour {
		t.Errorf("runner TTL = %v, want 1h", r.TTL)
	}
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
