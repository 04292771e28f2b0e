package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[chart]
size = 600
duration = "1s"
easing = "linear"
max_label_length = 12
tooltip_fields = ["name", "description"]

[cache]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2
ttl = "2h"

[server]
addr = ":9000"
read_timeout = "5s"
watch = "tree.json"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Chart.Size != 600 || cfg.Chart.Duration != time.Second || cfg.Chart.Easing != "linear" {
		t.Errorf("chart = %+v", cfg.Chart)
	}
	if cfg.Chart.MaxLabelLength != 12 {
		t.Errorf("max_label_length = %d, want 12", cfg.Chart.MaxLabelLength)
	}
	if want := []string{"name", "description"}; !reflect.DeepEqual(cfg.Chart.TooltipFields, want) {
		t.Errorf("tooltip_fields = %v, want %v", cfg.Chart.TooltipFields, want)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 5*time.Second || cfg.Server.Watch != "tree.json" {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadConfigExample(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Duration != 750*time.Millisecond {
		t.Errorf("Duration = %v, want 750ms", cfg.Chart.Duration)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.Server.SessionTTL)
	}
}

func TestRenderCommandExampleTree(t *testing.T) {
	_, config := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "energy.svg")
	tree := filepath.Join("..", "..", "examples", "energy.json")

	if err := execute(t, "--config", config, "render", tree, "-o", outPath, "--focus", "Demand/Transport"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[chart]\ncolour = \"red\"\n", "unknown keys: chart.colour"},
		{"bad syntax", "[chart\n", "load config"},
		{"bad duration", "[chart]\nduration = \"soon\"\n", "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", cfg)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("[chart]\nsize = 400\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Size != 400 {
		t.Errorf("size = %v, want 400", cfg.Chart.Size)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("backend = %q, want file default kept", cfg.Cache.Backend)
	}
}

func TestApplyChart(t *testing.T) {
	cfg := &Config{Chart: ChartConfig{
		Size:           600,
		Duration:       time.Second,
		Easing:         "linear",
		MaxLabelLength: 8,
		TooltipFields:  []string{"name"},
	}}

	t.Run("fills zero fields", func(t *testing.T) {
		var opts pipeline.Options
		cfg.ApplyChart(&opts)
		if opts.Size != 600 || opts.Duration != time.Second || opts.Easing != "linear" || opts.MaxLabelLength != 8 {
			t.Errorf("opts = %+v", opts)
		}
		if !reflect.DeepEqual(opts.Fields, []string{"name"}) {
			t.Errorf("fields = %v", opts.Fields)
		}
	})

	t.Run("flags win", func(t *testing.T) {
		opts := pipeline.Options{Size: 300, Easing: "quad-in", Fields: []string{"category"}}
		cfg.ApplyChart(&opts)
		if opts.Size != 300 || opts.Easing != "quad-in" {
			t.Errorf("flag values overwritten: %+v", opts)
		}
		if !reflect.DeepEqual(opts.Fields, []string{"category"}) {
			t.Errorf("fields = %v", opts.Fields)
		}
	})
}

func TestCacheConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	cc, err := DefaultConfig().CacheConfig()
	if err != nil {
		t.Fatalf("CacheConfig: %v", err)
	}
	if cc.Backend != cache.BackendFile || cc.Dir != filepath.Join(xdg, appName) {
		t.Errorf("default cache config = %+v", cc)
	}

	cfg := &Config{Cache: CacheConfig{
		Backend:       cache.BackendMongo,
		MongoURI:      "mongodb://db:27017",
		MongoDatabase: "charts",
	}}
	cc, err = cfg.CacheConfig()
	if err != nil {
		t.Fatalf("CacheConfig: %v", err)
	}
	if cc.Dir != "" {
		t.Errorf("mongo backend should not get a directory, got %q", cc.Dir)
	}
	if cc.Mongo.URI != "mongodb://db:27017" || cc.Mongo.Database != "charts" {
		t.Errorf("mongo = %+v", cc.Mongo)
	}
	if cc.Redis.Prefix != appName+":" {
		t.Errorf("redis prefix = %q", cc.Redis.Prefix)
	}
}

func TestServerConfig(t *testing.T) {
	cfg := &Config{
		Chart:  ChartConfig{Size: 500, Easing: "linear", TooltipFields: []string{"name"}},
		Server: ServerConfig{Addr: ":9000", SessionTTL: time.Minute},
	}
	sc := cfg.ServerConfig()
	if sc.Addr != ":9000" || sc.SessionTTL != time.Minute {
		t.Errorf("server config = %+v", sc)
	}
	if sc.Size != 500 || sc.Easing != "linear" || !reflect.DeepEqual(sc.Fields, []string{"name"}) {
		t.Errorf("chart defaults not carried: %+v", sc)
	}
}
