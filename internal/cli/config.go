package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/server"
)

// Config is the on-disk CLI configuration. Zero values leave the built-in
// defaults in place; command-line flags override both.
//
//	[chart]
//	size = 932
//	duration = "750ms"
//	easing = "cubic-in-out"
//	max_label_length = 12
//	tooltip_fields = ["name", "value"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "1h"
//
//	[server]
//	addr = "0.0.0.0:8080"
//	watch = "tree.json"
type Config struct {
	Chart  ChartConfig  `toml:"chart"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// ChartConfig holds chart defaults shared by every command.
type ChartConfig struct {
	Size           float64       `toml:"size"`
	Duration       time.Duration `toml:"duration"`
	Easing         string        `toml:"easing"`
	MaxLabelLength int           `toml:"max_label_length"`
	TooltipFields  []string      `toml:"tooltip_fields"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend       string        `toml:"backend"` // none, memory, file, redis, mongo
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisURL      string        `toml:"redis_url"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
	TTL           time.Duration `toml:"ttl"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	SessionTTL   time.Duration `toml:"session_ttl"`
	Watch        string        `toml:"watch"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{Cache: CacheConfig{Backend: cache.BackendFile}}
}

// LoadConfig reads the TOML file at path. An empty path means the default
// location, which may be missing. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(dir, configFile)
	}

	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ApplyChart fills the chart fields of opts that are still zero.
func (c *Config) ApplyChart(opts *pipeline.Options) {
	if opts.Size == 0 {
		opts.Size = c.Chart.Size
	}
	if opts.Duration == 0 {
		opts.Duration = c.Chart.Duration
	}
	if opts.Easing == "" {
		opts.Easing = c.Chart.Easing
	}
	if opts.MaxLabelLength == 0 {
		opts.MaxLabelLength = c.Chart.MaxLabelLength
	}
	if len(opts.Fields) == 0 {
		opts.Fields = c.Chart.TooltipFields
	}
}

// CacheConfig converts the [cache] section for cache.Open. The file backend
// defaults to the XDG cache directory.
func (c *Config) CacheConfig() (cache.Config, error) {
	backend := strings.ToLower(c.Cache.Backend)
	if backend == "" {
		backend = cache.BackendNone
	}
	cc := cache.Config{
		Backend: backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			URL:      c.Cache.RedisURL,
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			Prefix:   appName + ":",
		},
		Mongo: cache.MongoConfig{
			URI:      c.Cache.MongoURI,
			Database: c.Cache.MongoDatabase,
		},
	}
	if cc.Backend == cache.BackendFile && cc.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cc, err
		}
		cc.Dir = dir
	}
	return cc, nil
}

// ServerConfig converts the [server] and [chart] sections for server.New.
func (c *Config) ServerConfig() server.Config {
	return server.Config{
		Addr:           c.Server.Addr,
		ReadTimeout:    c.Server.ReadTimeout,
		WriteTimeout:   c.Server.WriteTimeout,
		SessionTTL:     c.Server.SessionTTL,
		Size:           c.Chart.Size,
		MaxLabelLength: c.Chart.MaxLabelLength,
		Fields:         c.Chart.TooltipFields,
		Duration:       c.Chart.Duration,
		Easing:         c.Chart.Easing,
	}
}
