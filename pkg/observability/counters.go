package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters tallies events. It implements every hook interface and is safe
// for concurrent use; the zero value is ready.
type Counters struct {
	Builds       atomic.Int64
	BuildErrors  atomic.Int64
	Zooms        atomic.Int64
	Renders      atomic.Int64
	RenderErrors atomic.Int64
	CacheHits    atomic.Int64
	CacheMisses  atomic.Int64
	Requests     atomic.Int64
	ServerErrors atomic.Int64
}

// Snapshot returns the current totals keyed by snake_case name.
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"builds":        c.Builds.Load(),
		"build_errors":  c.BuildErrors.Load(),
		"zooms":         c.Zooms.Load(),
		"renders":       c.Renders.Load(),
		"render_errors": c.RenderErrors.Load(),
		"cache_hits":    c.CacheHits.Load(),
		"cache_misses":  c.CacheMisses.Load(),
		"requests":      c.Requests.Load(),
		"server_errors": c.ServerErrors.Load(),
	}
}

func (c *Counters) OnBuildStart(context.Context, int) {}

func (c *Counters) OnBuildComplete(_ context.Context, _ int, _ time.Duration, err error) {
	c.Builds.Add(1)
	if err != nil {
		c.BuildErrors.Add(1)
	}
}

func (c *Counters) OnZoom(context.Context, string, string) { c.Zooms.Add(1) }

func (c *Counters) OnRenderStart(context.Context, string, []string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _ string, _ []string, _ time.Duration, err error) {
	c.Renders.Add(1)
	if err != nil {
		c.RenderErrors.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)      { c.CacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)     { c.CacheMisses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int) {}

func (c *Counters) OnRequest(context.Context, string, string) { c.Requests.Add(1) }

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	if status >= 500 {
		c.ServerErrors.Add(1)
	}
}

var (
	_ ChartHooks = (*Counters)(nil)
	_ CacheHooks = (*Counters)(nil)
	_ HTTPHooks  = (*Counters)(nil)
)
