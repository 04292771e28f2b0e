// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: libraries emit events through the registered
// hooks and the defaults do nothing. Binaries register an implementation at
// startup; [LogHooks] writes every event to a charmbracelet logger.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetChartHooks(observability.NewLogHooks(logger))
//	    observability.SetCacheHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Several implementations can observe the same events; [Counters] keeps
// totals that the server reports on /health:
//
//	stats := &observability.Counters{}
//	observability.SetChartHooks(observability.ChartFanout(observability.NewLogHooks(logger), stats))
//
// Libraries call hooks to emit events:
//
//	observability.Chart().OnBuildStart(ctx, len(data))
//	// ... build the partition ...
//	observability.Chart().OnBuildComplete(ctx, nodeCount, duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Chart Hooks
// =============================================================================

// ChartHooks receives events from building, zooming and rendering charts.
type ChartHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, inputBytes int)
	OnBuildComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// OnZoom records a click that started a transition to focus.
	OnZoom(ctx context.Context, chartID, focus string)

	// Render events
	OnRenderStart(ctx context.Context, vizType string, formats []string)
	OnRenderComplete(ctx context.Context, vizType string, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events for requests served by the chart server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response to a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopChartHooks is a no-op implementation of ChartHooks.
type NoopChartHooks struct{}

func (NoopChartHooks) OnBuildStart(context.Context, int)                          {}
func (NoopChartHooks) OnBuildComplete(context.Context, int, time.Duration, error) {}
func (NoopChartHooks) OnZoom(context.Context, string, string)                     {}
func (NoopChartHooks) OnRenderStart(context.Context, string, []string)            {}
func (NoopChartHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                     {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// Registered hooks. Each slot holds a box so the stored concrete type never
// changes, as atomic.Value requires.
var (
	chartSlot atomic.Value // chartBox
	cacheSlot atomic.Value // cacheBox
	httpSlot  atomic.Value // httpBox
)

type (
	chartBox struct{ ChartHooks }
	cacheBox struct{ CacheHooks }
	httpBox  struct{ HTTPHooks }
)

func init() { Reset() }

// SetChartHooks registers chart hooks. A nil h is ignored.
func SetChartHooks(h ChartHooks) {
	if h != nil {
		chartSlot.Store(chartBox{h})
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.Store(cacheBox{h})
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.Store(httpBox{h})
	}
}

// Chart returns the registered chart hooks.
func Chart() ChartHooks { return chartSlot.Load().(chartBox).ChartHooks }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.Load().(cacheBox).CacheHooks }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.Load().(httpBox).HTTPHooks }

// Reset restores the no-op hooks.
func Reset() {
	chartSlot.Store(chartBox{NoopChartHooks{}})
	cacheSlot.Store(cacheBox{NoopCacheHooks{}})
	httpSlot.Store(httpBox{NoopHTTPHooks{}})
}
