package observability

import (
	"context"
	"time"
)

// ChartFanout returns hooks that forward every chart event to each of hs
// in order. Nil entries are skipped.
func ChartFanout(hs ...ChartHooks) ChartHooks {
	return chartFanout(compact(hs))
}

// CacheFanout is ChartFanout for cache events.
func CacheFanout(hs ...CacheHooks) CacheHooks {
	return cacheFanout(compact(hs))
}

// HTTPFanout is ChartFanout for HTTP events.
func HTTPFanout(hs ...HTTPHooks) HTTPHooks {
	return httpFanout(compact(hs))
}

func compact[T comparable](hs []T) []T {
	var zero T
	out := make([]T, 0, len(hs))
	for _, h := range hs {
		if h != zero {
			out = append(out, h)
		}
	}
	return out
}

type chartFanout []ChartHooks

func (f chartFanout) OnBuildStart(ctx context.Context, n int) {
	for _, h := range f {
		h.OnBuildStart(ctx, n)
	}
}

func (f chartFanout) OnBuildComplete(ctx context.Context, nodes int, d time.Duration, err error) {
	for _, h := range f {
		h.OnBuildComplete(ctx, nodes, d, err)
	}
}

func (f chartFanout) OnZoom(ctx context.Context, chartID, focus string) {
	for _, h := range f {
		h.OnZoom(ctx, chartID, focus)
	}
}

func (f chartFanout) OnRenderStart(ctx context.Context, vizType string, formats []string) {
	for _, h := range f {
		h.OnRenderStart(ctx, vizType, formats)
	}
}

func (f chartFanout) OnRenderComplete(ctx context.Context, vizType string, formats []string, d time.Duration, err error) {
	for _, h := range f {
		h.OnRenderComplete(ctx, vizType, formats, d, err)
	}
}

type cacheFanout []CacheHooks

func (f cacheFanout) OnCacheHit(ctx context.Context, kind string) {
	for _, h := range f {
		h.OnCacheHit(ctx, kind)
	}
}

func (f cacheFanout) OnCacheMiss(ctx context.Context, kind string) {
	for _, h := range f {
		h.OnCacheMiss(ctx, kind)
	}
}

func (f cacheFanout) OnCacheSet(ctx context.Context, kind string, size int) {
	for _, h := range f {
		h.OnCacheSet(ctx, kind, size)
	}
}

type httpFanout []HTTPHooks

func (f httpFanout) OnRequest(ctx context.Context, method, route string) {
	for _, h := range f {
		h.OnRequest(ctx, method, route)
	}
}

func (f httpFanout) OnResponse(ctx context.Context, method, route string, status int, d time.Duration) {
	for _, h := range f {
		h.OnResponse(ctx, method, route, status, d)
	}
}
