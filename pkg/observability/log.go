package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug entries to a
// logger. Failures are logged at error level. A logger attached to the
// event's context with log.WithContext takes precedence, so request-scoped
// fields reach the entry.
type LogHooks struct {
	logger *log.Logger
}

func (h *LogHooks) from(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(log.ContextKey).(*log.Logger); ok {
			return l
		}
	}
	return h.logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnBuildStart(ctx context.Context, inputBytes int) {
	h.from(ctx).Debug("building partition", "bytes", inputBytes)
}

func (h *LogHooks) OnBuildComplete(ctx context.Context, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.from(ctx).Error("build failed", "err", err, "elapsed", d)
		return
	}
	h.from(ctx).Debug("built partition", "nodes", nodeCount, "elapsed", d)
}

func (h *LogHooks) OnZoom(ctx context.Context, chartID, focus string) {
	h.from(ctx).Debug("zoom", "chart", chartID, "focus", focus)
}

func (h *LogHooks) OnRenderStart(ctx context.Context, vizType string, formats []string) {
	h.from(ctx).Debug("rendering", "type", vizType, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(ctx context.Context, vizType string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.from(ctx).Error("render failed", "type", vizType, "err", err)
		return
	}
	h.from(ctx).Debug("rendered", "type", vizType, "formats", formats, "elapsed", d)
}

func (h *LogHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.from(ctx).Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.from(ctx).Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.from(ctx).Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(ctx context.Context, method, route string) {
	h.from(ctx).Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(ctx context.Context, method, route string, status int, d time.Duration) {
	if status >= 500 {
		h.from(ctx).Error("response", "method", method, "route", route, "status", status, "elapsed", d)
		return
	}
	h.from(ctx).Info("response", "method", method, "route", route, "status", status, "elapsed", d)
}

var (
	_ ChartHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
