package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pthscan/pkg/observability"
)

// logHooks writes observability events to a logger at debug level.
type logHooks struct {
	observability.NoopScanHooks
	logger *log.Logger
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, size int64, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "bytes", size, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *logHooks) OnVerdict(_ context.Context, link string, hasMarker bool, d time.Duration) {
	h.logger.Debug("verdict", "pkg", link, "pth", hasMarker, "took", d.Round(time.Millisecond))
}
