package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/simoneromano96/coffeed-coffee-service/internal/server/response"
)

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response.OK(w, map[string]any{
		"runtime": map[string]any{
			"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
			"memory_sys_mb":  memStats.Sys / 1024 / 1024,
		},
		"catalog": map[string]any{
			"items_total": count,
		},
		"events": map[string]any{
			"subscribers": h.broker.SubscriberCount(),
		},
		"realtime": map[string]any{
			"websocket_clients": h.wsHub.ClientCount(),
			"sse_clients":       h.streamer.ClientCount(),
		},
		"cache": h.cache.GetStats(),
	})
}
