package handlers

import (
	"net/http"

	"github.com/simoneromano96/coffeed-coffee-service/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "coffeed-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. Readiness requires the store
// to answer; a closed store reports unavailable.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, "Item store not available")
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"items":  count,
		"cache": map[string]any{
			"entries": h.cache.ItemCount(),
		},
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.streamer.ClientCount(),
	})
}
