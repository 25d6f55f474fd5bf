package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/simoneromano96/coffeed-coffee-service/internal/server/response"
	ws "github.com/simoneromano96/coffeed-coffee-service/internal/server/websocket"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
)

// parseKindFilter reads the optional ?kind= query parameter. A missing
// parameter means the subscription wants every mutation kind.
func parseKindFilter(r *http.Request) (*catalog.MutationKind, error) {
	raw := r.URL.Query().Get("kind")
	if raw == "" {
		return nil, nil
	}
	kind, err := catalog.ParseMutationKind(raw)
	if err != nil {
		return nil, err
	}
	return &kind, nil
}

// HandleWebSocket handles WebSocket connections at /api/v1/items/subscribe/ws.
// An optional ?kind=created|updated|deleted query narrows the stream to a
// single mutation kind.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	filter, err := parseKindFilter(r)
	if err != nil {
		response.BadRequest(w, "Invalid mutation kind", err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	sub := h.broker.Subscribe(filter)

	clientID := fmt.Sprintf("%s-%d", r.RemoteAddr, time.Now().UnixNano())
	client := ws.NewClient(clientID, h.wsHub, conn, sub)
	h.wsHub.Register(client)

	if err := client.Greet(); err != nil {
		h.logger.Warn().Err(err).Str("client_id", clientID).Msg("WebSocket greeting failed")
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandleSSE handles Server-Sent Events at /api/v1/items/subscribe/stream.
// Accepts the same ?kind= filter as the WebSocket endpoint.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	filter, err := parseKindFilter(r)
	if err != nil {
		response.BadRequest(w, "Invalid mutation kind", err.Error())
		return
	}

	h.streamer.Stream(w, r, filter)
}
