// Package sse provides the Server-Sent Events transport for live
// item-change subscriptions. Each request owns one broker subscription
// and streams until the client disconnects or the server shuts down.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/simoneromano96/coffeed-coffee-service/internal/server/events"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
)

// heartbeatPeriod is how often a comment line is written to keep
// intermediaries from timing out an idle stream.
const heartbeatPeriod = 30 * time.Second

// Streamer serves SSE connections backed by broker subscriptions.
type Streamer struct {
	broker  *events.Broker
	clients atomic.Int64
	logger  *zerolog.Logger
}

// NewStreamer creates a new SSE streamer.
func NewStreamer(broker *events.Broker, logger *zerolog.Logger) *Streamer {
	return &Streamer{
		broker: broker,
		logger: logger,
	}
}

// ClientCount returns the number of connected SSE clients.
func (s *Streamer) ClientCount() int {
	return int(s.clients.Load())
}

// Stream serves one SSE connection with the given mutation-kind filter.
// It blocks until the client disconnects or the subscription ends.
func (s *Streamer) Stream(w http.ResponseWriter, r *http.Request, filter *catalog.MutationKind) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := s.broker.Subscribe(filter)
	defer sub.Close()

	total := s.clients.Add(1)
	defer s.clients.Add(-1)
	s.logger.Info().
		Int64("total_clients", total).
		Msg("SSE client connected")
	defer s.logger.Info().Msg("SSE client disconnected")

	// Initial connection event
	s.writeEvent(w, "connected", map[string]any{
		"message":   "Connected to item change stream",
		"timestamp": time.Now().UTC(),
	})
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatPeriod)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case event, ok := <-sub.Events():
			if !ok {
				// Broker shutdown or slow-consumer drop
				return
			}
			s.writeEvent(w, "item."+string(event.Kind), map[string]any{
				"item_id":   event.ItemID,
				"timestamp": event.Timestamp,
			})
			flusher.Flush()

		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}

// writeEvent writes one SSE frame.
func (s *Streamer) writeEvent(w http.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
