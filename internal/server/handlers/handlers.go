// Package handlers provides HTTP request handlers for the item catalog API.
package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	itemsvc "github.com/simoneromano96/coffeed-coffee-service/internal/catalog"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server/cache"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server/events"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server/sse"
	ws "github.com/simoneromano96/coffeed-coffee-service/internal/server/websocket"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	service   *itemsvc.Service
	cache     *cache.Cache
	broker    *events.Broker
	wsHub     *ws.Hub
	streamer  *sse.Streamer
	upgrader  websocket.Upgrader
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(
	service *itemsvc.Service,
	cache *cache.Cache,
	broker *events.Broker,
	wsHub *ws.Hub,
	streamer *sse.Streamer,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	startTime time.Time,
) *Handlers {
	return &Handlers{
		service:   service,
		cache:     cache,
		broker:    broker,
		wsHub:     wsHub,
		streamer:  streamer,
		upgrader:  upgrader,
		logger:    logger,
		startTime: startTime,
	}
}
