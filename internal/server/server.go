// Package server provides the HTTP server for the item catalog API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	itemsvc "github.com/simoneromano96/coffeed-coffee-service/internal/catalog"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server/cache"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server/events"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server/sse"
	ws "github.com/simoneromano96/coffeed-coffee-service/internal/server/websocket"
	"github.com/simoneromano96/coffeed-coffee-service/internal/store"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	service   *itemsvc.Service
	cache     *cache.Cache
	broker    *events.Broker
	wsHub     *ws.Hub
	streamer  *sse.Streamer
	upgrader  websocket.Upgrader
	logger    *zerolog.Logger
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// New creates a new server instance around the given item store. The
// server owns the event broker and wires the item commands to publish
// into it.
func New(st store.Store, logger *zerolog.Logger, cfg Config) *Server {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	streamer := sse.NewStreamer(broker, logger)
	service := itemsvc.NewService(st, broker, logger)

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		service:  service,
		cache:    cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:   broker,
		wsHub:    wsHub,
		streamer: streamer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true // Allow all origins for WebSocket
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Start starts background services (broker, WebSocket hub, cache
// invalidation).
func (s *Server) Start() {
	s.logger.Debug().Msg("Starting background services")

	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.invalidateOnChange()

	s.logger.Debug().Msg("All background services started")
}

// invalidateOnChange evicts cached reads for every published mutation.
// The handlers already evict synchronously for their own writes; this
// subscription additionally covers events published by any other
// component holding the broker.
func (s *Server) invalidateOnChange() {
	sub := s.broker.Subscribe(nil)
	defer sub.Close()

	for event := range sub.Events() {
		s.cache.InvalidateItem(event.ItemID)
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown gracefully shuts down background services.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")

	// Cancelling the context stops the broker, which closes every
	// subscription and in turn ends the WebSocket and SSE streams.
	s.cancel()

	return nil
}

// Service returns the item command service.
func (s *Server) Service() *itemsvc.Service {
	return s.service
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
