package server

import (
	"net/http"
	"strings"

	"github.com/simoneromano96/coffeed-coffee-service/internal/server/handlers"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server/middleware"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.service,
		s.cache,
		s.broker,
		s.wsHub,
		s.streamer,
		s.upgrader,
		s.logger,
		s.startTime,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/ready", h.HandleReady)

	// Item collection endpoints
	mux.HandleFunc(prefix+"/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.HandleListItems(w, r)
		case http.MethodPost:
			h.HandleCreateItem(w, r)
		default:
			response.MethodNotAllowed(w, r.Method)
		}
	})

	// Single item and subscription endpoints
	mux.HandleFunc(prefix+"/items/", func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path[len(prefix+"/items/"):])

		// /items/subscribe/ws and /items/subscribe/stream
		if len(parts) == 2 && parts[0] == "subscribe" {
			switch parts[1] {
			case "ws":
				h.HandleWebSocket(w, r)
				return
			case "stream":
				h.HandleSSE(w, r)
				return
			}
			response.NotFound(w, "Not found", "unknown subscription transport")
			return
		}

		if len(parts) != 1 {
			response.NotFound(w, "Not found", "item id required")
			return
		}

		itemID := parts[0]
		switch r.Method {
		case http.MethodGet:
			h.HandleGetItem(w, r, itemID)
		case http.MethodPatch:
			h.HandleUpdateItem(w, r, itemID)
		case http.MethodDelete:
			h.HandleDeleteItem(w, r, itemID)
		default:
			response.MethodNotAllowed(w, r.Method)
		}
	})

	// Stats endpoint
	mux.HandleFunc(prefix+"/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.HandleStats(w, r)
			return
		}
		response.MethodNotAllowed(w, r.Method)
	})
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// Rate limiting (if enabled)
	if cfg.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, s.logger)
		handler = middleware.RateLimit(rateLimiter)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// splitPath splits a URL path into parts, removing empty strings.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
