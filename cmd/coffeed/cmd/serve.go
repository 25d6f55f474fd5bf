package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/simoneromano96/coffeed-coffee-service/internal/config"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server"
	"github.com/simoneromano96/coffeed-coffee-service/internal/store"
	"github.com/simoneromano96/coffeed-coffee-service/internal/store/memory"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/logging"
)

// serveCmd starts the catalog HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the item catalog API with WebSocket and SSE support",
	Long: `Start the catalog HTTP server.

Features:
  - RESTful endpoints for item management under /api/v1/items
  - WebSocket subscriptions for change events (/api/v1/items/subscribe/ws)
  - Server-Sent Events stream for change events (/api/v1/items/subscribe/stream)
  - Subscription filtering by mutation kind (?kind=created|updated|deleted)
  - In-memory caching with configurable TTL
  - Rate limiting (requests per minute per IP)
  - CORS support for web applications
  - Request logging and panic recovery
  - Graceful shutdown with connection draining`,
	Example: `  # Start on default port 8080
  coffeed serve

  # Start on custom port with a seed catalog
  coffeed serve --port 3000 --seed catalog.yaml

  # Enable CORS for specific origins
  coffeed serve --cors-origins "https://example.com,https://app.example.com"

  # Enable rate limiting
  coffeed serve --rate-limit 60`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server configuration flags
	serveCmd.Flags().IntP("port", "p", 8080, "Server port")
	serveCmd.Flags().String("host", "localhost", "Bind address")

	// Catalog flags
	serveCmd.Flags().String("seed", "", "YAML file with items to preload")

	// CORS flags
	serveCmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	serveCmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	// Performance flags
	serveCmd.Flags().Int("rate-limit", 100, "Requests per minute per IP (0 to disable)")
	serveCmd.Flags().Int("cache-ttl", 300, "Cache TTL in seconds")

	// Timeout flags
	serveCmd.Flags().Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	serveCmd.Flags().Duration("idle-timeout", 120*time.Second, "HTTP idle timeout")

	serveCmd.Flags().String("prefix", "/api/v1", "API path prefix")
}

// runServe starts the catalog API server.
func runServe(cmd *cobra.Command, _ []string) error {
	port, _ := cmd.Flags().GetInt("port")
	host, _ := cmd.Flags().GetString("host")
	seedPath, _ := cmd.Flags().GetString("seed")
	corsEnabled, _ := cmd.Flags().GetBool("cors")
	corsOrigins, _ := cmd.Flags().GetStringSlice("cors-origins")
	rateLimit, _ := cmd.Flags().GetInt("rate-limit")
	cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
	readTimeout, _ := cmd.Flags().GetDuration("read-timeout")
	idleTimeout, _ := cmd.Flags().GetDuration("idle-timeout")
	pathPrefix, _ := cmd.Flags().GetString("prefix")

	// Override with environment variables
	if envPort := config.GetInt("http.port"); envPort != 0 {
		port = envPort
	}
	if envHost := config.GetString("http.host"); envHost != "" {
		host = envHost
	}
	if seedPath == "" {
		seedPath = config.GetString("seed")
	}

	logger := logging.Default()
	logger.Info().
		Int("port", port).
		Str("host", host).
		Str("prefix", pathPrefix).
		Bool("cors", corsEnabled).
		Int("rate_limit", rateLimit).
		Int("cache_ttl_seconds", cacheTTL).
		Msg("Starting catalog server")

	st := memory.New(logger)
	defer func() { _ = st.Close() }()

	if seedPath != "" {
		if err := seedStore(cmd.Context(), st, seedPath, logger); err != nil {
			return err
		}
	}

	cfg := server.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.PathPrefix = pathPrefix
	cfg.CORSEnabled = corsEnabled
	cfg.CORSOrigins = corsOrigins
	cfg.RateLimit = rateLimit
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Second

	srv := server.New(st, logger, cfg)
	srv.Start()
	defer func() { _ = srv.Shutdown(context.Background()) }()

	httpServer := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", host, port),
		Handler:     srv.Handler(),
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
		// WriteTimeout stays zero: the SSE and WebSocket endpoints hold
		// their connections open indefinitely.
	}

	return startWithGracefulShutdown(cmd.Context(), httpServer, logger)
}

// seedStore preloads the catalog from a YAML seed file.
func seedStore(ctx context.Context, st store.Store, path string, logger *zerolog.Logger) error {
	seed, err := store.LoadSeedFile(path)
	if err != nil {
		return err
	}

	for _, entry := range seed.Items {
		if _, err := st.Insert(ctx, entry.Record()); err != nil {
			return fmt.Errorf("seeding item %q: %w", entry.Name, err)
		}
	}

	logger.Info().
		Int("items", len(seed.Items)).
		Str("seed_file", path).
		Msg("Catalog seeded")
	return nil
}

// startWithGracefulShutdown runs the HTTP server until the context is
// cancelled, then drains connections.
func startWithGracefulShutdown(ctx context.Context, httpServer *http.Server, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Msg("Server starting")

		fmt.Printf("Starting catalog server on %s\n", httpServer.Addr)
		fmt.Println("   Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
		fmt.Fprintln(os.Stdout, "\nShutting down catalog server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}
