package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vmihiranga/digizigtool/internal/api"
	"github.com/vmihiranga/digizigtool/internal/config"
	"github.com/vmihiranga/digizigtool/internal/extractor"
	"github.com/vmihiranga/digizigtool/internal/registry"
	"github.com/vmihiranga/digizigtool/internal/upstream"
)

func main() {
	cfgPath := flag.String("config", "", "Path to configuration file (defaults apply when empty)")
	addr := flag.String("addr", "", "HTTP listen address override")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := newLogger(cfg.Logging)

	reg, err := registry.FromConfig(cfg.Registry)
	if err != nil {
		log.Fatalf("failed to build endpoint registry: %v", err)
	}

	client := upstream.NewClient(upstream.Options{
		UserAgent:    cfg.Upstream.UserAgent,
		Timeout:      cfg.Upstream.Timeout.Duration,
		MaxBodyBytes: cfg.Upstream.MaxBodyBytes,
	})

	var cache *extractor.Cache
	if cfg.Cache.Enabled {
		cache = extractor.NewCache(cfg.Cache.MaxEntries, cfg.Cache.TTL.Duration)
	}

	metrics := extractor.NewMetrics()
	service := extractor.New(reg, client, cache, metrics, logger)
	server := api.NewServer(service, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown error", "error", err)
		}
	}()

	logger.Info("api server listening", "addr", cfg.Server.Addr, "cache_enabled", cfg.Cache.Enabled)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
	log.Println("API server stopped")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Structured {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
