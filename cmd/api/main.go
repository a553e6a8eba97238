package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/bharativoice/internal/api"
	"github.com/nikhilbhutani/bharativoice/internal/config"
	"github.com/nikhilbhutani/bharativoice/internal/session"
	"github.com/nikhilbhutani/bharativoice/internal/tts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Redis session store (optional)
	var rdb *redis.Client
	var store session.Store
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unavailable, results may not survive restarts", "error", err)
		}
		store = session.NewRedisStore(rdb, cfg.Session.TTL)
	} else {
		store = session.NewMemoryStore(cfg.Session.TTL)
	}

	provider, err := tts.NewProvider(cfg.TTS, logger)
	if err != nil {
		slog.Error("failed to create speech provider", "error", err)
		os.Exit(1)
	}
	synth := tts.NewCapability(provider, cfg.TTS.Voice, cfg.TTS.Speed, logger)

	registry := session.NewRegistry(synth, store, cfg.Session.TTL, logger)
	go registry.Run(ctx, sweepInterval(cfg.Session.TTL))

	router := api.NewRouter(cfg, registry, rdb, logger)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // synthesis of long text can be slow
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.Addr(), "tts_provider", provider.Name())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func sweepInterval(ttl time.Duration) time.Duration {
	if d := ttl / 2; d > time.Minute {
		return d
	}
	return time.Minute
}
