// Package main is the entry point for the portfolio API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musubi/internal/auth"
	"musubi/internal/config"
	"musubi/internal/database"
	"musubi/internal/handlers"
	"musubi/internal/ratelimit"
	"musubi/internal/router"
	"musubi/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	if cfg.TOTPSecret == "" {
		slog.Warn("TOTP_SECRET not set, admin login disabled; run cmd/totp-setup to provision one")
	}
	if cfg.SessionKey == "" {
		slog.Warn("SESSION_KEY not set, admin login disabled")
	}

	ctx := context.Background()

	// Connect to MongoDB.
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)

	// Create the indexes the stores rely on (no-op when they exist).
	if err := database.EnsureIndexes(ctx, db); err != nil {
		slog.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Session tokens. An empty key still builds a service that rejects
	// everything, keeping the public site up without admin access.
	tokens, err := newTokenService(cfg)
	if err != nil {
		slog.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}
	verifier := auth.NewCredentialVerifier(cfg.TOTPSecret)

	// Initialize data stores.
	configStore := store.NewSiteConfigStore(db)
	projectStore := store.NewProjectStore(db)
	messageStore := store.NewMessageStore(db)
	analyticsStore := store.NewAnalyticsStore(db)

	// Pick the rate limiter backing: Redis when configured, otherwise the
	// inbox itself (the most recent matching message is the throttle record).
	var limiter ratelimit.Limiter = ratelimit.NewInboxLimiter(messageStore, ratelimit.DefaultWindow)
	if cfg.RedisEnabled() {
		redisClient, err := ratelimit.ConnectRedis(cfg.RedisAddr(), cfg.RedisPassword)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, ratelimit.DefaultWindow)
		slog.Info("rate limiter backed by redis")
	} else {
		slog.Info("rate limiter backed by message inbox")
	}

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(verifier, tokens)
	configHandlers := handlers.NewConfig(configStore)
	projectHandlers := handlers.NewProjects(projectStore)
	messageHandlers := handlers.NewMessages(messageStore, limiter)
	analyticsHandlers := handlers.NewAnalytics(analyticsStore, messageStore, projectStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(tokens, authHandlers, configHandlers, projectHandlers, messageHandlers, analyticsHandlers, cfg.AllowedOrigins)

	// Create the HTTP server with sensible timeouts. All handlers are
	// short-lived request/response round trips.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newTokenService builds the session token service. With no key configured
// a random one is generated, so previously issued tokens die with the
// process. Production requires an explicit key at config load time.
func newTokenService(cfg *config.Config) (*auth.TokenService, error) {
	key := cfg.SessionKey
	if key == "" {
		key = randomKeyHex()
	}
	return auth.NewTokenService(key, auth.SessionTTL)
}

func randomKeyHex() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
