package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antares_backend/internal/catalog"
	"antares_backend/internal/chat"
	"antares_backend/internal/email"
	"antares_backend/internal/estimate"
	"antares_backend/internal/estimate/service"
	apphttp "antares_backend/internal/http"
	"antares_backend/internal/http/router"
	"antares_backend/internal/pdf"
	"antares_backend/internal/ratelimit"
	"antares_backend/platform/config"
	"antares_backend/platform/logger"
	"antares_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	if !sender.Enabled() {
		log.Warn("email delivery disabled; estimate submissions will be rejected")
	}

	limiter := ratelimit.New(newRateLimitStore(ctx, cfg, log), log)

	// Shared validator instance for dependency injection
	val := validator.New()

	var messager chat.AnthropicMessager
	if cfg.IsAIEnabled() {
		messager = chat.NewMessager(cfg.AnthropicAPIKey)
		log.Info("conversation service initialized", "chatModel", cfg.ChatModel, "suggestModel", cfg.SuggestModel)
	} else {
		log.Warn("ANTHROPIC_API_KEY not configured; chat endpoints degraded")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	estimateService := service.New(val, pdf.NewGenerator(), sender, cfg, log)
	chatService := chat.New(messager, cfg, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Limiter: limiter,
		Modules: []apphttp.Module{
			catalog.NewModule(),
			estimate.NewModule(estimateService),
			chat.NewModule(chatService),
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// newRateLimitStore prefers Redis so counters survive restarts and shared
// deployments; without REDIS_URL it falls back to process memory.
func newRateLimitStore(ctx context.Context, cfg config.RateLimitConfig, log *logger.Logger) ratelimit.Store {
	if cfg.GetRedisURL() == "" {
		log.Info("rate limiter using in-memory counters")
		return ratelimit.NewMemoryStore()
	}

	store, err := ratelimit.NewRedisStore(ctx, cfg.GetRedisURL())
	if err != nil {
		log.Warn("redis unavailable, rate limiter using in-memory counters", "error", err)
		return ratelimit.NewMemoryStore()
	}
	log.Info("rate limiter using redis counters")
	return store
}
