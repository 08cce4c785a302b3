// DealSmart Concierge - dealership lead-qualification server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dealsmart/concierge/internal/agent"
	"github.com/dealsmart/concierge/internal/api"
	"github.com/dealsmart/concierge/internal/config"
	"github.com/dealsmart/concierge/internal/crm"
	"github.com/dealsmart/concierge/internal/dealer"
	"github.com/dealsmart/concierge/internal/inventory"
	"github.com/dealsmart/concierge/internal/middleware"
	"github.com/dealsmart/concierge/internal/session"
	"github.com/dealsmart/concierge/internal/voicelog"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "agent_enabled", cfg.AgentEnabled())

	// Initialize dependencies.
	dealers := dealer.NewProvider(cfg.DealerConfigDir)
	inv := inventory.NewStore(cfg.InventoryPath)
	crmFactory := crm.NewFactory(cfg.CRMLogPath)
	cache := agent.NewCache(inv, crmFactory)

	store, err := session.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close session store", "error", closeErr)
		}
	}()
	slog.Info("Session store ready", "path", cfg.DBPath)

	// Reasoning service (optional). When unconfigured, every turn runs on
	// the fallback dialogue policy.
	var runner agent.Runner
	if cfg.AgentEnabled() {
		geminiRunner, err := agent.NewGeminiRunner(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AgentTimeout)
		if err != nil {
			slog.Warn("Failed to create reasoning client, AI features disabled", "error", err)
		} else {
			runner = geminiRunner
			slog.Info("Reasoning client ready", "model", cfg.GeminiModel)
		}
	} else {
		slog.Info("AI features disabled (GEMINI_API_KEY not set)")
	}

	orchestrator := agent.NewOrchestrator(dealers, cache, runner, store)

	voiceLog, err := voicelog.New(voicelog.Config{
		Enabled:   cfg.VoiceLog.Enabled,
		Path:      cfg.VoiceLog.Path,
		QueueSize: cfg.VoiceLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize voice log", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := voiceLog.Close(); closeErr != nil {
			slog.Error("Failed to close voice log", "error", closeErr)
		}
	}()

	handler := api.NewHandler(cfg, dealers, orchestrator, cache, crmFactory, inv, voiceLog, runner != nil)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	handler.RegisterHealth(r)
	handler.RegisterChat(r)
	handler.RegisterCRM(r)
	handler.RegisterTools(r)
	r.Get("/ws/chat", handler.ChatSocket)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
