package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/careroute/referral-agent/internal/adapters/referencedata"
	"github.com/careroute/referral-agent/internal/api/handlers"
	"github.com/careroute/referral-agent/internal/api/routes"
	"github.com/careroute/referral-agent/internal/application/services"
	"github.com/careroute/referral-agent/internal/domain/providers"
	"github.com/careroute/referral-agent/internal/infrastructure/documents"
	"github.com/careroute/referral-agent/internal/infrastructure/notifications"
	"github.com/careroute/referral-agent/internal/infrastructure/observability"
	"github.com/careroute/referral-agent/pkg/config"
)

const serviceVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger("referral-agent", cfg.Log.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reference data and infrastructure adapters
	refData := referencedata.NewMemoryAdapter()
	renderer := documents.NewPDFRenderer()

	var dispatcher providers.NotificationDispatcher
	if cfg.Dispatch.WebhookURL != "" {
		dispatcher, err = notifications.NewWebhookDispatcher(cfg.Dispatch.WebhookURL, cfg.Dispatch.Timeout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize webhook dispatcher")
		}
		log.Info().Str("webhook", cfg.Dispatch.WebhookURL).Msg("Webhook dispatcher initialized")
	} else {
		dispatcher = notifications.NewLogDispatcher()
		log.Warn().Msg("No webhook configured, notifications will be logged only")
	}

	// Pending store with TTL janitor
	store := services.NewPendingStore(cfg.Store.TTL)
	store.StartJanitor(ctx, cfg.Store.SweepInterval)

	// Application services
	referralService := services.NewReferralService(refData, store, renderer, dispatcher, cfg.Dispatch.Recipient)

	// HTTP handlers and routes
	referralHandler := handlers.NewReferralHandler(referralService)
	systemHandler := handlers.NewSystemHandler(refData, serviceVersion)

	router := routes.NewRouter(referralHandler, systemHandler)
	handler := router.SetupRoutes()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("address", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}
}
