package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/prismatek/prismatek-ai-backend/internal/api/router"
	"github.com/prismatek/prismatek-ai-backend/internal/chat"
	appconfig "github.com/prismatek/prismatek-ai-backend/internal/config"
	"github.com/prismatek/prismatek-ai-backend/internal/leads"
	"github.com/prismatek/prismatek-ai-backend/internal/notify"
	"github.com/prismatek/prismatek-ai-backend/internal/observability/metrics"
	"github.com/prismatek/prismatek-ai-backend/internal/search"
	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

func main() {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting prismatek-ai-backend API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Metrics
	registry := prometheus.NewRegistry()
	leadMetrics := metrics.NewLeadMetrics(registry)
	chatMetrics := metrics.NewChatMetrics(registry)

	// Lead storage and intake
	leadsRepo := leads.NewFileRepository(cfg.LeadsFile, logger)

	var notifier leads.Notifier
	sender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
	if sender != nil {
		if alerter := notify.NewLeadAlerter(sender, cfg.LeadAlertEmail, logger); alerter != nil {
			notifier = alerter
		}
	}

	// Search provider is optional; chat degrades gracefully without it.
	var searcher chat.Searcher
	if cfg.SearchConfigured() {
		client, err := search.NewClient(search.Config{
			Endpoint: cfg.SearchEndpoint,
			APIKey:   cfg.SearchAPIKey,
			Index:    cfg.SearchIndex,
		})
		if err != nil {
			logger.Error("failed to configure search client", "error", err)
			os.Exit(1)
		}
		searcher = client
	} else {
		logger.Info("search provider not configured, chat runs unaugmented")
	}

	// Completion provider
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("completion provider API key missing, chat requests will fail upstream")
	}
	var completionClient *openai.Client
	if cfg.OpenAIEndpoint != "" {
		completionClient = openai.NewClientWithConfig(openai.DefaultAzureConfig(cfg.OpenAIAPIKey, cfg.OpenAIEndpoint))
	} else {
		completionClient = openai.NewClient(cfg.OpenAIAPIKey)
	}
	temperature := float32(cfg.ChatTemperature)
	relay := chat.NewRelay(completionClient, searcher, chat.Options{
		Model:       cfg.OpenAIDeployment,
		MaxTokens:   cfg.ChatMaxTokens,
		Temperature: &temperature,
	}, chatMetrics, logger)

	// Handlers
	leadsHandler := leads.NewHandler(leadsRepo, notifier, leadMetrics, logger)
	statsHandler := leads.NewStatsHandler(leadsRepo, logger)
	chatHandler := chat.NewHandler(relay, chatMetrics, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		StatsHandler:       statsHandler,
		ChatHandler:        chatHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
