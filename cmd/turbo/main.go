package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/config"
	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/handler"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/cache"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/integrations"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/supabase"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("profile_cache_ttl", cfg.ProfileCacheTTL),
		zap.Duration("insights_cache_ttl", cfg.InsightsCacheTTL),
		zap.Duration("watch_interval", cfg.WatchInterval),
		zap.Bool("dev_auth", cfg.DevAuth),
	)

	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		logger.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}

	// --- Tracing ---
	shutdownTracer, err := observability.InitTracer(cfg.OTLPEndpoint, "turbo-ops")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdownTracer(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	profileCache := cache.New[*domain.Profile](cfg.ProfileCacheTTL)
	insightsCache := cache.New[service.CachedInsights](cfg.InsightsCacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("supabase")

	// --- Supabase ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	supabaseClient := supabase.NewClient(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.SupabaseServiceKey,
		cb,
		resilienceCfg,
		logger,
	)

	// --- Provider fetchers ---
	metaFetcher := integrations.NewMetaFetcher(httpClient, supabaseClient, resilienceCfg, logger, metrics)
	clickupFetcher := integrations.NewClickUpFetcher(httpClient, supabaseClient, resilienceCfg, logger, metrics)
	notionFetcher := integrations.NewNotionFetcher(httpClient, supabaseClient, resilienceCfg, logger, metrics)
	driveFetcher := integrations.NewDriveFetcher(httpClient, supabaseClient, resilienceCfg, logger, metrics)

	// --- Services ---
	sessionWatcher := service.NewSessionWatcher(profileCache, logger)
	defer sessionWatcher.Close()

	sessionSvc := service.NewSessionService(
		supabaseClient,
		supabaseClient,
		supabaseClient,
		profileCache,
		cfg.SupabaseJWTSecret,
		cfg.DevAuth,
		logger,
		metrics,
		sessionWatcher,
	)
	credentialSvc := service.NewCredentialService(supabaseClient, logger)
	integrationSvc := service.NewIntegrationService(
		metaFetcher,
		clickupFetcher,
		notionFetcher,
		driveFetcher,
		insightsCache,
		logger,
		metrics,
	)
	workspaceSvc := service.NewWorkspaceService(supabaseClient, supabaseClient, logger)
	dashboardSvc := service.NewDashboardService(supabaseClient, integrationSvc, logger)

	// --- Task board change feed ---
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	taskWatcher := service.NewTaskWatcher(supabaseClient, cfg.WatchInterval, logger, metrics)
	taskWatcher.Start(watchCtx)
	defer taskWatcher.Close()

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		Sessions:       sessionSvc,
		Workspace:      workspaceSvc,
		Integrations:   integrationSvc,
		Credentials:    credentialSvc,
		Dashboard:      dashboardSvc,
		Watcher:        taskWatcher,
		Pinger:         supabaseClient,
		Metrics:        metrics,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: /v1/tasks/events holds SSE streams open.
		IdleTimeout: 60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
