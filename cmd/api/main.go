package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/presq/leadcapture/cmd/mainconfig"
	"github.com/presq/leadcapture/internal/api/router"
	"github.com/presq/leadcapture/internal/app/bootstrap"
	appconfig "github.com/presq/leadcapture/internal/config"
	"github.com/presq/leadcapture/internal/events"
	"github.com/presq/leadcapture/internal/http/handlers"
	"github.com/presq/leadcapture/internal/notify"
	"github.com/presq/leadcapture/internal/observability/metrics"
	"github.com/presq/leadcapture/internal/store"
	"github.com/presq/leadcapture/internal/submissions"
	"github.com/presq/leadcapture/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadcapture API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	metricsHandler, pipelineMetrics := setupMetrics()

	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	gateway := store.NewGateway(dynamoClient, cfg.SubmissionsTable, cfg.CompanyID, logger)

	var publisher handlers.EventPublisher
	if cfg.NotifyQueueURL != "" {
		queue := events.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.NotifyQueueURL)
		publisher = events.NewPublisher(queue, logger)
	} else {
		logger.Warn("NOTIFY_QUEUE_URL not set; contact submissions will be rejected as unconfigured")
	}

	redisClient := bootstrap.BuildRedisClient(context.Background(), cfg, logger, true)
	sessionStore := bootstrap.BuildSessionStore(redisClient, cfg)
	if sessionStore == nil {
		logger.Warn("visitor sessions disabled (redis not configured)")
	}

	rules, err := submissions.RuleSetByName(cfg.ValidationRuleSet)
	if err != nil {
		logger.Error("invalid validation rule set", "error", err)
		os.Exit(1)
	}
	builder := submissions.NewBuilder(cfg.CompanyID, rules)

	emailSender, provider := bootstrap.BuildEmailSender(cfg, awsCfg, logger)
	notifier := notify.NewService(emailSender, gateway, bootstrap.BuildIdentity(cfg), provider, logger, pipelineMetrics)

	var contactSessions handlers.SessionProvider
	if sessionStore != nil {
		contactSessions = sessionStore
	}
	contact := handlers.NewContactHandler(builder, gateway, publisher, contactSessions, logger, pipelineMetrics)
	health := handlers.NewHealthHandler(notifier, logger)
	resend := handlers.NewAdminResendHandler(notifier, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		Contact:            contact,
		AdminResend:        resend,
		Health:             health,
		MetricsHandler:     metricsHandler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSec:    cfg.RateLimitPerSecond,
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

func setupMetrics() (http.Handler, *metrics.PipelineMetrics) {
	registry := prometheus.NewRegistry()
	m := metrics.NewPipelineMetrics(registry)
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return handler, m
}
