package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/presq/leadcapture/cmd/mainconfig"
	"github.com/presq/leadcapture/internal/app/bootstrap"
	appconfig "github.com/presq/leadcapture/internal/config"
	"github.com/presq/leadcapture/internal/events"
	"github.com/presq/leadcapture/internal/notify"
	"github.com/presq/leadcapture/internal/store"
	notifyworker "github.com/presq/leadcapture/internal/worker/notify"
	"github.com/presq/leadcapture/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if cfg.NotifyQueueURL == "" {
		logger.Error("NOTIFY_QUEUE_URL is required for the notify worker")
		os.Exit(1)
	}

	awsConfig, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	dynamoClient := dynamodb.NewFromConfig(awsConfig)
	gateway := store.NewGateway(dynamoClient, cfg.SubmissionsTable, cfg.CompanyID, logger)

	sender, provider := bootstrap.BuildEmailSender(cfg, awsConfig, logger)
	identity := bootstrap.BuildIdentity(cfg)
	notifier := notify.NewService(sender, gateway, identity, provider, logger, nil)

	sqsClient := sqs.NewFromConfig(awsConfig)
	queue := events.NewSQSQueue(sqsClient, cfg.NotifyQueueURL)

	worker := notifyworker.New(queue, notifier, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	logger.Info("notify worker started", "queue", cfg.NotifyQueueURL, "email_provider", provider)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down notify worker...")
	cancel()
	<-done
	logger.Info("notify worker stopped")
}
