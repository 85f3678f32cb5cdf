package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/novaos-app/novaos-api/internal/config"
	"github.com/novaos-app/novaos-api/internal/logger"
	"github.com/novaos-app/novaos-api/internal/queue"
	"github.com/novaos-app/novaos-api/internal/services/mail"
	"github.com/novaos-app/novaos-api/internal/workers"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.WorkerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	if cfg.ResendAPIKey == "" {
		zapLogger.Fatal("resend_api_key_not_configured")
	}
	if cfg.FeedbackTo == "" {
		zapLogger.Fatal("feedback_recipient_not_configured")
	}

	zapLogger.Info("starting_worker",
		zap.Bool("debug_mode", debugMode),
		zap.Int("prefetch", cfg.RabbitMQPrefetch),
	)

	jobQueue := connectQueue(cfg.RabbitMQURL, zapLogger)
	defer func() {
		if err := jobQueue.Close(); err != nil {
			zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
		}
	}()

	sender := mail.NewResendClient(cfg.ResendAPIKey)
	mailer := workers.NewFeedbackMailer(sender, cfg.FeedbackFrom, cfg.FeedbackTo, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stop consuming on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		zapLogger.Info("worker_shutting_down")
		cancel()
	}()

	if err := mailer.Run(ctx, jobQueue, cfg.RabbitMQPrefetch); err != nil && err != context.Canceled {
		zapLogger.Fatal("worker_stopped_with_error", zap.Error(err))
	}

	zapLogger.Info("worker_exited")
}

// connectQueue connects to RabbitMQ with exponential backoff
func connectQueue(amqpURL string, zapLogger *zap.Logger) queue.JobQueue {
	const maxRetries = 10
	const initialDelay = 2 * time.Second

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		jobQueue, err := queue.NewRabbitMQQueue(amqpURL)
		if err == nil {
			zapLogger.Info("connected_to_rabbitmq")
			return jobQueue
		}

		lastErr = err
		delay := initialDelay * time.Duration(1<<uint(attempt))
		if delay > 30*time.Second {
			delay = 30 * time.Second
		}
		zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
			zap.Duration("retry_delay", delay),
		)
		time.Sleep(delay)
	}

	zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries",
		zap.Int("max_retries", maxRetries),
		zap.Error(lastErr),
	)
	return nil
}
