package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unifest/cmd/consumers/jobs"
	"unifest/internal/config"
	"unifest/internal/consumers"
	"unifest/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	log := logger.Get()
	log.Info("Starting consumers service...")

	cfg.NATS.ClientID = "unifest-consumers"

	consumerService, err := consumers.NewConsumerService(cfg)
	if err != nil {
		logger.Fatal("Failed to create consumer service", "error", err)
	}

	if err := consumerService.Start(); err != nil {
		logger.Fatal("Failed to start consumers", "error", err)
	}

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	expirationJob := jobs.NewRegistrationExpirationJob(
		consumerService.Repos().Registrations,
		consumerService.NATS(),
	)
	expirationJob.Start(jobCtx)

	log.Info("Consumers service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down consumers service...")

	expirationJob.Stop()
	cancelJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := consumerService.Shutdown(ctx); err != nil {
		log.Error("Error during shutdown", "error", err)
	}

	log.Info("Consumers service stopped")
}
