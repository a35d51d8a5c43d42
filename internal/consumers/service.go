package consumers

import (
	"context"
	"log/slog"

	"unifest/internal/config"
	"unifest/internal/database"
	"unifest/internal/messaging"
	"unifest/internal/repository"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(db)
	handlers := NewHandlers(repos, natsClient)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	_, err := cs.nats.SubscribeQueue("registration.created", "consumers", cs.handlers.HandleRegistrationCreated)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("registration.cancelled", "consumers", cs.handlers.HandleRegistrationCancelled)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("registration.expired", "consumers", cs.handlers.HandleRegistrationExpired)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("payment.completed", "consumers", cs.handlers.HandlePaymentCompleted)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("payment.failed", "consumers", cs.handlers.HandlePaymentFailed)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("ticket.issued", "consumers", cs.handlers.HandleTicketIssued)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

// Repos exposes the repositories for the background jobs that share this
// process.
func (cs *ConsumerService) Repos() *repository.Repositories {
	return cs.repos
}

// NATS exposes the messaging client for the background jobs.
func (cs *ConsumerService) NATS() *messaging.NATSClient {
	return cs.nats
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
