package jobs

import (
	"context"
	"log/slog"
	"time"

	"unifest/internal/messaging"
	"unifest/internal/models"
	"unifest/internal/repository"
)

// RegistrationExpirationJob cancels pending unpaid registrations once the
// event's registration deadline has passed, releasing their capacity slots.
type RegistrationExpirationJob struct {
	regRepo    *repository.RegistrationRepository
	natsClient *messaging.NATSClient
	ticker     *time.Ticker
	done       chan bool
}

func NewRegistrationExpirationJob(regRepo *repository.RegistrationRepository, natsClient *messaging.NATSClient) *RegistrationExpirationJob {
	return &RegistrationExpirationJob{
		regRepo:    regRepo,
		natsClient: natsClient,
		done:       make(chan bool),
	}
}

// Start begins the background job that checks for expired registrations
// every 30 seconds.
func (j *RegistrationExpirationJob) Start(ctx context.Context) {
	slog.Info("Starting registration expiration job", "check_interval", "30s")

	j.ticker = time.NewTicker(30 * time.Second)

	go j.checkExpiredRegistrations(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.checkExpiredRegistrations(ctx)
			case <-j.done:
				slog.Info("Registration expiration job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job
func (j *RegistrationExpirationJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *RegistrationExpirationJob) checkExpiredRegistrations(ctx context.Context) {
	expired, err := j.regRepo.GetExpired(ctx, time.Now())
	if err != nil {
		slog.Error("Failed to get expired registrations", "error", err)
		return
	}

	if len(expired) == 0 {
		slog.Debug("No expired registrations found")
		return
	}

	slog.Info("Found expired registrations to process", "count", len(expired))

	for _, reg := range expired {
		if err := j.expireRegistration(ctx, &reg); err != nil {
			slog.Error("Failed to expire registration",
				"error", err,
				"registration_id", reg.ID,
				"event_id", reg.EventID)
		} else {
			slog.Info("Expired registration",
				"registration_id", reg.ID,
				"event_id", reg.EventID)
		}
	}
}

func (j *RegistrationExpirationJob) expireRegistration(ctx context.Context, reg *models.Registration) error {
	// Cancel releases capacity and invalidates any issued ticket
	if err := j.regRepo.Cancel(ctx, reg.ID); err != nil {
		return err
	}

	event := models.RegistrationExpiredEvent{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		UserID:         reg.UserID,
		Reason:         "Registration deadline passed without payment",
		Timestamp:      time.Now(),
	}

	if err := j.natsClient.Publish(models.EventRegistrationExpired, event); err != nil {
		slog.Error("Failed to publish registration expired event",
			"error", err,
			"registration_id", reg.ID)
	}

	return nil
}
