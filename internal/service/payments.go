package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "unifest/internal/errors"
	"unifest/internal/external"
	"unifest/internal/logger"
	"unifest/internal/messaging"
	"unifest/internal/models"
	"unifest/internal/repository"
)

type PaymentService struct {
	paymentRepo   *repository.PaymentRepository
	regRepo       *repository.RegistrationRepository
	ticketService *TicketService
	paymentClient *external.PaymentClient
	natsClient    *messaging.NATSClient
}

func NewPaymentService(paymentRepo *repository.PaymentRepository, regRepo *repository.RegistrationRepository, ticketService *TicketService, paymentClient *external.PaymentClient, natsClient *messaging.NATSClient) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		regRepo:       regRepo,
		ticketService: ticketService,
		paymentClient: paymentClient,
		natsClient:    natsClient,
	}
}

// HandleNotification processes a gateway webhook. On success the registration
// is confirmed and the ticket issued inline; the published events let the
// consumers write notifications.
func (s *PaymentService) HandleNotification(ctx context.Context, notification *models.PaymentNotificationPayload) error {
	logger.WithContext(ctx).Info("Received payment notification",
		"payment_id", notification.PaymentID,
		"status", notification.Status)

	reg, err := s.regRepo.GetByTransactionID(ctx, notification.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to look up registration: %w", err)
	}
	if reg == nil {
		return apperrors.ErrRegistrationNotFound
	}

	switch strings.ToLower(notification.Status) {
	case "completed", "confirmed", "success":
		return s.complete(ctx, reg, notification.PaymentID)
	case "failed", "rejected", "cancelled":
		return s.fail(ctx, reg, notification.PaymentID, notification.Status)
	default:
		logger.WithContext(ctx).Info("Ignoring payment notification with unknown status",
			"payment_id", notification.PaymentID,
			"status", notification.Status)
		return nil
	}
}

func (s *PaymentService) complete(ctx context.Context, reg *models.Registration, paymentID string) error {
	if err := s.regRepo.UpdatePaymentStatus(ctx, reg.ID, models.PaymentCompleted, paymentID); err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}

	payment, err := s.paymentRepo.GetByTransactionID(ctx, paymentID)
	if err == nil && payment != nil {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, models.PaymentCompleted); err != nil {
			logger.WithContext(ctx).Error("Failed to update payment record",
				"error", err,
				"payment_id", paymentID)
		}
	}

	ticket, err := s.ticketService.IssueForRegistration(ctx, reg.ID)
	if err != nil {
		// The completed payment is recorded; the consumers retry issuance
		// off the published event.
		logger.WithContext(ctx).Error("Failed to issue ticket after payment",
			"error", err,
			"registration_id", reg.ID)
	} else if payment != nil {
		if err := s.paymentRepo.LinkTicket(ctx, payment.ID, ticket.ID); err != nil {
			logger.WithContext(ctx).Error("Failed to link ticket to payment",
				"error", err,
				"payment_id", payment.ID)
		}
	}

	event := models.PaymentCompletedEvent{
		RegistrationID: reg.ID,
		PaymentID:      paymentID,
		Amount:         reg.PaymentAmount,
		Timestamp:      time.Now(),
	}
	if err := s.natsClient.Publish(models.EventPaymentCompleted, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment completed event",
			"error", err,
			"payment_id", paymentID)
	}

	return nil
}

func (s *PaymentService) fail(ctx context.Context, reg *models.Registration, paymentID, reason string) error {
	if err := s.regRepo.UpdatePaymentStatus(ctx, reg.ID, models.PaymentFailed, paymentID); err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}

	payment, err := s.paymentRepo.GetByTransactionID(ctx, paymentID)
	if err == nil && payment != nil {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, models.PaymentFailed); err != nil {
			logger.WithContext(ctx).Error("Failed to update payment record",
				"error", err,
				"payment_id", paymentID)
		}
	}

	event := models.PaymentFailedEvent{
		RegistrationID: reg.ID,
		PaymentID:      paymentID,
		Reason:         reason,
		Timestamp:      time.Now(),
	}
	if err := s.natsClient.Publish(models.EventPaymentFailed, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment failed event",
			"error", err,
			"payment_id", paymentID)
	}

	return nil
}

// ConfirmFromRedirect handles the browser returning from the gateway success
// page. The redirect is advisory; the gateway is queried for the real status
// before anything changes.
func (s *PaymentService) ConfirmFromRedirect(ctx context.Context, paymentID string) error {
	if s.paymentClient == nil {
		return fmt.Errorf("payment gateway is not configured")
	}

	check, err := s.paymentClient.CheckPayment(paymentID)
	if err != nil {
		return fmt.Errorf("failed to check payment: %w", err)
	}
	if !check.Success || len(check.Payments) == 0 {
		return fmt.Errorf("payment %s not found at gateway", paymentID)
	}

	notification := &models.PaymentNotificationPayload{
		PaymentID: paymentID,
		Status:    check.Payments[0].Status,
	}
	return s.HandleNotification(ctx, notification)
}
