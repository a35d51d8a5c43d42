package consumers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"unifest/internal/messaging"
	"unifest/internal/models"
	"unifest/internal/repository"
	"unifest/internal/ticketing"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	repos *repository.Repositories
	nats  *messaging.NATSClient
}

func NewHandlers(repos *repository.Repositories, nats *messaging.NATSClient) *Handlers {
	return &Handlers{
		repos: repos,
		nats:  nats,
	}
}

func (h *Handlers) HandleRegistrationCreated(m *stan.Msg) {
	var event models.RegistrationCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal registration created event", "error", err)
		return
	}

	slog.Info("Processing registration created event",
		"registration_id", event.RegistrationID,
		"event_id", event.EventID)

	ctx := context.Background()

	h.notify(ctx, event.UserID, "Registration received",
		"Your registration has been recorded.",
		"registration", &event.EventID, &event.RegistrationID, event.TeamID)

	// Free registrations never see the payment flow, so the ticket is issued
	// directly off this event.
	if event.Amount == 0 {
		if err := h.issueTicket(ctx, event.RegistrationID); err != nil {
			slog.Error("Failed to issue ticket for free registration",
				"registration_id", event.RegistrationID, "error", err)
			return
		}
	}

	m.Ack()
}

func (h *Handlers) HandleRegistrationCancelled(m *stan.Msg) {
	var event models.RegistrationCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal registration cancelled event", "error", err)
		return
	}

	slog.Info("Processing registration cancelled event",
		"registration_id", event.RegistrationID,
		"reason", event.Reason)

	ctx := context.Background()

	reg, err := h.repos.Registrations.GetByID(ctx, event.RegistrationID)
	if err != nil || reg == nil {
		slog.Error("Failed to get cancelled registration",
			"registration_id", event.RegistrationID, "error", err)
		return
	}

	h.notify(ctx, reg.UserID, "Registration cancelled",
		"Your registration has been cancelled. Any issued ticket is no longer valid.",
		"cancellation", &event.EventID, &event.RegistrationID, nil)

	m.Ack()
}

func (h *Handlers) HandleRegistrationExpired(m *stan.Msg) {
	var event models.RegistrationExpiredEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal registration expired event", "error", err)
		return
	}

	slog.Info("Processing registration expired event",
		"registration_id", event.RegistrationID)

	ctx := context.Background()

	h.notify(ctx, event.UserID, "Registration expired",
		"Your registration expired because payment was not completed before the deadline.",
		"expiration", &event.EventID, &event.RegistrationID, nil)

	m.Ack()
}

// HandlePaymentCompleted issues the ticket if the API's inline issuance did
// not get there first; issuance is idempotent so double delivery is harmless.
func (h *Handlers) HandlePaymentCompleted(m *stan.Msg) {
	var event models.PaymentCompletedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment completed event", "error", err)
		return
	}

	slog.Info("Processing payment completed event",
		"registration_id", event.RegistrationID,
		"payment_id", event.PaymentID)

	ctx := context.Background()

	if err := h.issueTicket(ctx, event.RegistrationID); err != nil {
		slog.Error("Failed to issue ticket",
			"registration_id", event.RegistrationID, "error", err)
		return
	}

	reg, err := h.repos.Registrations.GetByID(ctx, event.RegistrationID)
	if err == nil && reg != nil {
		h.notify(ctx, reg.UserID, "Payment confirmed",
			"Your payment was received. Your ticket is ready.",
			"payment", &reg.EventID, &event.RegistrationID, nil)
	}

	m.Ack()
}

func (h *Handlers) HandlePaymentFailed(m *stan.Msg) {
	var event models.PaymentFailedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment failed event", "error", err)
		return
	}

	slog.Info("Processing payment failed event",
		"registration_id", event.RegistrationID,
		"reason", event.Reason)

	ctx := context.Background()

	reg, err := h.repos.Registrations.GetByID(ctx, event.RegistrationID)
	if err == nil && reg != nil {
		h.notify(ctx, reg.UserID, "Payment failed",
			"Your payment did not go through. You can retry from your registrations page.",
			"payment", &reg.EventID, &event.RegistrationID, nil)
	}

	m.Ack()
}

func (h *Handlers) HandleTicketIssued(m *stan.Msg) {
	var event models.TicketIssuedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal ticket issued event", "error", err)
		return
	}

	slog.Info("Processing ticket issued event",
		"ticket_code", event.TicketCode,
		"registration_id", event.RegistrationID)

	ctx := context.Background()

	reg, err := h.repos.Registrations.GetByID(ctx, event.RegistrationID)
	if err == nil && reg != nil {
		h.notify(ctx, reg.UserID, "Ticket issued",
			"Your ticket "+event.TicketCode+" has been issued. Show its QR code at the venue.",
			"ticket", &event.EventID, &event.RegistrationID, nil)
	}

	m.Ack()
}

// issueTicket mirrors the API's issuance path so the consumers can complete
// it after a crash or a lost inline attempt.
func (h *Handlers) issueTicket(ctx context.Context, registrationID string) error {
	reg, err := h.repos.Registrations.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg == nil || reg.PaymentStatus != models.PaymentCompleted {
		return nil
	}
	if reg.RegistrationStatus == models.RegistrationCancelled {
		return nil
	}

	existing, err := h.repos.Tickets.GetByRegistration(ctx, registrationID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	ticketType := models.TicketTypePaid
	if reg.PaymentAmount == 0 {
		ticketType = models.TicketTypeFree
	}

	ticket := &models.Ticket{
		EventID:        reg.EventID,
		RegistrationID: &reg.ID,
		TicketType:     ticketType,
		Price:          reg.PaymentAmount,
		TicketCode:     ticketing.Code(reg.ID, reg.EventID),
	}
	if err := h.repos.Tickets.Issue(ctx, ticket); err != nil {
		return err
	}

	issued := models.TicketIssuedEvent{
		TicketID:       ticket.ID,
		TicketCode:     ticket.TicketCode,
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		Timestamp:      time.Now(),
	}
	if err := h.nats.Publish(models.EventTicketIssued, issued); err != nil {
		slog.Error("Failed to publish ticket issued event",
			"ticket_code", ticket.TicketCode, "error", err)
	}

	return nil
}

func (h *Handlers) notify(ctx context.Context, userID, title, message, notifType string, eventID, registrationID, teamID *string) {
	n := &models.Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		NotificationType: notifType,
		EventID:          eventID,
		RegistrationID:   registrationID,
		TeamID:           teamID,
	}
	if err := h.repos.Notifications.Create(ctx, n); err != nil {
		slog.Error("Failed to write notification",
			"user_id", userID, "type", notifType, "error", err)
	}
}
