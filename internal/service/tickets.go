package service

import (
	"context"
	"fmt"
	"time"

	apperrors "unifest/internal/errors"
	"unifest/internal/logger"
	"unifest/internal/messaging"
	"unifest/internal/middleware"
	"unifest/internal/models"
	"unifest/internal/repository"
	"unifest/internal/ticketing"
)

type TicketService struct {
	ticketRepo *repository.TicketRepository
	regRepo    *repository.RegistrationRepository
	eventRepo  *repository.EventRepository
	userRepo   *repository.UserRepository
	teamRepo   *repository.TeamRepository
	natsClient *messaging.NATSClient
}

func NewTicketService(ticketRepo *repository.TicketRepository, regRepo *repository.RegistrationRepository, eventRepo *repository.EventRepository, userRepo *repository.UserRepository, teamRepo *repository.TeamRepository, natsClient *messaging.NATSClient) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		regRepo:    regRepo,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
		teamRepo:   teamRepo,
		natsClient: natsClient,
	}
}

// IssueForRegistration creates the ticket for a paid (or free) registration.
// The deterministic code plus the unique registration constraint make the
// operation idempotent, so consumers can safely retry it.
func (s *TicketService) IssueForRegistration(ctx context.Context, registrationID string) (*models.Ticket, error) {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, apperrors.ErrRegistrationNotFound
	}
	if reg.PaymentStatus != models.PaymentCompleted {
		return nil, apperrors.ErrTicketNotPaid
	}
	if reg.RegistrationStatus == models.RegistrationCancelled {
		return nil, fmt.Errorf("registration %s is cancelled", registrationID)
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

	if err := s.ticketRepo.Issue(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to issue ticket: %w", err)
	}
	middleware.CountTicketIssued()

	event := models.TicketIssuedEvent{
		TicketID:       ticket.ID,
		TicketCode:     ticket.TicketCode,
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		Timestamp:      time.Now(),
	}
	if err := s.natsClient.Publish(models.EventTicketIssued, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish ticket issued event",
			"error", err,
			"ticket_code", ticket.TicketCode)
	}

	return ticket, nil
}

// Get returns the ticket plus its fully assembled scannable payload.
func (s *TicketService) Get(ctx context.Context, code string) (*models.Ticket, *ticketing.Payload, error) {
	ticket, err := s.ticketRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if ticket == nil {
		return nil, nil, apperrors.ErrTicketNotFound
	}

	payload, err := s.buildPayload(ctx, ticket)
	if err != nil {
		return nil, nil, err
	}

	return ticket, payload, nil
}

func (s *TicketService) buildPayload(ctx context.Context, ticket *models.Ticket) (*ticketing.Payload, error) {
	if ticket.RegistrationID == nil {
		return nil, fmt.Errorf("ticket %s has no registration", ticket.TicketCode)
	}

	reg, err := s.regRepo.GetByID(ctx, *ticket.RegistrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, apperrors.ErrRegistrationNotFound
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	holder, err := s.userRepo.GetByID(ctx, reg.UserID)
	if err != nil {
		return nil, err
	}

	var team *models.Team
	if reg.IsTeam {
		team, err = s.teamRepo.GetByRegistration(ctx, reg.ID)
		if err != nil {
			return nil, err
		}
	}

	payload := ticketing.BuildPayload(reg, event, holder, team)
	return &payload, nil
}

// QR renders the ticket payload as a PNG image of the given pixel size.
func (s *TicketService) QR(ctx context.Context, code string, size int) ([]byte, error) {
	_, payload, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	if size < 64 || size > 1024 {
		size = 256
	}

	return ticketing.EncodePNG(*payload, size)
}

// Verify processes a venue scan. A valid ticket is consumed on the first
// scan and the registration is marked attended; every later scan of the
// same code is rejected.
func (s *TicketService) Verify(ctx context.Context, req *models.VerifyTicketRequest) (*models.VerifyTicketResponse, error) {
	payload, err := ticketing.DecodePayload([]byte(req.Payload))
	if err != nil {
		return &models.VerifyTicketResponse{
			Valid:  false,
			Reason: "Malformed ticket payload",
		}, nil
	}

	code := payload.TicketCode
	if code == "" {
		code = ticketing.Code(payload.RegistrationID, payload.EventID)
	}

	ticket, err := s.ticketRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return &models.VerifyTicketResponse{
			Valid:  false,
			Reason: "Ticket not found",
		}, nil
	}

	// The payload's registration must be the one this ticket was issued for,
	// otherwise a scan could consume one ticket while vouching for another
	// registration.
	if ticket.RegistrationID == nil || *ticket.RegistrationID != payload.RegistrationID {
		return &models.VerifyTicketResponse{
			Valid:      false,
			Reason:     "Ticket does not belong to this registration",
			TicketCode: code,
		}, nil
	}

	reg, err := s.regRepo.GetByID(ctx, payload.RegistrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return &models.VerifyTicketResponse{
			Valid:      false,
			Reason:     "Registration not found",
			TicketCode: code,
		}, nil
	}
	if reg.RegistrationStatus == models.RegistrationCancelled {
		return &models.VerifyTicketResponse{
			Valid:      false,
			Reason:     "Registration is cancelled",
			TicketCode: code,
			EventID:    reg.EventID,
		}, nil
	}
	if reg.PaymentStatus != models.PaymentCompleted {
		return &models.VerifyTicketResponse{
			Valid:      false,
			Reason:     "Payment not completed",
			TicketCode: code,
			EventID:    reg.EventID,
		}, nil
	}

	used, err := s.ticketRepo.MarkUsed(ctx, code)
	if err == apperrors.ErrTicketUsed {
		return &models.VerifyTicketResponse{
			Valid:      false,
			Reason:     "Ticket already used",
			TicketCode: code,
			EventID:    reg.EventID,
			UsedAt:     ticket.UsedAt,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.regRepo.MarkAttended(ctx, reg.ID); err != nil {
		logger.WithContext(ctx).Error("Failed to mark registration attended",
			"error", err,
			"registration_id", reg.ID)
	}

	if scannerID, ok := middleware.UserIDFromContext(ctx); ok {
		logger.WithContext(ctx).Info("Ticket verified",
			"ticket_code", code,
			"scanned_by", scannerID)
	}

	return &models.VerifyTicketResponse{
		Valid:      true,
		TicketCode: code,
		EventID:    reg.EventID,
		UsedAt:     used.UsedAt,
	}, nil
}

// GetByRegistration returns the ticket for a registration, if one exists.
func (s *TicketService) GetByRegistration(ctx context.Context, registrationID string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperrors.ErrTicketNotFound
	}
	return ticket, nil
}
