package service

import (
	"context"
	"fmt"
	"time"

	apperrors "unifest/internal/errors"
	"unifest/internal/external"
	"unifest/internal/logger"
	"unifest/internal/messaging"
	"unifest/internal/middleware"
	"unifest/internal/models"
	"unifest/internal/pricing"
	"unifest/internal/repository"
	"unifest/internal/teams"

	"github.com/google/uuid"
)

// TeamValidationError carries the full ordered violation list so the API can
// return every problem in one response.
type TeamValidationError struct {
	Result teams.ValidationResult
}

func (e *TeamValidationError) Error() string {
	return fmt.Sprintf("team data validation failed: %d error(s)", len(e.Result.Errors))
}

type RegistrationService struct {
	regRepo       *repository.RegistrationRepository
	eventRepo     *repository.EventRepository
	teamRepo      *repository.TeamRepository
	tierRepo      *repository.TierRepository
	paymentRepo   *repository.PaymentRepository
	paymentClient *external.PaymentClient
	natsClient    *messaging.NATSClient
}

func NewRegistrationService(regRepo *repository.RegistrationRepository, eventRepo *repository.EventRepository, teamRepo *repository.TeamRepository, tierRepo *repository.TierRepository, paymentRepo *repository.PaymentRepository, paymentClient *external.PaymentClient, natsClient *messaging.NATSClient) *RegistrationService {
	return &RegistrationService{
		regRepo:       regRepo,
		eventRepo:     eventRepo,
		teamRepo:      teamRepo,
		tierRepo:      tierRepo,
		paymentRepo:   paymentRepo,
		paymentClient: paymentClient,
		natsClient:    natsClient,
	}
}

// Create registers the calling user for an event. Team data is validated
// before anything is written; the registration transaction recomputes the
// price authoritatively and enforces capacity. The team rows are written in
// a second transaction after the registration commits, so a team failure
// leaves a committed registration behind and is surfaced as a
// TeamPersistenceError rather than silently rolled back.
func (s *RegistrationService) Create(ctx context.Context, req *models.CreateRegistrationRequest) (*models.CreateRegistrationResponse, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}

	isTeam := req.IsTeam.Bool()
	teamSize := req.TeamSize
	if !isTeam {
		teamSize = 1
	} else if teamSize == 0 && req.Team != nil {
		teamSize = len(req.Team.Members) + 1
	}

	if isTeam {
		if req.Team == nil {
			return nil, fmt.Errorf("team registration requires team data")
		}
		result := teams.ValidateTeamData(*req.Team, teamSize)
		if !result.Valid {
			return nil, &TeamValidationError{Result: result}
		}
	}

	reg := &models.Registration{
		EventID:            req.EventID,
		UserID:             userID,
		RegistrationStatus: models.RegistrationPending,
		IsTeam:             isTeam,
		TeamSize:           teamSize,
		PaymentStatus:      models.PaymentPending,
		PaymentMethod:      req.PaymentMethod,
	}

	if isTeam {
		reg.TeamName = &req.Team.TeamName
		reg.TeamLeaderName = &req.Team.TeamLeaderName
		reg.TeamLeaderPhone = &req.Team.TeamLeaderPhone
		reg.TeamLeaderEmail = &req.Team.TeamLeaderEmail
		reg.TeamLeaderUniversityReg = &req.Team.TeamLeaderUniversityReg
	}

	if err := s.regRepo.Create(ctx, reg); err != nil {
		return nil, err
	}
	middleware.CountRegistrationCreated()

	var teamID *string
	if isTeam {
		id, err := s.teamRepo.CreateTeamWithMembers(ctx, reg.ID, reg.EventID, &userID, req.Team)
		if err != nil {
			// The registration is committed; report the partial state instead
			// of pretending nothing happened.
			logger.WithContext(ctx).Error("Team persistence failed after registration commit",
				"error", err,
				"registration_id", reg.ID)
			return nil, err
		}
		teamID = &id
	}

	resp := &models.CreateRegistrationResponse{
		ID:            reg.ID,
		TeamID:        teamID,
		PaymentAmount: reg.PaymentAmount,
		PaymentStatus: reg.PaymentStatus,
	}

	if reg.PaymentAmount > 0 && s.paymentClient != nil {
		paymentURL, err := s.initiatePayment(ctx, reg)
		if err != nil {
			logger.WithContext(ctx).Error("Failed to initiate payment",
				"error", err,
				"registration_id", reg.ID)
		} else {
			resp.PaymentStatus = models.PaymentProcessing
			resp.PaymentURL = paymentURL
		}
	}

	s.publishCreated(ctx, reg, teamID)

	return resp, nil
}

func (s *RegistrationService) initiatePayment(ctx context.Context, reg *models.Registration) (string, error) {
	orderID := uuid.New().String()

	paymentResp, err := s.paymentClient.InitPayment(reg.PaymentAmount, orderID, "INR", "Event registration")
	if err != nil {
		return "", fmt.Errorf("failed to initialize payment: %w", err)
	}

	payment := &models.Payment{
		RegistrationID: reg.ID,
		Amount:         reg.PaymentAmount,
		PaymentStatus:  models.PaymentProcessing,
		PaymentMethod:  reg.PaymentMethod,
		TransactionID:  &paymentResp.PaymentID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return "", fmt.Errorf("failed to record payment: %w", err)
	}

	if err := s.regRepo.UpdatePaymentStatus(ctx, reg.ID, models.PaymentProcessing, paymentResp.PaymentID); err != nil {
		return "", fmt.Errorf("failed to update registration payment status: %w", err)
	}

	event := models.PaymentInitiatedEvent{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		Amount:         reg.PaymentAmount,
		PaymentID:      paymentResp.PaymentID,
		Timestamp:      time.Now(),
	}
	if err := s.natsClient.Publish(models.EventPaymentInitiated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment initiated event",
			"error", err,
			"registration_id", reg.ID)
	}

	return paymentResp.PaymentURL, nil
}

func (s *RegistrationService) publishCreated(ctx context.Context, reg *models.Registration, teamID *string) {
	event := models.RegistrationCreatedEvent{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		UserID:         reg.UserID,
		IsTeam:         reg.IsTeam,
		TeamID:         teamID,
		Amount:         reg.PaymentAmount,
		Timestamp:      time.Now(),
	}
	if err := s.natsClient.Publish(models.EventRegistrationCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish registration created event",
			"error", err,
			"registration_id", reg.ID)
	}
}

// Quote computes the advisory amount for a registration form. The same
// resolution runs again inside the registration transaction, which is the
// authoritative result.
func (s *RegistrationService) Quote(ctx context.Context, req *models.PriceQuoteRequest) (*models.PriceQuoteResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	isTeam := req.IsTeam.Bool()
	teamSize := req.TeamSize
	if !isTeam {
		teamSize = 1
	}

	var tiers []models.TeamPricingTier
	if isTeam && event.HasCustomTeamPricing {
		tiers, err = s.tierRepo.GetByEvent(ctx, event.ID)
		if err != nil {
			return nil, err
		}
	}

	amount, err := pricing.Resolve(event, tiers, isTeam, teamSize)
	if err != nil {
		return nil, err
	}

	return &models.PriceQuoteResponse{
		EventID:  event.ID,
		IsTeam:   isTeam,
		TeamSize: teamSize,
		Amount:   amount,
	}, nil
}

func (s *RegistrationService) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, apperrors.ErrRegistrationNotFound
	}
	return reg, nil
}

func (s *RegistrationService) List(ctx context.Context) ([]models.ListRegistrationsResponseItem, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}

	regs, err := s.regRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}

	result := make([]models.ListRegistrationsResponseItem, len(regs))
	for i, reg := range regs {
		result[i] = models.ListRegistrationsResponseItem{
			ID:                 reg.ID,
			EventID:            reg.EventID,
			RegistrationStatus: reg.RegistrationStatus,
			IsTeam:             reg.IsTeam,
			TeamSize:           reg.TeamSize,
			PaymentStatus:      reg.PaymentStatus,
			PaymentAmount:      reg.PaymentAmount,
			RegistrationDate:   reg.RegistrationDate,
		}
	}

	return result, nil
}

// Cancel releases the registration's capacity slot, invalidates its tickets
// and voids an in-flight gateway payment. Only the owner may cancel.
func (s *RegistrationService) Cancel(ctx context.Context, registrationID string) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return apperrors.ErrUnauthorized
	}

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg == nil {
		return apperrors.ErrRegistrationNotFound
	}
	if reg.UserID != userID {
		return apperrors.ErrForbidden
	}

	if err := s.regRepo.Cancel(ctx, registrationID); err != nil {
		return err
	}

	if reg.TransactionID != nil && reg.PaymentStatus == models.PaymentProcessing && s.paymentClient != nil {
		if err := s.paymentClient.CancelPayment(*reg.TransactionID, "Registration cancelled by user"); err != nil {
			logger.WithContext(ctx).Error("Failed to cancel gateway payment",
				"error", err,
				"transaction_id", *reg.TransactionID)
		}
	}

	event := models.RegistrationCancelledEvent{
		RegistrationID: registrationID,
		EventID:        reg.EventID,
		Reason:         "User cancellation",
		Timestamp:      time.Now(),
	}
	if err := s.natsClient.Publish(models.EventRegistrationCancelled, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish registration cancelled event",
			"error", err,
			"registration_id", registrationID)
	}

	return nil
}
