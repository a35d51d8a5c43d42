package service

import (
	"context"
	"fmt"

	apperrors "unifest/internal/errors"
	"unifest/internal/logger"
	"unifest/internal/models"
	"unifest/internal/pricing"
	"unifest/internal/repository"
	"unifest/internal/search"
)

type EventService struct {
	eventRepo  *repository.EventRepository
	searchRepo *repository.EventSearchRepository
	tierRepo   *repository.TierRepository
}

func NewEventService(eventRepo *repository.EventRepository, searchRepo *repository.EventSearchRepository, tierRepo *repository.TierRepository) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		searchRepo: searchRepo,
		tierRepo:   tierRepo,
	}
}

func (s *EventService) Create(ctx context.Context, req *models.CreateEventRequest, organizerID string) (*models.CreateEventResponse, error) {
	switch req.ParticipationType {
	case models.ParticipationIndividual, models.ParticipationTeam, models.ParticipationBoth:
	default:
		return nil, fmt.Errorf("invalid participation type: %s", req.ParticipationType)
	}

	if req.TeamSizeMin != nil && req.TeamSizeMax != nil && *req.TeamSizeMin > *req.TeamSizeMax {
		return nil, fmt.Errorf("team_size_min cannot exceed team_size_max")
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("end_date must be after start_date")
	}

	event := &models.Event{
		Title:                req.Title,
		Description:          req.Description,
		OrganizerID:          organizerID,
		CollegeID:            req.CollegeID,
		CategoryID:           req.CategoryID,
		EventStatus:          models.EventStatusDraft,
		ParticipationType:    req.ParticipationType,
		TeamSizeMin:          req.TeamSizeMin,
		TeamSizeMax:          req.TeamSizeMax,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Location:             req.Location,
		VenueDetails:         req.VenueDetails,
		MaxAttendees:         req.MaxAttendees,
		RegistrationDeadline: req.RegistrationDeadline,
		IsGlobal:             req.IsGlobal.Bool(),
		Tags:                 req.Tags,
		IndividualPrice:      req.IndividualPrice,
		TeamBasePrice:        req.TeamBasePrice,
		PricePerMember:       req.PricePerMember,
		HasCustomTeamPricing: req.HasCustomTeamPricing.Bool(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, event); err != nil {
			// Search stays eventually consistent; sync-search repairs gaps
			logger.WithContext(ctx).Error("Failed to index event",
				"error", err,
				"event_id", event.ID)
		}
	}

	return &models.CreateEventResponse{ID: event.ID}, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context, status string, page, pageSize int) ([]models.Event, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.eventRepo.List(ctx, status, page, pageSize)
}

// Search queries Elasticsearch and falls back to the Postgres listing when
// the search cluster is unavailable.
func (s *EventService) Search(ctx context.Context, params search.SearchParams) ([]models.Event, error) {
	if s.searchRepo != nil {
		events, err := s.searchRepo.Search(ctx, params)
		if err == nil {
			return events, nil
		}
		logger.WithContext(ctx).Error("Search failed, falling back to database",
			"error", err,
			"query", params.Query)
	}

	return s.eventRepo.List(ctx, params.Status, params.Page, params.PageSize)
}

func (s *EventService) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case models.EventStatusDraft, models.EventStatusPublished,
		models.EventStatusCancelled, models.EventStatusCompleted:
	default:
		return fmt.Errorf("invalid event status: %s", status)
	}

	if err := s.eventRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if s.searchRepo != nil {
		event, err := s.eventRepo.GetByID(ctx, id)
		if err == nil && event != nil {
			if err := s.searchRepo.Update(ctx, event); err != nil {
				logger.WithContext(ctx).Error("Failed to reindex event after status change",
					"error", err,
					"event_id", id)
			}
		}
	}

	return nil
}

func (s *EventService) CreateTier(ctx context.Context, eventID string, req *models.CreateTierRequest) (*models.TeamPricingTier, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.HasCustomTeamPricing {
		return nil, fmt.Errorf("event %s does not use custom team pricing", eventID)
	}
	if req.MinMembers < 1 || req.MaxMembers < req.MinMembers {
		return nil, fmt.Errorf("invalid tier bounds [%d, %d]", req.MinMembers, req.MaxMembers)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("tier price cannot be negative")
	}

	tier := &models.TeamPricingTier{
		EventID:    eventID,
		MinMembers: req.MinMembers,
		MaxMembers: req.MaxMembers,
		Price:      req.Price,
	}
	if err := s.tierRepo.Create(ctx, tier); err != nil {
		return nil, err
	}
	return tier, nil
}

func (s *EventService) GetTiers(ctx context.Context, eventID string) ([]models.TeamPricingTier, error) {
	if _, err := s.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	tiers, err := s.tierRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := pricing.ValidateTiers(tiers); err != nil {
		logger.WithContext(ctx).Error("Stored pricing tiers overlap",
			"error", err,
			"event_id", eventID)
	}
	return tiers, nil
}

func (s *EventService) GetStats(ctx context.Context, eventID string) (*models.EventStatsResponse, error) {
	if _, err := s.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetStats(ctx, eventID)
}
