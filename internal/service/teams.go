package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "unifest/internal/errors"
	"unifest/internal/models"
	"unifest/internal/repository"
	"unifest/internal/teams"
)

type TeamService struct {
	teamRepo *repository.TeamRepository
}

func NewTeamService(teamRepo *repository.TeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) GetDetails(ctx context.Context, teamID string) (*models.TeamDetailsResponse, error) {
	details, err := s.teamRepo.GetTeamDetails(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, apperrors.ErrTeamNotFound
	}
	return details, nil
}

func (s *TeamService) GetByEvent(ctx context.Context, eventID string) ([]models.Team, error) {
	return s.teamRepo.GetByEvent(ctx, eventID)
}

// Update changes team fields and keeps the denormalized leader data in sync
// with the leader member row.
func (s *TeamService) Update(ctx context.Context, teamID string, req *models.UpdateTeamRequest) (*models.TeamDetailsResponse, error) {
	if req.TeamName != nil && len(strings.TrimSpace(*req.TeamName)) < 3 {
		return nil, fmt.Errorf("Team name must be at least 3 characters")
	}
	if req.TeamLeaderName != nil && len(strings.TrimSpace(*req.TeamLeaderName)) < 2 {
		return nil, fmt.Errorf("Team leader name is required")
	}
	if req.TeamLeaderEmail != nil && !teams.IsValidEmail(*req.TeamLeaderEmail) {
		return nil, fmt.Errorf("Valid team leader email is required")
	}
	if req.TeamLeaderPhone != nil && !teams.IsValidPhone(*req.TeamLeaderPhone) {
		return nil, fmt.Errorf("Valid team leader phone number is required")
	}

	if err := s.teamRepo.Update(ctx, teamID, req); err != nil {
		return nil, err
	}

	return s.GetDetails(ctx, teamID)
}

func (s *TeamService) AddMember(ctx context.Context, teamID string, req *models.AddTeamMemberRequest) error {
	if len(req.Name) < 2 {
		return fmt.Errorf("Member name is required")
	}
	if req.Email != "" && !teams.IsValidEmail(req.Email) {
		return fmt.Errorf("Valid member email is required")
	}
	if req.Phone != "" && !teams.IsValidPhone(req.Phone) {
		return fmt.Errorf("Valid member phone number is required")
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return apperrors.ErrTeamNotFound
	}

	return s.teamRepo.AddMember(ctx, teamID, req)
}

// RemoveMember deletes a non-leader member. The leader row can never be
// removed; disbanding a team means cancelling its registration.
func (s *TeamService) RemoveMember(ctx context.Context, memberID string) error {
	return s.teamRepo.RemoveMember(ctx, memberID)
}
