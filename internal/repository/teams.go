package repository

import (
	"context"
	"database/sql"

	"unifest/internal/database"
	apperrors "unifest/internal/errors"
	"unifest/internal/models"
)

const teamColumns = `id, registration_id, event_id, team_name, team_leader_id,
	       team_leader_name, team_leader_phone, team_leader_email,
	       team_leader_university_reg, created_at, updated_at`

const memberColumns = `id, team_id, member_name, member_email, member_phone,
	       university_registration_number, is_leader, joined_at`

type TeamRepository struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func scanTeam(row interface{ Scan(...interface{}) error }, team *models.Team) error {
	return row.Scan(
		&team.ID,
		&team.RegistrationID,
		&team.EventID,
		&team.TeamName,
		&team.TeamLeaderID,
		&team.TeamLeaderName,
		&team.TeamLeaderPhone,
		&team.TeamLeaderEmail,
		&team.TeamLeaderUniversityReg,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
}

func scanMember(row interface{ Scan(...interface{}) error }, m *models.TeamMember) error {
	return row.Scan(
		&m.ID,
		&m.TeamID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.UniversityReg,
		&m.IsLeader,
		&m.JoinedAt,
	)
}

// CreateTeamWithMembers creates the team row, the leader's member row and
// every additional member row for a registration as one transaction.
// All-or-nothing: any failure rolls back and is reported as a
// TeamPersistenceError carrying the driver error verbatim. Success is never
// reported before commit.
func (r *TeamRepository) CreateTeamWithMembers(ctx context.Context, registrationID, eventID string, leaderID *string, data *models.TeamDataInput) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", &apperrors.TeamPersistenceError{RegistrationID: registrationID, Err: err}
	}
	defer tx.Rollback()

	var teamID string
	teamQuery := `
		INSERT INTO teams (registration_id, event_id, team_name, team_leader_id,
		                   team_leader_name, team_leader_phone, team_leader_email,
		                   team_leader_university_reg)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err = tx.QueryRowContext(ctx, teamQuery,
		registrationID,
		eventID,
		data.TeamName,
		leaderID,
		data.TeamLeaderName,
		data.TeamLeaderPhone,
		data.TeamLeaderEmail,
		data.TeamLeaderUniversityReg,
	).Scan(&teamID)
	if err != nil {
		return "", &apperrors.TeamPersistenceError{RegistrationID: registrationID, Err: err}
	}

	memberQuery := `
		INSERT INTO team_members (team_id, member_name, member_email, member_phone,
		                          university_registration_number, is_leader)
		VALUES ($1, $2, $3, $4, $5, $6)`

	// The leader's member row mirrors the denormalized leader fields
	_, err = tx.ExecContext(ctx, memberQuery,
		teamID,
		data.TeamLeaderName,
		data.TeamLeaderEmail,
		data.TeamLeaderPhone,
		data.TeamLeaderUniversityReg,
		true,
	)
	if err != nil {
		return "", &apperrors.TeamPersistenceError{RegistrationID: registrationID, Err: err}
	}

	for _, member := range data.Members {
		_, err = tx.ExecContext(ctx, memberQuery,
			teamID,
			member.Name,
			member.Email,
			member.Phone,
			member.UniversityReg,
			false,
		)
		if err != nil {
			return "", &apperrors.TeamPersistenceError{RegistrationID: registrationID, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", &apperrors.TeamPersistenceError{RegistrationID: registrationID, Err: err}
	}

	return teamID, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	team := &models.Team{}
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	err := scanTeam(r.db.QueryRowContext(ctx, query, id), team)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return team, err
}

func (r *TeamRepository) GetByRegistration(ctx context.Context, registrationID string) (*models.Team, error) {
	team := &models.Team{}
	query := `SELECT ` + teamColumns + ` FROM teams WHERE registration_id = $1`

	err := scanTeam(r.db.QueryRowContext(ctx, query, registrationID), team)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return team, err
}

func (r *TeamRepository) GetByEvent(ctx context.Context, eventID string) ([]models.Team, error) {
	var teams []models.Team
	query := `SELECT ` + teamColumns + ` FROM teams
		WHERE event_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var team models.Team
		if err := scanTeam(rows, &team); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetMembers returns team members leader-first, then by join time
func (r *TeamRepository) GetMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	var members []models.TeamMember
	query := `SELECT ` + memberColumns + ` FROM team_members
		WHERE team_id = $1
		ORDER BY is_leader DESC, joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var member models.TeamMember
		if err := scanMember(rows, &member); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// GetTeamDetails returns the nested team-with-members record used for
// ticket display
func (r *TeamRepository) GetTeamDetails(ctx context.Context, teamID string) (*models.TeamDetailsResponse, error) {
	team, err := r.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, nil
	}

	members, err := r.GetMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &models.TeamDetailsResponse{Team: *team, Members: members}, nil
}

// Update applies mutable team fields. Leader fields changed here are also
// mirrored onto the leader's member row to keep the denormalization in sync.
func (r *TeamRepository) Update(ctx context.Context, teamID string, req *models.UpdateTeamRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE teams
		SET team_name = COALESCE($1, team_name),
		    team_leader_name = COALESCE($2, team_leader_name),
		    team_leader_phone = COALESCE($3, team_leader_phone),
		    team_leader_email = COALESCE($4, team_leader_email),
		    updated_at = NOW()
		WHERE id = $5`

	result, err := tx.ExecContext(ctx, query,
		req.TeamName,
		req.TeamLeaderName,
		req.TeamLeaderPhone,
		req.TeamLeaderEmail,
		teamID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrTeamNotFound
	}

	if req.TeamLeaderName != nil || req.TeamLeaderPhone != nil || req.TeamLeaderEmail != nil {
		mirrorQuery := `
			UPDATE team_members
			SET member_name = COALESCE($1, member_name),
			    member_phone = COALESCE($2, member_phone),
			    member_email = COALESCE($3, member_email)
			WHERE team_id = $4 AND is_leader = TRUE`
		if _, err := tx.ExecContext(ctx, mirrorQuery,
			req.TeamLeaderName, req.TeamLeaderPhone, req.TeamLeaderEmail, teamID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AddMember inserts one non-leader member
func (r *TeamRepository) AddMember(ctx context.Context, teamID string, member *models.AddTeamMemberRequest) error {
	query := `
		INSERT INTO team_members (team_id, member_name, member_email, member_phone,
		                          university_registration_number, is_leader)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), FALSE)`

	_, err := r.db.ExecContext(ctx, query,
		teamID,
		member.Name,
		member.Email,
		member.Phone,
		member.UniversityReg,
	)
	return err
}

// RemoveMember deletes one member by id. The leader row cannot be removed.
func (r *TeamRepository) RemoveMember(ctx context.Context, memberID string) error {
	query := `DELETE FROM team_members WHERE id = $1 AND is_leader = FALSE`
	result, err := r.db.ExecContext(ctx, query, memberID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
