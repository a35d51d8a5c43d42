package repository

import (
	"context"
	"database/sql"
	"fmt"

	"unifest/internal/database"
	"unifest/internal/models"
)

const eventColumns = `id, title, description, organizer_id, college_id, category_id,
	       event_status, participation_type, team_size_min, team_size_max,
	       start_date, end_date, location, venue_details,
	       max_attendees, current_attendees, registration_deadline,
	       is_global, tags, individual_price, team_base_price, price_per_member,
	       has_custom_team_pricing, created_at, updated_at`

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(row interface{ Scan(...interface{}) error }, event *models.Event) error {
	return row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.OrganizerID,
		&event.CollegeID,
		&event.CategoryID,
		&event.EventStatus,
		&event.ParticipationType,
		&event.TeamSizeMin,
		&event.TeamSizeMax,
		&event.StartDate,
		&event.EndDate,
		&event.Location,
		&event.VenueDetails,
		&event.MaxAttendees,
		&event.CurrentAttendees,
		&event.RegistrationDeadline,
		&event.IsGlobal,
		&event.Tags,
		&event.IndividualPrice,
		&event.TeamBasePrice,
		&event.PricePerMember,
		&event.HasCustomTeamPricing,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, organizer_id, college_id, category_id,
		                    event_status, participation_type, team_size_min, team_size_max,
		                    start_date, end_date, location, venue_details,
		                    max_attendees, registration_deadline, is_global, tags,
		                    individual_price, team_base_price, price_per_member, has_custom_team_pricing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id, current_attendees, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.OrganizerID,
		event.CollegeID,
		event.CategoryID,
		event.EventStatus,
		event.ParticipationType,
		event.TeamSizeMin,
		event.TeamSizeMax,
		event.StartDate,
		event.EndDate,
		event.Location,
		event.VenueDetails,
		event.MaxAttendees,
		event.RegistrationDeadline,
		event.IsGlobal,
		event.Tags,
		event.IndividualPrice,
		event.TeamBasePrice,
		event.PricePerMember,
		event.HasCustomTeamPricing,
	).Scan(&event.ID, &event.CurrentAttendees, &event.CreatedAt, &event.UpdatedAt)

	return err
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event := &models.Event{}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	err := scanEvent(r.db.QueryRowContext(ctx, query, id), event)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return event, err
}

// List returns events ordered by start date, newest first. Used by the
// search reindexer and as the non-search listing path.
func (r *EventRepository) List(ctx context.Context, status string, page, pageSize int) ([]models.Event, error) {
	var events []models.Event
	var args []interface{}
	argIndex := 1

	query := `SELECT ` + eventColumns + ` FROM events`
	if status != "" {
		query += fmt.Sprintf(" WHERE event_status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}
	query += " ORDER BY start_date DESC"

	if page > 0 && pageSize > 0 {
		offset := (page - 1) * pageSize
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, pageSize, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event models.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE events SET event_status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
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

// GetStats aggregates registration and ticket figures for one event
func (r *EventRepository) GetStats(ctx context.Context, id string) (*models.EventStatsResponse, error) {
	stats := &models.EventStatsResponse{EventID: id}
	query := `
		SELECT
			(SELECT COUNT(*) FROM registrations WHERE event_id = $1),
			(SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND registration_status = 'confirmed'),
			(SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND is_team = TRUE),
			(SELECT current_attendees FROM events WHERE id = $1),
			(SELECT COUNT(*) FROM tickets WHERE event_id = $1),
			(SELECT COALESCE(SUM(payment_amount), 0) FROM registrations
			  WHERE event_id = $1 AND payment_status = 'completed')`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&stats.TotalRegistrations,
		&stats.ConfirmedCount,
		&stats.TeamCount,
		&stats.CurrentAttendees,
		&stats.TicketsIssued,
		&stats.TotalRevenue,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return stats, err
}
