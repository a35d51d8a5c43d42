package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"unifest/internal/database"
	apperrors "unifest/internal/errors"
	"unifest/internal/models"
	"unifest/internal/pricing"
)

const registrationColumns = `id, event_id, user_id, registration_status, registration_date,
	       attended_at, is_team, team_size, team_name, team_leader_name,
	       team_leader_phone, team_leader_email, team_leader_university_reg,
	       payment_status, payment_amount, payment_method, transaction_id, paid_at,
	       created_at, updated_at`

type RegistrationRepository struct {
	db *database.DB
}

func NewRegistrationRepository(db *database.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func scanRegistration(row interface{ Scan(...interface{}) error }, reg *models.Registration) error {
	return row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.RegistrationStatus,
		&reg.RegistrationDate,
		&reg.AttendedAt,
		&reg.IsTeam,
		&reg.TeamSize,
		&reg.TeamName,
		&reg.TeamLeaderName,
		&reg.TeamLeaderPhone,
		&reg.TeamLeaderEmail,
		&reg.TeamLeaderUniversityReg,
		&reg.PaymentStatus,
		&reg.PaymentAmount,
		&reg.PaymentMethod,
		&reg.TransactionID,
		&reg.PaidAt,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
}

// Create commits a registration in one transaction. The event row is locked,
// eligibility is checked against the locked row, the amount due is recomputed
// authoritatively (the client-supplied amount is never trusted), and the
// capacity slot is taken by a conditional increment so two concurrent
// registrations cannot both pass the max_attendees limit.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	event := &models.Event{}
	lockQuery := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	err = scanEvent(tx.QueryRowContext(ctx, lockQuery, reg.EventID), event)
	if err == sql.ErrNoRows {
		return apperrors.ErrEventNotFound
	}
	if err != nil {
		return err
	}

	if err := checkEligibility(event, reg); err != nil {
		return err
	}

	var tiers []models.TeamPricingTier
	if reg.IsTeam && event.HasCustomTeamPricing {
		tiers, err = tiersInTx(ctx, tx, event.ID)
		if err != nil {
			return err
		}
	}

	amount, err := pricing.Resolve(event, tiers, reg.IsTeam, reg.TeamSize)
	if err != nil {
		return err
	}
	reg.PaymentAmount = amount
	if amount == 0 {
		// Free events skip the payment flow entirely
		reg.PaymentStatus = models.PaymentCompleted
		now := time.Now()
		reg.PaidAt = &now
	}

	capacityQuery := `
		UPDATE events
		SET current_attendees = current_attendees + 1, updated_at = NOW()
		WHERE id = $1 AND (max_attendees IS NULL OR current_attendees < max_attendees)`
	result, err := tx.ExecContext(ctx, capacityQuery, reg.EventID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrCapacityFull
	}

	insertQuery := `
		INSERT INTO registrations (event_id, user_id, registration_status, is_team, team_size,
		                           team_name, team_leader_name, team_leader_phone,
		                           team_leader_email, team_leader_university_reg,
		                           payment_status, payment_amount, payment_method, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, registration_date, created_at, updated_at`

	err = tx.QueryRowContext(ctx, insertQuery,
		reg.EventID,
		reg.UserID,
		reg.RegistrationStatus,
		reg.IsTeam,
		reg.TeamSize,
		reg.TeamName,
		reg.TeamLeaderName,
		reg.TeamLeaderPhone,
		reg.TeamLeaderEmail,
		reg.TeamLeaderUniversityReg,
		reg.PaymentStatus,
		reg.PaymentAmount,
		reg.PaymentMethod,
		reg.PaidAt,
	).Scan(&reg.ID, &reg.RegistrationDate, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func checkEligibility(event *models.Event, reg *models.Registration) error {
	if event.EventStatus != models.EventStatusPublished {
		return apperrors.ErrRegistrationClosed
	}

	now := time.Now()
	if event.RegistrationDeadline != nil {
		if now.After(*event.RegistrationDeadline) {
			return apperrors.ErrRegistrationClosed
		}
	} else if now.After(event.StartDate) {
		return apperrors.ErrRegistrationClosed
	}

	if reg.IsTeam && event.ParticipationType == models.ParticipationIndividual {
		return fmt.Errorf("event %s does not accept team registrations", event.ID)
	}
	if !reg.IsTeam && event.ParticipationType == models.ParticipationTeam {
		return fmt.Errorf("event %s only accepts team registrations", event.ID)
	}

	return nil
}

func tiersInTx(ctx context.Context, tx *sql.Tx, eventID string) ([]models.TeamPricingTier, error) {
	var tiers []models.TeamPricingTier
	query := `
		SELECT id, event_id, min_members, max_members, price, created_at
		FROM team_pricing_tiers
		WHERE event_id = $1
		ORDER BY min_members`

	rows, err := tx.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tier models.TeamPricingTier
		err := rows.Scan(&tier.ID, &tier.EventID, &tier.MinMembers, &tier.MaxMembers,
			&tier.Price, &tier.CreatedAt)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}

	return tiers, rows.Err()
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	reg := &models.Registration{}
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	err := scanRegistration(r.db.QueryRowContext(ctx, query, id), reg)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return reg, err
}

func (r *RegistrationRepository) GetByUserID(ctx context.Context, userID string) ([]models.Registration, error) {
	var regs []models.Registration
	query := `SELECT ` + registrationColumns + ` FROM registrations
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reg models.Registration
		if err := scanRegistration(rows, &reg); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

func (r *RegistrationRepository) GetByEventID(ctx context.Context, eventID string) ([]models.Registration, error) {
	var regs []models.Registration
	query := `SELECT ` + registrationColumns + ` FROM registrations
		WHERE event_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reg models.Registration
		if err := scanRegistration(rows, &reg); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

// GetByTransactionID locates the registration a gateway notification refers to
func (r *RegistrationRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Registration, error) {
	reg := &models.Registration{}
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE transaction_id = $1`

	err := scanRegistration(r.db.QueryRowContext(ctx, query, transactionID), reg)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return reg, err
}

func (r *RegistrationRepository) UpdatePaymentStatus(ctx context.Context, id, status, transactionID string) error {
	query := `
		UPDATE registrations
		SET payment_status = $1, transaction_id = $2,
		    paid_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE paid_at END,
		    registration_status = CASE WHEN $1 = 'completed' THEN 'confirmed' ELSE registration_status END,
		    updated_at = NOW()
		WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, status, transactionID, id)
	return err
}

// Cancel cancels a registration, invalidates its ticket and releases the
// capacity slot, all in one transaction.
func (r *RegistrationRepository) Cancel(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var eventID string
	updateQuery := `
		UPDATE registrations
		SET registration_status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND registration_status NOT IN ('cancelled', 'attended')
		RETURNING event_id`
	err = tx.QueryRowContext(ctx, updateQuery, id).Scan(&eventID)
	if err == sql.ErrNoRows {
		return apperrors.ErrRegistrationNotFound
	}
	if err != nil {
		return err
	}

	invalidateQuery := `
		UPDATE tickets SET is_valid = FALSE, updated_at = NOW()
		WHERE registration_id = $1`
	if _, err := tx.ExecContext(ctx, invalidateQuery, id); err != nil {
		return err
	}

	releaseQuery := `
		UPDATE events SET current_attendees = current_attendees - 1, updated_at = NOW()
		WHERE id = $1 AND current_attendees > 0`
	if _, err := tx.ExecContext(ctx, releaseQuery, eventID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetExpired returns pending unpaid registrations whose event registration
// deadline has passed. Picked up by the expiration job.
func (r *RegistrationRepository) GetExpired(ctx context.Context, now time.Time) ([]models.Registration, error) {
	var regs []models.Registration
	query := `
		SELECT ` + qualifyColumns("r", registrationColumns) + `
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.registration_status = 'pending'
		  AND r.payment_status = 'pending'
		  AND e.registration_deadline IS NOT NULL
		  AND e.registration_deadline < $1
		ORDER BY r.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reg models.Registration
		if err := scanRegistration(rows, &reg); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

func qualifyColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

// MarkAttended stamps the venue check-in time
func (r *RegistrationRepository) MarkAttended(ctx context.Context, id string) error {
	query := `
		UPDATE registrations
		SET registration_status = 'attended', attended_at = NOW(), updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
