package repository

import (
	"context"
	"database/sql"

	"unifest/internal/database"
	apperrors "unifest/internal/errors"
	"unifest/internal/models"
)

const ticketColumns = `id, event_id, registration_id, ticket_type, price, ticket_code,
	       is_valid, issued_at, used_at, created_at, updated_at`

type TicketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func scanTicket(row interface{ Scan(...interface{}) error }, t *models.Ticket) error {
	return row.Scan(
		&t.ID,
		&t.EventID,
		&t.RegistrationID,
		&t.TicketType,
		&t.Price,
		&t.TicketCode,
		&t.IsValid,
		&t.IssuedAt,
		&t.UsedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

// Issue creates the ticket row for a registration. registration_id is unique,
// so repeated issuance requests return the already-issued ticket instead of
// inserting a second one; the ticket code is deterministic, which keeps the
// operation idempotent end to end.
func (r *TicketRepository) Issue(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (event_id, registration_id, ticket_type, price, ticket_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (registration_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, ticket_code, is_valid, issued_at, used_at, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		ticket.EventID,
		ticket.RegistrationID,
		ticket.TicketType,
		ticket.Price,
		ticket.TicketCode,
	).Scan(
		&ticket.ID,
		&ticket.TicketCode,
		&ticket.IsValid,
		&ticket.IssuedAt,
		&ticket.UsedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	return err
}

func (r *TicketRepository) GetByCode(ctx context.Context, code string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_code = $1`

	err := scanTicket(r.db.QueryRowContext(ctx, query, code), ticket)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return ticket, err
}

func (r *TicketRepository) GetByRegistration(ctx context.Context, registrationID string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE registration_id = $1`

	err := scanTicket(r.db.QueryRowContext(ctx, query, registrationID), ticket)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return ticket, err
}

// MarkUsed consumes a ticket on its first successful venue scan. The update
// is conditional on is_valid, so a second scan of the same code changes
// nothing and reports ErrTicketUsed.
func (r *TicketRepository) MarkUsed(ctx context.Context, code string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `
		UPDATE tickets
		SET is_valid = FALSE, used_at = NOW(), updated_at = NOW()
		WHERE ticket_code = $1 AND is_valid = TRUE
		RETURNING ` + ticketColumns

	err := scanTicket(r.db.QueryRowContext(ctx, query, code), ticket)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrTicketUsed
	}
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

// Invalidate flips is_valid off without consuming the ticket, used when the
// owning registration is cancelled or refunded
func (r *TicketRepository) Invalidate(ctx context.Context, registrationID string) error {
	query := `
		UPDATE tickets SET is_valid = FALSE, updated_at = NOW()
		WHERE registration_id = $1`
	_, err := r.db.ExecContext(ctx, query, registrationID)
	return err
}
