package repository

import (
	"context"
	"database/sql"

	"unifest/internal/database"
	"unifest/internal/models"
)

const paymentColumns = `id, registration_id, ticket_id, amount, payment_status,
	       payment_method, transaction_id, payment_date, created_at, updated_at`

type PaymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func scanPayment(row interface{ Scan(...interface{}) error }, p *models.Payment) error {
	return row.Scan(
		&p.ID,
		&p.RegistrationID,
		&p.TicketID,
		&p.Amount,
		&p.PaymentStatus,
		&p.PaymentMethod,
		&p.TransactionID,
		&p.PaymentDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (registration_id, ticket_id, amount, payment_status,
		                      payment_method, transaction_id, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		payment.RegistrationID,
		payment.TicketID,
		payment.Amount,
		payment.PaymentStatus,
		payment.PaymentMethod,
		payment.TransactionID,
		payment.PaymentDate,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)

	return err
}

func (r *PaymentRepository) GetByRegistration(ctx context.Context, registrationID string) ([]models.Payment, error) {
	var payments []models.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE registration_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var payment models.Payment
		if err := scanPayment(rows, &payment); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`

	err := scanPayment(r.db.QueryRowContext(ctx, query, transactionID), payment)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return payment, err
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE payments
		SET payment_status = $1,
		    payment_date = CASE WHEN $1 = 'completed' THEN NOW() ELSE payment_date END,
		    updated_at = NOW()
		WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

// LinkTicket records which ticket a completed payment produced
func (r *PaymentRepository) LinkTicket(ctx context.Context, paymentID, ticketID string) error {
	query := `UPDATE payments SET ticket_id = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, ticketID, paymentID)
	return err
}
