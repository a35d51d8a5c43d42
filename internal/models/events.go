package models

import "time"

// NATS subjects
const (
	EventRegistrationCreated   = "registration.created"
	EventRegistrationCancelled = "registration.cancelled"
	EventRegistrationExpired   = "registration.expired"
	EventPaymentInitiated      = "payment.initiated"
	EventPaymentCompleted      = "payment.completed"
	EventPaymentFailed         = "payment.failed"
	EventTicketIssued          = "ticket.issued"
)

// RegistrationCreatedEvent is published when a registration is committed
type RegistrationCreatedEvent struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	IsTeam         bool      `json:"is_team"`
	TeamID         *string   `json:"team_id,omitempty"`
	Amount         int64     `json:"amount"`
	Timestamp      time.Time `json:"timestamp"`
}

// RegistrationCancelledEvent is published on user or admin cancellation
type RegistrationCancelledEvent struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	Reason         string    `json:"reason"`
	Timestamp      time.Time `json:"timestamp"`
}

// RegistrationExpiredEvent is published by the expiration job when a pending
// unpaid registration passes the event's registration deadline
type RegistrationExpiredEvent struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	Reason         string    `json:"reason"`
	Timestamp      time.Time `json:"timestamp"`
}

// PaymentInitiatedEvent is published when a gateway payment is started
type PaymentInitiatedEvent struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	Amount         int64     `json:"amount"`
	PaymentID      string    `json:"payment_id"`
	Timestamp      time.Time `json:"timestamp"`
}

// PaymentCompletedEvent is published when the gateway confirms capture
type PaymentCompletedEvent struct {
	RegistrationID string    `json:"registration_id"`
	PaymentID      string    `json:"payment_id"`
	Amount         int64     `json:"amount"`
	Timestamp      time.Time `json:"timestamp"`
}

// PaymentFailedEvent is published when the gateway reports failure
type PaymentFailedEvent struct {
	RegistrationID string    `json:"registration_id"`
	PaymentID      string    `json:"payment_id"`
	Reason         string    `json:"reason"`
	Timestamp      time.Time `json:"timestamp"`
}

// TicketIssuedEvent is published after a ticket record is created
type TicketIssuedEvent struct {
	TicketID       string    `json:"ticket_id"`
	TicketCode     string    `json:"ticket_code"`
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	Timestamp      time.Time `json:"timestamp"`
}
