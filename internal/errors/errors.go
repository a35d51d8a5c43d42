package errors

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")

var ErrEventNotFound = errors.New("event not found")
var ErrRegistrationNotFound = errors.New("registration not found")
var ErrTeamNotFound = errors.New("team not found")
var ErrTicketNotFound = errors.New("ticket not found")

// ErrRegistrationClosed is returned when the event is not open for
// registration: not published, past its deadline, or already started.
var ErrRegistrationClosed = errors.New("registration is closed for this event")

// ErrCapacityFull is returned when the atomic attendee increment finds the
// event at max_attendees.
var ErrCapacityFull = errors.New("event has reached maximum capacity")

// ErrTicketNotPaid is returned when ticket issuance is requested for a
// registration whose payment has not completed.
var ErrTicketNotPaid = errors.New("registration payment is not completed")

// ErrTicketUsed is returned on a second verification scan of the same ticket.
var ErrTicketUsed = errors.New("ticket has already been used")

// TeamPersistenceError wraps a failure of the atomic team creation
// transaction. The underlying driver error is carried verbatim.
type TeamPersistenceError struct {
	RegistrationID string
	Err            error
}

func (e *TeamPersistenceError) Error() string {
	return fmt.Sprintf("team creation failed for registration %s: %v", e.RegistrationID, e.Err)
}

func (e *TeamPersistenceError) Unwrap() error {
	return e.Err
}
