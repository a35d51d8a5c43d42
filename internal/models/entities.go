package models

import (
	"time"

	"github.com/lib/pq"
)

// Event lifecycle statuses
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

// Participation types
const (
	ParticipationIndividual = "individual"
	ParticipationTeam       = "team"
	ParticipationBoth       = "both"
)

// Registration statuses
const (
	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
	RegistrationAttended  = "attended"
)

// Payment statuses
const (
	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentCompleted  = "completed"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"
)

// Ticket types
const (
	TicketTypeFree      = "free"
	TicketTypePaid      = "paid"
	TicketTypeVIP       = "vip"
	TicketTypeEarlyBird = "early_bird"
)

// User represents a registered account
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	CollegeID    *string   `json:"college_id" db:"college_id"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	LastLoggedIn time.Time `json:"last_logged_in" db:"last_logged_in"`
}

// College represents a participating college
type College struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Location        string    `json:"location" db:"location"`
	Description     *string   `json:"description" db:"description"`
	Website         *string   `json:"website" db:"website"`
	EstablishedYear *int      `json:"established_year" db:"established_year"`
	ContactEmail    *string   `json:"contact_email" db:"contact_email"`
	ContactPhone    *string   `json:"contact_phone" db:"contact_phone"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Category represents an event category
type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Event represents a college event with its pricing configuration
type Event struct {
	ID                   string         `json:"id" db:"id"`
	Title                string         `json:"title" db:"title"`
	Description          string         `json:"description" db:"description"`
	OrganizerID          string         `json:"organizer_id" db:"organizer_id"`
	CollegeID            *string        `json:"college_id" db:"college_id"`
	CategoryID           *string        `json:"category_id" db:"category_id"`
	EventStatus          string         `json:"event_status" db:"event_status"`
	ParticipationType    string         `json:"participation_type" db:"participation_type"`
	TeamSizeMin          *int           `json:"team_size_min" db:"team_size_min"`
	TeamSizeMax          *int           `json:"team_size_max" db:"team_size_max"`
	StartDate            time.Time      `json:"start_date" db:"start_date"`
	EndDate              time.Time      `json:"end_date" db:"end_date"`
	Location             string         `json:"location" db:"location"`
	VenueDetails         *string        `json:"venue_details" db:"venue_details"`
	MaxAttendees         *int           `json:"max_attendees" db:"max_attendees"`
	CurrentAttendees     int            `json:"current_attendees" db:"current_attendees"`
	RegistrationDeadline *time.Time     `json:"registration_deadline" db:"registration_deadline"`
	IsGlobal             bool           `json:"is_global" db:"is_global"`
	Tags                 pq.StringArray `json:"tags" db:"tags"`
	IndividualPrice      int64          `json:"individual_price" db:"individual_price"`
	TeamBasePrice        int64          `json:"team_base_price" db:"team_base_price"`
	PricePerMember       int64          `json:"price_per_member" db:"price_per_member"`
	HasCustomTeamPricing bool           `json:"has_custom_team_pricing" db:"has_custom_team_pricing"`
	CreatedAt            time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at" db:"updated_at"`
}

// TeamPricingTier maps a team-size range to one fixed price
type TeamPricingTier struct {
	ID         string    `json:"id" db:"id"`
	EventID    string    `json:"event_id" db:"event_id"`
	MinMembers int       `json:"min_members" db:"min_members"`
	MaxMembers int       `json:"max_members" db:"max_members"`
	Price      int64     `json:"price" db:"price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Registration represents a user's registration for an event
type Registration struct {
	ID                      string     `json:"id" db:"id"`
	EventID                 string     `json:"event_id" db:"event_id"`
	UserID                  string     `json:"user_id" db:"user_id"`
	RegistrationStatus      string     `json:"registration_status" db:"registration_status"`
	RegistrationDate        time.Time  `json:"registration_date" db:"registration_date"`
	AttendedAt              *time.Time `json:"attended_at" db:"attended_at"`
	IsTeam                  bool       `json:"is_team" db:"is_team"`
	TeamSize                int        `json:"team_size" db:"team_size"`
	TeamName                *string    `json:"team_name" db:"team_name"`
	TeamLeaderName          *string    `json:"team_leader_name" db:"team_leader_name"`
	TeamLeaderPhone         *string    `json:"team_leader_phone" db:"team_leader_phone"`
	TeamLeaderEmail         *string    `json:"team_leader_email" db:"team_leader_email"`
	TeamLeaderUniversityReg *string    `json:"team_leader_university_reg" db:"team_leader_university_reg"`
	PaymentStatus           string     `json:"payment_status" db:"payment_status"`
	PaymentAmount           int64      `json:"payment_amount" db:"payment_amount"`
	PaymentMethod           *string    `json:"payment_method" db:"payment_method"`
	TransactionID           *string    `json:"transaction_id" db:"transaction_id"`
	PaidAt                  *time.Time `json:"paid_at" db:"paid_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
}

// Team is the one-to-one companion of a team registration. Leader fields are
// denormalized so ticket display never needs a member join.
type Team struct {
	ID                      string    `json:"id" db:"id"`
	RegistrationID          string    `json:"registration_id" db:"registration_id"`
	EventID                 string    `json:"event_id" db:"event_id"`
	TeamName                string    `json:"team_name" db:"team_name"`
	TeamLeaderID            *string   `json:"team_leader_id" db:"team_leader_id"`
	TeamLeaderName          string    `json:"team_leader_name" db:"team_leader_name"`
	TeamLeaderPhone         *string   `json:"team_leader_phone" db:"team_leader_phone"`
	TeamLeaderEmail         *string   `json:"team_leader_email" db:"team_leader_email"`
	TeamLeaderUniversityReg *string   `json:"team_leader_university_reg" db:"team_leader_university_reg"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time `json:"updated_at" db:"updated_at"`
}

// TeamMember represents one member row of a team; exactly one member per
// team carries IsLeader=true.
type TeamMember struct {
	ID            string    `json:"id" db:"id"`
	TeamID        string    `json:"team_id" db:"team_id"`
	Name          string    `json:"name" db:"member_name"`
	Email         *string   `json:"email" db:"member_email"`
	Phone         *string   `json:"phone" db:"member_phone"`
	UniversityReg *string   `json:"university_reg" db:"university_registration_number"`
	IsLeader      bool      `json:"is_leader" db:"is_leader"`
	JoinedAt      time.Time `json:"joined_at" db:"joined_at"`
}

// Ticket represents an issued ticket
type Ticket struct {
	ID             string     `json:"id" db:"id"`
	EventID        string     `json:"event_id" db:"event_id"`
	RegistrationID *string    `json:"registration_id" db:"registration_id"`
	TicketType     string     `json:"ticket_type" db:"ticket_type"`
	Price          int64      `json:"price" db:"price"`
	TicketCode     string     `json:"ticket_code" db:"ticket_code"`
	IsValid        bool       `json:"is_valid" db:"is_valid"`
	IssuedAt       time.Time  `json:"issued_at" db:"issued_at"`
	UsedAt         *time.Time `json:"used_at" db:"used_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Payment represents a payment record for a registration
type Payment struct {
	ID             string     `json:"id" db:"id"`
	RegistrationID string     `json:"registration_id" db:"registration_id"`
	TicketID       *string    `json:"ticket_id" db:"ticket_id"`
	Amount         int64      `json:"amount" db:"amount"`
	PaymentStatus  string     `json:"payment_status" db:"payment_status"`
	PaymentMethod  *string    `json:"payment_method" db:"payment_method"`
	TransactionID  *string    `json:"transaction_id" db:"transaction_id"`
	PaymentDate    *time.Time `json:"payment_date" db:"payment_date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Notification represents a user notification written by the consumers
type Notification struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	Title            string    `json:"title" db:"title"`
	Message          string    `json:"message" db:"message"`
	NotificationType string    `json:"notification_type" db:"notification_type"`
	Read             bool      `json:"read" db:"read"`
	EventID          *string   `json:"event_id" db:"event_id"`
	RegistrationID   *string   `json:"registration_id" db:"registration_id"`
	TeamID           *string   `json:"team_id" db:"team_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
