package models

import (
	"fmt"
	"strings"
	"time"
)

// FlexibleBool accepts boolean, string and numeric JSON encodings
type FlexibleBool bool

func (fb *FlexibleBool) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)

	switch strings.ToLower(str) {
	case "true", "1", "yes", "on":
		*fb = true
	case "false", "0", "no", "off":
		*fb = false
	default:
		return fmt.Errorf("invalid boolean value: %s", str)
	}
	return nil
}

func (fb FlexibleBool) Bool() bool {
	return bool(fb)
}

// CreateEventRequest - model for creating an event
type CreateEventRequest struct {
	Title                string       `json:"title" binding:"required"`
	Description          string       `json:"description" binding:"required"`
	CollegeID            *string      `json:"college_id,omitempty"`
	CategoryID           *string      `json:"category_id,omitempty"`
	ParticipationType    string       `json:"participation_type" binding:"required"`
	TeamSizeMin          *int         `json:"team_size_min,omitempty"`
	TeamSizeMax          *int         `json:"team_size_max,omitempty"`
	StartDate            time.Time    `json:"start_date" binding:"required"`
	EndDate              time.Time    `json:"end_date" binding:"required"`
	Location             string       `json:"location" binding:"required"`
	VenueDetails         *string      `json:"venue_details,omitempty"`
	MaxAttendees         *int         `json:"max_attendees,omitempty"`
	RegistrationDeadline *time.Time   `json:"registration_deadline,omitempty"`
	IsGlobal             FlexibleBool `json:"is_global,omitempty"`
	Tags                 []string     `json:"tags,omitempty"`
	IndividualPrice      int64        `json:"individual_price"`
	TeamBasePrice        int64        `json:"team_base_price"`
	PricePerMember       int64        `json:"price_per_member"`
	HasCustomTeamPricing FlexibleBool `json:"has_custom_team_pricing,omitempty"`
}

// CreateEventResponse - response for event creation
type CreateEventResponse struct {
	ID string `json:"id"`
}

// ListEventsResponseItem - one event in a listing
type ListEventsResponseItem struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	EventStatus       string    `json:"event_status"`
	ParticipationType string    `json:"participation_type"`
	StartDate         time.Time `json:"start_date"`
	Location          string    `json:"location"`
	IndividualPrice   int64     `json:"individual_price"`
}

// ListEventsResponse - event listing
type ListEventsResponse []ListEventsResponseItem

// UpdateEventStatusRequest - lifecycle transition for an event
type UpdateEventStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateTierRequest - model for adding a custom pricing tier
type CreateTierRequest struct {
	MinMembers int   `json:"min_members" binding:"required"`
	MaxMembers int   `json:"max_members" binding:"required"`
	Price      int64 `json:"price"`
}

// TeamMemberInput - one additional team member in a registration request
type TeamMemberInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	UniversityReg string `json:"university_reg"`
}

// TeamDataInput - team composition submitted with a team registration.
// The leader is carried in the dedicated fields and counts toward team size;
// Members holds everyone else.
type TeamDataInput struct {
	TeamName                string            `json:"team_name"`
	TeamLeaderName          string            `json:"team_leader_name"`
	TeamLeaderEmail         string            `json:"team_leader_email"`
	TeamLeaderPhone         string            `json:"team_leader_phone"`
	TeamLeaderUniversityReg string            `json:"team_leader_university_reg"`
	Members                 []TeamMemberInput `json:"members"`
}

// CreateRegistrationRequest - model for registering for an event
type CreateRegistrationRequest struct {
	EventID       string         `json:"event_id" binding:"required"`
	IsTeam        FlexibleBool   `json:"is_team,omitempty"`
	TeamSize      int            `json:"team_size,omitempty"`
	PaymentMethod *string        `json:"payment_method,omitempty"`
	Team          *TeamDataInput `json:"team,omitempty"`
}

// CreateRegistrationResponse - response for a created registration
type CreateRegistrationResponse struct {
	ID            string  `json:"id"`
	TeamID        *string `json:"team_id,omitempty"`
	PaymentAmount int64   `json:"payment_amount"`
	PaymentStatus string  `json:"payment_status"`
	PaymentURL    string  `json:"payment_url,omitempty"`
}

// ListRegistrationsResponseItem - one registration in a user listing
type ListRegistrationsResponseItem struct {
	ID                 string    `json:"id"`
	EventID            string    `json:"event_id"`
	RegistrationStatus string    `json:"registration_status"`
	IsTeam             bool      `json:"is_team"`
	TeamSize           int       `json:"team_size"`
	PaymentStatus      string    `json:"payment_status"`
	PaymentAmount      int64     `json:"payment_amount"`
	RegistrationDate   time.Time `json:"registration_date"`
}

// ListRegistrationsResponse - registration listing
type ListRegistrationsResponse []ListRegistrationsResponseItem

// CancelRegistrationRequest - model for cancelling a registration
type CancelRegistrationRequest struct {
	RegistrationID string `json:"registration_id" binding:"required"`
}

// PriceQuoteRequest - advisory price computation for a registration form
type PriceQuoteRequest struct {
	EventID  string       `json:"event_id" binding:"required"`
	IsTeam   FlexibleBool `json:"is_team,omitempty"`
	TeamSize int          `json:"team_size,omitempty"`
}

// PriceQuoteResponse - advisory amount due. The persistence layer recomputes
// this authoritatively at commit time.
type PriceQuoteResponse struct {
	EventID  string `json:"event_id"`
	IsTeam   bool   `json:"is_team"`
	TeamSize int    `json:"team_size"`
	Amount   int64  `json:"amount"`
}

// UpdateTeamRequest - mutable team fields
type UpdateTeamRequest struct {
	TeamName        *string `json:"team_name,omitempty"`
	TeamLeaderName  *string `json:"team_leader_name,omitempty"`
	TeamLeaderPhone *string `json:"team_leader_phone,omitempty"`
	TeamLeaderEmail *string `json:"team_leader_email,omitempty"`
}

// AddTeamMemberRequest - model for adding one member to an existing team
type AddTeamMemberRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	UniversityReg string `json:"university_reg"`
}

// TeamDetailsResponse - nested team record, the canonical shape consumed by
// ticket display
type TeamDetailsResponse struct {
	Team    Team         `json:"team"`
	Members []TeamMember `json:"members"`
}

// VerifyTicketRequest - venue scan submitting the raw decoded QR payload
type VerifyTicketRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// VerifyTicketResponse - result of a venue scan
type VerifyTicketResponse struct {
	Valid      bool       `json:"valid"`
	Reason     string     `json:"reason,omitempty"`
	TicketCode string     `json:"ticket_code,omitempty"`
	EventID    string     `json:"event_id,omitempty"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
}

// PaymentNotificationPayload - webhook notification from the payment gateway
type PaymentNotificationPayload struct {
	PaymentID  string                 `json:"paymentId"`
	Status     string                 `json:"status"`
	MerchantID string                 `json:"merchantId"`
	Timestamp  string                 `json:"timestamp"`
	Data       map[string]interface{} `json:"data"`
}

// EventStatsResponse - aggregate registration figures for an event
type EventStatsResponse struct {
	EventID            string `json:"event_id"`
	TotalRegistrations int32  `json:"total_registrations"`
	ConfirmedCount     int32  `json:"confirmed_count"`
	TeamCount          int32  `json:"team_count"`
	CurrentAttendees   int32  `json:"current_attendees"`
	TicketsIssued      int32  `json:"tickets_issued"`
	TotalRevenue       int64  `json:"total_revenue"`
}
