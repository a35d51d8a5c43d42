package ticketing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"unifest/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

const codePrefixLen = 8

// Code derives the human-readable ticket code from the registration and
// event ids. The derivation is deterministic, so repeated issuance for the
// same registration always yields the same code.
func Code(registrationID, eventID string) string {
	return fmt.Sprintf("TICKET-%s-%s", idPrefix(eventID), idPrefix(registrationID))
}

func idPrefix(id string) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(cleaned) > codePrefixLen {
		cleaned = cleaned[:codePrefixLen]
	}
	return cleaned
}

// TeamInfo is the team slice of a scannable payload
type TeamInfo struct {
	TeamName   string `json:"team_name"`
	TeamSize   int    `json:"team_size"`
	LeaderName string `json:"leader_name"`
}

// Payload is the canonical scannable ticket record. It is serialized to JSON
// and encoded as a QR image, and must stay decodable by any QR-capable
// reader independent of this service.
type Payload struct {
	TicketCode string `json:"ticket_code"`

	EventID       string    `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	EventDate     time.Time `json:"event_date"`
	EventLocation string    `json:"event_location"`

	HolderID    string `json:"holder_id"`
	HolderName  string `json:"holder_name"`
	HolderEmail string `json:"holder_email"`

	RegistrationID     string    `json:"registration_id"`
	RegistrationDate   time.Time `json:"registration_date"`
	RegistrationStatus string    `json:"registration_status"`

	PaymentStatus string `json:"payment_status"`
	PaymentAmount int64  `json:"payment_amount"`

	IsTeam bool      `json:"is_team"`
	Team   *TeamInfo `json:"team,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// BuildPayload assembles the canonical payload for a registration. Team
// details ride along only for team registrations; leader data comes from the
// denormalized team fields so no member join is needed.
func BuildPayload(reg *models.Registration, event *models.Event, holder *models.User, team *models.Team) Payload {
	p := Payload{
		TicketCode:         Code(reg.ID, event.ID),
		EventID:            event.ID,
		EventTitle:         event.Title,
		EventDate:          event.StartDate,
		EventLocation:      event.Location,
		HolderID:           holder.ID,
		HolderName:         holder.FullName,
		HolderEmail:        holder.Email,
		RegistrationID:     reg.ID,
		RegistrationDate:   reg.RegistrationDate,
		RegistrationStatus: reg.RegistrationStatus,
		PaymentStatus:      reg.PaymentStatus,
		PaymentAmount:      reg.PaymentAmount,
		IsTeam:             reg.IsTeam,
		GeneratedAt:        time.Now().UTC(),
	}

	if reg.IsTeam && team != nil {
		p.Team = &TeamInfo{
			TeamName:   team.TeamName,
			TeamSize:   reg.TeamSize,
			LeaderName: team.TeamLeaderName,
		}
	}

	return p
}

// EncodePNG serializes the payload to JSON and renders it as a QR PNG
func EncodePNG(p Payload, size int) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return png, nil
}

// DecodePayload parses a scanned payload back into its structured form
func DecodePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode ticket payload: %w", err)
	}
	if p.RegistrationID == "" || p.EventID == "" {
		return nil, fmt.Errorf("ticket payload is missing registration or event id")
	}
	return &p, nil
}
