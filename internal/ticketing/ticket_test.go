package ticketing

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"unifest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	regID   = "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	eventID = "0f9e8d7c-6b5a-4321-fedc-ba0987654321"
)

func TestCodeFormat(t *testing.T) {
	code := Code(regID, eventID)
	assert.Equal(t, "TICKET-0F9E8D7C-A1B2C3D4", code)
}

func TestCodeDeterministic(t *testing.T) {
	first := Code(regID, eventID)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Code(regID, eventID))
	}
}

func TestCodeDistinguishesInputs(t *testing.T) {
	assert.NotEqual(t, Code(regID, eventID), Code(eventID, regID))
}

func TestCodeShortIDs(t *testing.T) {
	// Inputs shorter than the prefix length are used whole
	code := Code("abc", "xy-z")
	assert.Equal(t, "TICKET-XYZ-ABC", code)
}

func samplePayload() Payload {
	reg := &models.Registration{
		ID:                 regID,
		EventID:            eventID,
		UserID:             "user-1",
		RegistrationStatus: models.RegistrationConfirmed,
		RegistrationDate:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		IsTeam:             true,
		TeamSize:           4,
		PaymentStatus:      models.PaymentCompleted,
		PaymentAmount:      900,
	}
	event := &models.Event{
		ID:        eventID,
		Title:     "CodeStorm 2026",
		StartDate: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		Location:  "Main Auditorium",
	}
	holder := &models.User{
		ID:       "user-1",
		FullName: "Asha Verma",
		Email:    "asha@college.edu",
	}
	team := &models.Team{
		TeamName:       "Code Crusaders",
		TeamLeaderName: "Asha Verma",
	}
	return BuildPayload(reg, event, holder, team)
}

func TestBuildPayload(t *testing.T) {
	p := samplePayload()

	assert.Equal(t, Code(regID, eventID), p.TicketCode)
	assert.Equal(t, eventID, p.EventID)
	assert.Equal(t, regID, p.RegistrationID)
	assert.Equal(t, "Asha Verma", p.HolderName)
	assert.Equal(t, int64(900), p.PaymentAmount)
	require.NotNil(t, p.Team)
	assert.Equal(t, "Code Crusaders", p.Team.TeamName)
	assert.Equal(t, 4, p.Team.TeamSize)
}

func TestBuildPayloadIndividualOmitsTeam(t *testing.T) {
	reg := &models.Registration{ID: regID, EventID: eventID, PaymentStatus: models.PaymentCompleted}
	event := &models.Event{ID: eventID, Title: "Solo Quiz"}
	holder := &models.User{ID: "user-1", FullName: "Ravi Kumar"}

	p := BuildPayload(reg, event, holder, nil)
	assert.False(t, p.IsTeam)
	assert.Nil(t, p.Team)
}

func TestPayloadRoundTrip(t *testing.T) {
	p := samplePayload()

	data, err := json.Marshal(p)
	require.NoError(t, err)

	decoded, err := DecodePayload(data)
	require.NoError(t, err)

	assert.Equal(t, p.RegistrationID, decoded.RegistrationID)
	assert.Equal(t, p.EventID, decoded.EventID)
	assert.Equal(t, p.TicketCode, decoded.TicketCode)
	assert.Equal(t, p.HolderEmail, decoded.HolderEmail)
	require.NotNil(t, decoded.Team)
	assert.Equal(t, p.Team.LeaderName, decoded.Team.LeaderName)
}

func TestDecodePayloadRejectsMalformed(t *testing.T) {
	_, err := DecodePayload([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodePayload([]byte(`{"ticket_code":"TICKET-X-Y"}`))
	assert.Error(t, err)
}

func TestEncodePNG(t *testing.T) {
	png, err := EncodePNG(samplePayload(), 256)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	// PNG magic header
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}
