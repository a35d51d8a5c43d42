package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"unifest/internal/models"
	"unifest/internal/ticketing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerForFreeEvent(t *testing.T, organizer, student *TestClient) (string, *models.CreateRegistrationResponse) {
	t.Helper()

	eventID := createPublishedEvent(t, organizer, individualEventRequest(0))
	reg, resp := student.CreateRegistration(t, models.CreateRegistrationRequest{EventID: eventID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return eventID, reg
}

func TestFreeRegistrationGetsTicket(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID, reg := registerForFreeEvent(t, organizer, student)

	ticket := waitForTicket(t, student, reg.ID)
	require.NotNil(t, ticket, "ticket was not issued for a free registration")

	assert.Equal(t, ticketing.Code(reg.ID, eventID), ticket.TicketCode)
	assert.True(t, strings.HasPrefix(ticket.TicketCode, "TICKET-"))
	assert.True(t, ticket.IsValid)
}

func TestTicketLookupAndQR(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	_, reg := registerForFreeEvent(t, organizer, student)

	ticket := waitForTicket(t, student, reg.ID)
	require.NotNil(t, ticket)

	resp := student.makeRequest(t, "GET", "/api/tickets/"+ticket.TicketCode, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Ticket  models.Ticket     `json:"ticket"`
		Payload ticketing.Payload `json:"payload"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, ticket.TicketCode, body.Payload.TicketCode)
	assert.Equal(t, reg.ID, body.Payload.RegistrationID)

	qrResp := student.GetTicketQR(t, ticket.TicketCode)
	defer qrResp.Body.Close()
	require.Equal(t, http.StatusOK, qrResp.StatusCode)
	assert.Equal(t, "image/png", qrResp.Header.Get("Content-Type"))

	png, err := io.ReadAll(qrResp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))
}

func TestVerifyTicketSingleUse(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	_, reg := registerForFreeEvent(t, organizer, student)

	ticket := waitForTicket(t, student, reg.ID)
	require.NotNil(t, ticket)

	lookupResp := student.makeRequest(t, "GET", "/api/tickets/"+ticket.TicketCode, nil)
	require.Equal(t, http.StatusOK, lookupResp.StatusCode)

	var body struct {
		Payload ticketing.Payload `json:"payload"`
	}
	decodeBody(t, lookupResp, &body)

	rawPayload, err := json.Marshal(body.Payload)
	require.NoError(t, err)

	verdict, resp := organizer.VerifyTicket(t, string(rawPayload))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, verdict.Valid, "first scan should pass: %s", verdict.Reason)
	assert.Equal(t, ticket.TicketCode, verdict.TicketCode)

	// Second scan of the same ticket is rejected
	verdict, resp = organizer.VerifyTicket(t, string(rawPayload))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "Ticket already used", verdict.Reason)
	assert.NotNil(t, verdict.UsedAt)
}

func TestVerifyRejectsMalformedPayload(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()

	verdict, resp := organizer.VerifyTicket(t, "not a ticket payload")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, verdict.Valid)
}

func TestVerifyRequiresOrganizerRole(t *testing.T) {
	requireServer(t)
	student := studentClient()

	resp := student.makeRequest(t, "POST", "/api/tickets/verify",
		models.VerifyTicketRequest{Payload: "{}"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVerifyRejectsMismatchedRegistration(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	_, regA := registerForFreeEvent(t, organizer, student)
	_, regB := registerForFreeEvent(t, organizer, student)

	ticketA := waitForTicket(t, student, regA.ID)
	require.NotNil(t, ticketA)
	require.NotNil(t, waitForTicket(t, student, regB.ID))

	lookupResp := student.makeRequest(t, "GET", "/api/tickets/"+ticketA.TicketCode, nil)
	require.Equal(t, http.StatusOK, lookupResp.StatusCode)
	var body struct {
		Payload ticketing.Payload `json:"payload"`
	}
	decodeBody(t, lookupResp, &body)

	// Splice another completed registration's id into ticket A's payload
	forged := body.Payload
	forged.RegistrationID = regB.ID
	rawForged, err := json.Marshal(forged)
	require.NoError(t, err)

	verdict, resp := organizer.VerifyTicket(t, string(rawForged))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "Ticket does not belong to this registration", verdict.Reason)

	// The forged scan must not have consumed ticket A
	rawGenuine, err := json.Marshal(body.Payload)
	require.NoError(t, err)
	verdict, resp = organizer.VerifyTicket(t, string(rawGenuine))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, verdict.Valid, "genuine scan rejected: %s", verdict.Reason)
}

func TestPendingPaymentHasNoTicket(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, individualEventRequest(300))
	reg, resp := student.CreateRegistration(t, models.CreateRegistrationRequest{EventID: eventID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEqual(t, "completed", reg.PaymentStatus)

	// No ticket may exist before the gateway confirms payment, including
	// after the consumers have processed registration.created.
	for i := 0; i < 4; i++ {
		ticket, ticketResp := student.GetRegistrationTicket(t, reg.ID)
		ticketResp.Body.Close()
		assert.Nil(t, ticket)
		assert.Equal(t, http.StatusNotFound, ticketResp.StatusCode)
		time.Sleep(500 * time.Millisecond)
	}
}

func TestCancelledRegistrationTicketFailsVerification(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	_, reg := registerForFreeEvent(t, organizer, student)

	ticket := waitForTicket(t, student, reg.ID)
	require.NotNil(t, ticket)

	lookupResp := student.makeRequest(t, "GET", "/api/tickets/"+ticket.TicketCode, nil)
	require.Equal(t, http.StatusOK, lookupResp.StatusCode)
	var body struct {
		Payload ticketing.Payload `json:"payload"`
	}
	decodeBody(t, lookupResp, &body)

	cancelResp := student.CancelRegistration(t, reg.ID)
	cancelResp.Body.Close()
	require.Equal(t, http.StatusOK, cancelResp.StatusCode)

	rawPayload, err := json.Marshal(body.Payload)
	require.NoError(t, err)

	verdict, resp := organizer.VerifyTicket(t, string(rawPayload))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, verdict.Valid)
}
