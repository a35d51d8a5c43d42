package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"unifest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIndividualPrice(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, individualEventRequest(300))

	quote, resp := student.QuotePrice(t, models.PriceQuoteRequest{EventID: eventID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(300), quote.Amount)
	assert.Equal(t, 1, quote.TeamSize)
}

func TestQuoteTeamFormula(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, teamEventRequest(500, 100))

	quote, resp := student.QuotePrice(t, models.PriceQuoteRequest{
		EventID:  eventID,
		IsTeam:   models.FlexibleBool(true),
		TeamSize: 4,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(900), quote.Amount)
}

func TestQuoteTierPricing(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	req := teamEventRequest(500, 100)
	req.HasCustomTeamPricing = models.FlexibleBool(true)
	eventID := createPublishedEvent(t, organizer, req)

	for _, tier := range []models.CreateTierRequest{
		{MinMembers: 2, MaxMembers: 4, Price: 1000},
		{MinMembers: 5, MaxMembers: 8, Price: 1800},
	} {
		resp := organizer.CreateTier(t, eventID, tier)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	quote, resp := student.QuotePrice(t, models.PriceQuoteRequest{
		EventID: eventID, IsTeam: models.FlexibleBool(true), TeamSize: 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1000), quote.Amount)

	quote, resp = student.QuotePrice(t, models.PriceQuoteRequest{
		EventID: eventID, IsTeam: models.FlexibleBool(true), TeamSize: 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1800), quote.Amount)

	// Size 9 is inside the bounds but no tier covers it
	_, resp = student.QuotePrice(t, models.PriceQuoteRequest{
		EventID: eventID, IsTeam: models.FlexibleBool(true), TeamSize: 9,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestQuoteRejectsOutOfBoundsTeamSize(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, teamEventRequest(500, 100))

	_, resp := student.QuotePrice(t, models.PriceQuoteRequest{
		EventID: eventID, IsTeam: models.FlexibleBool(true), TeamSize: 1,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestTeamRegistrationValidationErrors(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, teamEventRequest(500, 100))

	team := validTeamData(2)
	team.TeamName = "ab"
	team.Members[0].Email = "not-an-email"

	_, resp := student.CreateRegistration(t, models.CreateRegistrationRequest{
		EventID:  eventID,
		IsTeam:   models.FlexibleBool(true),
		TeamSize: 3,
		Team:     team,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Error  string   `json:"error"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Contains(t, body.Errors, "Team name must be at least 3 characters")
	assert.Contains(t, body.Errors, "Member 1: Valid email is required")
}

func TestFreeEventRegistrationCompletesImmediately(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, individualEventRequest(0))

	reg, resp := student.CreateRegistration(t, models.CreateRegistrationRequest{EventID: eventID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(0), reg.PaymentAmount)
	assert.Equal(t, "completed", reg.PaymentStatus)
	assert.Empty(t, reg.PaymentURL)
}

func TestPaidRegistrationStartsPaymentFlow(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, individualEventRequest(300))

	reg, resp := student.CreateRegistration(t, models.CreateRegistrationRequest{EventID: eventID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(300), reg.PaymentAmount)
	assert.NotEqual(t, "completed", reg.PaymentStatus)
}

func TestTeamRegistrationCreatesTeam(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, teamEventRequest(0, 0))

	reg, resp := student.CreateRegistration(t, models.CreateRegistrationRequest{
		EventID:  eventID,
		IsTeam:   models.FlexibleBool(true),
		TeamSize: 3,
		Team:     validTeamData(2),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, reg.TeamID)

	details, teamResp := student.GetTeam(t, *reg.TeamID)
	require.Equal(t, http.StatusOK, teamResp.StatusCode)
	assert.Equal(t, "Code Crusaders", details.Team.TeamName)

	// Leader row plus two members
	assert.Len(t, details.Members, 3)
	leaders := 0
	for _, m := range details.Members {
		if m.IsLeader {
			leaders++
		}
	}
	assert.Equal(t, 1, leaders)
}

func TestCancelRegistration(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, individualEventRequest(0))

	reg, resp := student.CreateRegistration(t, models.CreateRegistrationRequest{EventID: eventID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	cancelResp := student.CancelRegistration(t, reg.ID)
	cancelResp.Body.Close()
	assert.Equal(t, http.StatusOK, cancelResp.StatusCode)

	// Cancelling someone else's registration is forbidden
	other := NewTestClient(baseURL(), "student2@unifest.dev", SeedPassword)
	reg2, resp2 := student.CreateRegistration(t, models.CreateRegistrationRequest{EventID: eventID})
	require.Equal(t, http.StatusCreated, resp2.StatusCode)

	forbidden := other.CancelRegistration(t, reg2.ID)
	forbidden.Body.Close()
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)
}

func TestListRegistrationsShowsOwnOnly(t *testing.T) {
	requireServer(t)
	organizer := organizerClient()
	student := studentClient()

	eventID := createPublishedEvent(t, organizer, individualEventRequest(0))

	reg, resp := student.CreateRegistration(t, models.CreateRegistrationRequest{EventID: eventID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	listed := student.ListRegistrations(t)
	found := false
	for _, item := range listed {
		if item.ID == reg.ID {
			found = true
		}
	}
	assert.True(t, found, "own registration missing from listing")

	other := NewTestClient(baseURL(), "student3@unifest.dev", SeedPassword)
	for _, item := range other.ListRegistrations(t) {
		assert.NotEqual(t, reg.ID, item.ID, "foreign registration leaked into listing")
	}
}

func TestEventCreationRequiresOrganizerRole(t *testing.T) {
	requireServer(t)
	student := studentClient()

	resp := student.makeRequest(t, "POST", "/api/events", individualEventRequest(0))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
