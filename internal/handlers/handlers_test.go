package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "unifest/internal/errors"
	"unifest/internal/pricing"
	"unifest/internal/service"
	"unifest/internal/teams"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests here exercise request binding and error mapping; the full request
// paths run against a live stack in tests/integration.

func setupRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	{
		events := api.Group("/events")
		{
			events.POST("", h.CreateEvent)
			events.POST("/:id/tiers", h.CreateTier)
			events.PATCH("/:id/status", h.UpdateEventStatus)
		}

		registrations := api.Group("/registrations")
		{
			registrations.POST("", h.CreateRegistration)
			registrations.PATCH("/cancel", h.CancelRegistration)
			registrations.POST("/quote", h.QuotePrice)
		}

		tickets := api.Group("/tickets")
		{
			tickets.POST("/verify", h.VerifyTicket)
		}
	}

	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("POST", path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateEventRejectsMissingFields(t *testing.T) {
	r := setupRouter(NewHandlers(nil))

	w := postJSON(t, r, "/api/events", `{"title":"Hackathon"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEventRejectsInvalidJSON(t *testing.T) {
	r := setupRouter(NewHandlers(nil))

	w := postJSON(t, r, "/api/events", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRegistrationRequiresEventID(t *testing.T) {
	r := setupRouter(NewHandlers(nil))

	w := postJSON(t, r, "/api/registrations", `{"is_team":true,"team_size":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelRegistrationRequiresID(t *testing.T) {
	r := setupRouter(NewHandlers(nil))

	req, err := http.NewRequest("PATCH", "/api/registrations/cancel", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuotePriceRequiresEventID(t *testing.T) {
	r := setupRouter(NewHandlers(nil))

	w := postJSON(t, r, "/api/registrations/quote", `{"team_size":4}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyTicketRequiresPayload(t *testing.T) {
	r := setupRouter(NewHandlers(nil))

	w := postJSON(t, r, "/api/tickets/verify", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestRespondErrorTeamValidation(t *testing.T) {
	h := NewHandlers(nil)
	c, w := testContext()

	err := &service.TeamValidationError{Result: teams.ValidationResult{
		Valid:  false,
		Errors: []string{"Team name must be at least 3 characters"},
	}}
	h.respondError(c, err, "Failed to create registration")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid team data", body["error"])
	assert.Len(t, body["errors"], 1)
}

func TestRespondErrorPricing(t *testing.T) {
	h := NewHandlers(nil)

	c, w := testContext()
	h.respondError(c, &pricing.TeamSizeError{TeamSize: 1, Min: 2, Max: 10}, "fallback")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	c, w = testContext()
	h.respondError(c, &pricing.ConfigError{EventID: "evt-1", TeamSize: 9}, "fallback")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRespondErrorTeamPersistence(t *testing.T) {
	h := NewHandlers(nil)
	c, w := testContext()

	err := &apperrors.TeamPersistenceError{RegistrationID: "reg-42", Err: errors.New("insert failed")}
	h.respondError(c, err, "fallback")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "reg-42", body["registration_id"])
}

func TestRespondErrorSentinels(t *testing.T) {
	h := NewHandlers(nil)

	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrEventNotFound, http.StatusNotFound},
		{apperrors.ErrRegistrationNotFound, http.StatusNotFound},
		{apperrors.ErrTeamNotFound, http.StatusNotFound},
		{apperrors.ErrTicketNotFound, http.StatusNotFound},
		{apperrors.ErrRegistrationClosed, http.StatusConflict},
		{apperrors.ErrCapacityFull, http.StatusConflict},
		{apperrors.ErrTicketNotPaid, http.StatusConflict},
		{apperrors.ErrTicketUsed, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		c, w := testContext()
		h.respondError(c, tc.err, "fallback")
		assert.Equal(t, tc.status, w.Code, "error: %v", tc.err)
	}
}
