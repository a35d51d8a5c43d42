package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"unifest/internal/models"
)

// TestClient wraps the API with typed helpers. Every request carries the
// basic-auth identity the client was created with.
type TestClient struct {
	BaseURL    string
	Email      string
	Password   string
	HTTPClient *http.Client
}

func NewTestClient(baseURL, email, password string) *TestClient {
	return &TestClient{
		BaseURL:  baseURL,
		Email:    email,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.SetBasicAuth(c.Email, c.Password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", string(data), err)
	}
}

func (c *TestClient) CreateEvent(t *testing.T, req models.CreateEventRequest) models.CreateEventResponse {
	resp := c.makeRequest(t, "POST", "/api/events", req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("CreateEvent: expected 201, got %d", resp.StatusCode)
	}

	var out models.CreateEventResponse
	decodeBody(t, resp, &out)
	return out
}

func (c *TestClient) ListEvents(t *testing.T) models.ListEventsResponse {
	resp := c.makeRequest(t, "GET", "/api/events", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ListEvents: expected 200, got %d", resp.StatusCode)
	}

	var out models.ListEventsResponse
	decodeBody(t, resp, &out)
	return out
}

func (c *TestClient) UpdateEventStatus(t *testing.T, eventID, status string) *http.Response {
	return c.makeRequest(t, "PATCH", "/api/events/"+eventID+"/status",
		models.UpdateEventStatusRequest{Status: status})
}

func (c *TestClient) CreateTier(t *testing.T, eventID string, req models.CreateTierRequest) *http.Response {
	return c.makeRequest(t, "POST", "/api/events/"+eventID+"/tiers", req)
}

func (c *TestClient) ListTiers(t *testing.T, eventID string) []models.TeamPricingTier {
	resp := c.makeRequest(t, "GET", "/api/events/"+eventID+"/tiers", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ListTiers: expected 200, got %d", resp.StatusCode)
	}

	var out []models.TeamPricingTier
	decodeBody(t, resp, &out)
	return out
}

func (c *TestClient) QuotePrice(t *testing.T, req models.PriceQuoteRequest) (*models.PriceQuoteResponse, *http.Response) {
	resp := c.makeRequest(t, "POST", "/api/registrations/quote", req)
	if resp.StatusCode != http.StatusOK {
		return nil, resp
	}

	var out models.PriceQuoteResponse
	decodeBody(t, resp, &out)
	return &out, resp
}

func (c *TestClient) CreateRegistration(t *testing.T, req models.CreateRegistrationRequest) (*models.CreateRegistrationResponse, *http.Response) {
	resp := c.makeRequest(t, "POST", "/api/registrations", req)
	if resp.StatusCode != http.StatusCreated {
		return nil, resp
	}

	var out models.CreateRegistrationResponse
	decodeBody(t, resp, &out)
	return &out, resp
}

func (c *TestClient) ListRegistrations(t *testing.T) models.ListRegistrationsResponse {
	resp := c.makeRequest(t, "GET", "/api/registrations", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ListRegistrations: expected 200, got %d", resp.StatusCode)
	}

	var out models.ListRegistrationsResponse
	decodeBody(t, resp, &out)
	return out
}

func (c *TestClient) CancelRegistration(t *testing.T, registrationID string) *http.Response {
	return c.makeRequest(t, "PATCH", "/api/registrations/cancel",
		models.CancelRegistrationRequest{RegistrationID: registrationID})
}

func (c *TestClient) GetRegistrationTicket(t *testing.T, registrationID string) (*models.Ticket, *http.Response) {
	resp := c.makeRequest(t, "GET", "/api/registrations/"+registrationID+"/ticket", nil)
	if resp.StatusCode != http.StatusOK {
		return nil, resp
	}

	var out models.Ticket
	decodeBody(t, resp, &out)
	return &out, resp
}

func (c *TestClient) GetTicketQR(t *testing.T, code string) *http.Response {
	return c.makeRequest(t, "GET", fmt.Sprintf("/api/tickets/%s/qr", code), nil)
}

func (c *TestClient) VerifyTicket(t *testing.T, payload string) (*models.VerifyTicketResponse, *http.Response) {
	resp := c.makeRequest(t, "POST", "/api/tickets/verify",
		models.VerifyTicketRequest{Payload: payload})
	if resp.StatusCode != http.StatusOK {
		return nil, resp
	}

	var out models.VerifyTicketResponse
	decodeBody(t, resp, &out)
	return &out, resp
}

func (c *TestClient) GetTeam(t *testing.T, teamID string) (*models.TeamDetailsResponse, *http.Response) {
	resp := c.makeRequest(t, "GET", "/api/teams/"+teamID, nil)
	if resp.StatusCode != http.StatusOK {
		return nil, resp
	}

	var out models.TeamDetailsResponse
	decodeBody(t, resp, &out)
	return &out, resp
}

func (c *TestClient) AddTeamMember(t *testing.T, teamID string, req models.AddTeamMemberRequest) *http.Response {
	return c.makeRequest(t, "POST", "/api/teams/"+teamID+"/members", req)
}
