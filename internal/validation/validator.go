package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"unifest/internal/models"
)

// APIValidator smoke-tests a running instance against its contract.
type APIValidator struct {
	baseURL  string
	email    string
	password string
}

func NewAPIValidator(baseURL, email, password string) *APIValidator {
	return &APIValidator{
		baseURL:  baseURL,
		email:    email,
		password: password,
	}
}

// ValidateAll walks the public surface end to end: events, a registration
// with a quote, and the payment redirect endpoints.
func (v *APIValidator) ValidateAll() error {
	log.Println("Starting API validation...")

	eventID, err := v.validateEvents()
	if err != nil {
		return fmt.Errorf("events validation failed: %w", err)
	}

	if err := v.validateRegistrations(eventID); err != nil {
		return fmt.Errorf("registrations validation failed: %w", err)
	}

	if err := v.validatePayments(); err != nil {
		return fmt.Errorf("payments validation failed: %w", err)
	}

	log.Println("All endpoints validated successfully")
	return nil
}

func (v *APIValidator) validateEvents() (string, error) {
	log.Println("Validating events endpoints...")

	start := time.Now().AddDate(0, 1, 0)
	reqBody := models.CreateEventRequest{
		Title:             "Validation Event",
		Description:       "Smoke test event",
		ParticipationType: models.ParticipationBoth,
		StartDate:         start,
		EndDate:           start.Add(6 * time.Hour),
		Location:          "Main Hall",
	}

	resp, err := v.makeRequest("POST", "/api/events", reqBody)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("POST /api/events: expected 201, got %d", resp.StatusCode)
	}

	var createResp models.CreateEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return "", fmt.Errorf("POST /api/events: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if createResp.ID == "" {
		return "", fmt.Errorf("POST /api/events: expected non-empty id")
	}

	resp, err = v.makeRequest("GET", "/api/events", nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET /api/events: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = v.makeRequest("GET", "/api/events/"+createResp.ID+"/tiers", nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET /api/events/:id/tiers: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	log.Println("Events endpoints OK")
	return createResp.ID, nil
}

func (v *APIValidator) validateRegistrations(eventID string) error {
	log.Println("Validating registrations endpoints...")

	quoteReq := models.PriceQuoteRequest{
		EventID: eventID,
	}
	resp, err := v.makeRequest("POST", "/api/registrations/quote", quoteReq)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST /api/registrations/quote: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = v.makeRequest("GET", "/api/registrations", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/registrations: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	log.Println("Registrations endpoints OK")
	return nil
}

func (v *APIValidator) validatePayments() error {
	log.Println("Validating payments endpoints...")

	resp, err := v.makeRequest("GET", "/api/payments/fail?paymentId=validation", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/payments/fail: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	log.Println("Payments endpoints OK")
	return nil
}

func (v *APIValidator) makeRequest(method, path string, body interface{}) (*http.Response, error) {
	var req *http.Request
	var err error

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		req, err = http.NewRequest(method, v.baseURL+path, bytes.NewBuffer(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, v.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
	}

	req.SetBasicAuth(v.email, v.password)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}

// RunValidation smoke-tests the instance named by VALIDATE_BASE_URL, using
// the seeded organizer credentials unless overridden.
func RunValidation() {
	baseURL := os.Getenv("VALIDATE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	email := os.Getenv("VALIDATE_EMAIL")
	if email == "" {
		email = "organizer1@unifest.dev"
	}
	password := os.Getenv("VALIDATE_PASSWORD")
	if password == "" {
		password = "password123"
	}

	validator := NewAPIValidator(baseURL, email, password)
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}
}
