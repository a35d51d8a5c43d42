package integration

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"unifest/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:8080"
	OrganizerEmail   = "organizer1@unifest.dev"
	StudentEmail     = "student1@unifest.dev"
	SeedPassword     = "password123"
	ticketWaitPeriod = 10 * time.Second
)

func baseURL() string {
	if url := os.Getenv("INTEGRATION_BASE_URL"); url != "" {
		return url
	}
	return DefaultBaseURL
}

// requireServer skips the suite unless a running stack is reachable. The
// suite expects the generator's seed users to exist.
func requireServer(t *testing.T) {
	t.Helper()

	resp, err := http.Get(baseURL() + "/health")
	if err != nil {
		t.Skipf("API not reachable at %s: %v", baseURL(), err)
	}
	resp.Body.Close()
}

func organizerClient() *TestClient {
	return NewTestClient(baseURL(), OrganizerEmail, SeedPassword)
}

func studentClient() *TestClient {
	return NewTestClient(baseURL(), StudentEmail, SeedPassword)
}

func intPtr(v int) *int {
	return &v
}

// createPublishedEvent creates an event and moves it to published so it
// accepts registrations.
func createPublishedEvent(t *testing.T, organizer *TestClient, req models.CreateEventRequest) string {
	t.Helper()

	created := organizer.CreateEvent(t, req)
	resp := organizer.UpdateEventStatus(t, created.ID, "published")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("publish event: expected 200, got %d", resp.StatusCode)
	}
	return created.ID
}

func individualEventRequest(price int64) models.CreateEventRequest {
	start := time.Now().AddDate(0, 1, 0)
	deadline := start.AddDate(0, 0, -2)
	return models.CreateEventRequest{
		Title:                fmt.Sprintf("Solo Quiz %d", time.Now().UnixNano()),
		Description:          "Individual quiz event created by the integration suite",
		ParticipationType:    "individual",
		StartDate:            start,
		EndDate:              start.Add(6 * time.Hour),
		Location:             "Main Auditorium",
		RegistrationDeadline: &deadline,
		IndividualPrice:      price,
	}
}

func teamEventRequest(basePrice, perMember int64) models.CreateEventRequest {
	start := time.Now().AddDate(0, 1, 0)
	deadline := start.AddDate(0, 0, -2)
	return models.CreateEventRequest{
		Title:             fmt.Sprintf("Hackathon %d", time.Now().UnixNano()),
		Description:       "Team hackathon created by the integration suite",
		ParticipationType: "team",
		TeamSizeMin:       intPtr(2),
		TeamSizeMax:       intPtr(10),
		StartDate:         start,
		EndDate:           start.Add(48 * time.Hour),
		Location:          "Innovation Lab",
		RegistrationDeadline: &deadline,
		TeamBasePrice:        basePrice,
		PricePerMember:       perMember,
	}
}

func validTeamData(memberCount int) *models.TeamDataInput {
	members := make([]models.TeamMemberInput, memberCount)
	for i := range members {
		members[i] = models.TeamMemberInput{
			Name:          fmt.Sprintf("Member %d", i+1),
			Email:         fmt.Sprintf("member%d@college.edu", i+1),
			Phone:         "9876543210",
			UniversityReg: fmt.Sprintf("REG2024%03d", i+1),
		}
	}
	return &models.TeamDataInput{
		TeamName:                "Code Crusaders",
		TeamLeaderName:          "Asha Verma",
		TeamLeaderEmail:         "asha@college.edu",
		TeamLeaderPhone:         "9876543211",
		TeamLeaderUniversityReg: "REG2024100",
		Members:                 members,
	}
}

// waitForTicket polls for the ticket the consumers issue asynchronously
func waitForTicket(t *testing.T, client *TestClient, registrationID string) *models.Ticket {
	t.Helper()

	deadline := time.Now().Add(ticketWaitPeriod)
	for time.Now().Before(deadline) {
		ticket, resp := client.GetRegistrationTicket(t, registrationID)
		if ticket != nil {
			return ticket
		}
		resp.Body.Close()
		time.Sleep(500 * time.Millisecond)
	}
	return nil
}
