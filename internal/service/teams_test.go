package service

import (
	"context"
	"testing"

	"unifest/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

// Update must reject fields the creation-time validation would reject,
// before anything touches storage.
func TestTeamUpdateFieldValidation(t *testing.T) {
	svc := NewTeamService(nil)

	cases := []struct {
		name string
		req  models.UpdateTeamRequest
	}{
		{"short team name", models.UpdateTeamRequest{TeamName: strPtr("ab")}},
		{"blank team name", models.UpdateTeamRequest{TeamName: strPtr("   ")}},
		{"short leader name", models.UpdateTeamRequest{TeamLeaderName: strPtr("A")}},
		{"blank leader name", models.UpdateTeamRequest{TeamLeaderName: strPtr("")}},
		{"invalid leader email", models.UpdateTeamRequest{TeamLeaderEmail: strPtr("not-an-email")}},
		{"invalid leader phone", models.UpdateTeamRequest{TeamLeaderPhone: strPtr("12")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), "team-1", &tc.req)
			assert.Error(t, err)
		})
	}
}

func TestAddMemberFieldValidation(t *testing.T) {
	svc := NewTeamService(nil)

	cases := []struct {
		name string
		req  models.AddTeamMemberRequest
	}{
		{"short name", models.AddTeamMemberRequest{Name: "A"}},
		{"invalid email", models.AddTeamMemberRequest{Name: "Ravi Kumar", Email: "nope"}},
		{"invalid phone", models.AddTeamMemberRequest{Name: "Ravi Kumar", Phone: "12"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.AddMember(context.Background(), "team-1", &tc.req)
			assert.Error(t, err)
		})
	}
}
