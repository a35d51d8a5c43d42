package teams

import (
	"testing"

	"unifest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTeam() models.TeamDataInput {
	return models.TeamDataInput{
		TeamName:                "Code Crusaders",
		TeamLeaderName:          "Asha Verma",
		TeamLeaderEmail:         "asha@college.edu",
		TeamLeaderPhone:         "+91 98765 43210",
		TeamLeaderUniversityReg: "REG2024001",
		Members: []models.TeamMemberInput{
			{Name: "Ravi Kumar", Email: "ravi@college.edu", Phone: "9876543211", UniversityReg: "REG2024002"},
			{Name: "Meera Nair", Email: "meera@college.edu", Phone: "9876543212", UniversityReg: "REG2024003"},
		},
	}
}

func TestValidateTeamDataValid(t *testing.T) {
	result := ValidateTeamData(validTeam(), 3)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateTeamDataCollectsAllErrors(t *testing.T) {
	data := models.TeamDataInput{
		TeamName:        "ab",
		TeamLeaderName:  "",
		TeamLeaderEmail: "not-an-email",
		TeamLeaderPhone: "123",
		Members:         nil,
	}

	result := ValidateTeamData(data, 3)
	require.False(t, result.Valid)

	// Nothing short-circuits: every violated rule reports
	assert.Contains(t, result.Errors, "Team name must be at least 3 characters")
	assert.Contains(t, result.Errors, "Team leader name is required")
	assert.Contains(t, result.Errors, "Valid team leader email is required")
	assert.Contains(t, result.Errors, "Valid team leader phone number is required")
	assert.Contains(t, result.Errors, "Team leader university registration number is required")
	assert.Contains(t, result.Errors, "Total team size should be 3 (including leader)")
}

func TestValidateTeamDataErrorOrder(t *testing.T) {
	data := models.TeamDataInput{}
	first := ValidateTeamData(data, 2)
	second := ValidateTeamData(data, 2)

	require.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, "Team name must be at least 3 characters", first.Errors[0])
}

func TestValidateTeamDataLeaderCountsTowardSize(t *testing.T) {
	data := validTeam() // leader + 2 members

	assert.True(t, ValidateTeamData(data, 3).Valid)

	result := ValidateTeamData(data, 4)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Total team size should be 4 (including leader)")
}

func TestValidateTeamDataMemberErrorsIndexed(t *testing.T) {
	data := validTeam()
	data.Members[1].Email = "broken"
	data.Members[1].Phone = ""

	result := ValidateTeamData(data, 3)
	require.False(t, result.Valid)

	// Member indices are 1-based in messages
	assert.Contains(t, result.Errors, "Member 2: Valid email is required")
	assert.Contains(t, result.Errors, "Member 2: Valid phone number is required")
	assert.NotContains(t, result.Errors, "Member 1: Valid email is required")
}

func TestValidateTeamDataPure(t *testing.T) {
	data := validTeam()
	before := len(data.Members)

	for i := 0; i < 5; i++ {
		ValidateTeamData(data, 3)
	}

	assert.Equal(t, before, len(data.Members))
	assert.Equal(t, "Code Crusaders", data.TeamName)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last@sub.college.edu"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("no-at-sign"))
	assert.False(t, IsValidEmail("two@@example.com"))
	assert.False(t, IsValidEmail("user@nodot"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("9876543210"))
	assert.True(t, IsValidPhone("+91 98765 43210"))
	assert.True(t, IsValidPhone("(987) 654-3210"))
	assert.False(t, IsValidPhone(""))
	assert.False(t, IsValidPhone("12"))
	assert.False(t, IsValidPhone("abcdefghij"))
}
