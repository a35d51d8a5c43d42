package teams

import (
	"fmt"
	"regexp"
	"strings"

	"unifest/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`)
)

// ValidationResult collects every rule violation in order; Valid is true only
// when Errors is empty.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateTeamData checks team composition and member contact data before any
// remote call. Pure function: all rules are evaluated, nothing short-circuits,
// and identical input always yields an identical result.
func ValidateTeamData(data models.TeamDataInput, teamSize int) ValidationResult {
	var errs []string

	if strings.TrimSpace(data.TeamName) == "" || len(strings.TrimSpace(data.TeamName)) < 3 {
		errs = append(errs, "Team name must be at least 3 characters")
	}

	if strings.TrimSpace(data.TeamLeaderName) == "" || len(strings.TrimSpace(data.TeamLeaderName)) < 2 {
		errs = append(errs, "Team leader name is required")
	}

	if data.TeamLeaderEmail == "" || !IsValidEmail(data.TeamLeaderEmail) {
		errs = append(errs, "Valid team leader email is required")
	}

	if data.TeamLeaderPhone == "" || !IsValidPhone(data.TeamLeaderPhone) {
		errs = append(errs, "Valid team leader phone number is required")
	}

	if len(strings.TrimSpace(data.TeamLeaderUniversityReg)) < 3 {
		errs = append(errs, "Team leader university registration number is required")
	}

	// The leader counts as one member
	if len(data.Members)+1 != teamSize {
		errs = append(errs, fmt.Sprintf("Total team size should be %d (including leader)", teamSize))
	}

	for i, member := range data.Members {
		if len(strings.TrimSpace(member.Name)) < 2 {
			errs = append(errs, fmt.Sprintf("Member %d: Name is required", i+1))
		}
		if member.Email == "" || !IsValidEmail(member.Email) {
			errs = append(errs, fmt.Sprintf("Member %d: Valid email is required", i+1))
		}
		if member.Phone == "" || !IsValidPhone(member.Phone) {
			errs = append(errs, fmt.Sprintf("Member %d: Valid phone number is required", i+1))
		}
		if len(strings.TrimSpace(member.UniversityReg)) < 3 {
			errs = append(errs, fmt.Sprintf("Member %d: University registration number is required", i+1))
		}
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// IsValidEmail reports whether the address has a single @ and a dotted domain
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone reports whether the number matches the tolerated
// international grouping. Whitespace is stripped before matching.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.ReplaceAll(phone, " ", ""))
}
