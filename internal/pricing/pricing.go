package pricing

import (
	"fmt"

	"unifest/internal/models"
)

// TeamSizeError is returned when the requested team size falls outside the
// event's configured bounds.
type TeamSizeError struct {
	EventID  string
	TeamSize int
	Min      int
	Max      int
}

func (e *TeamSizeError) Error() string {
	return fmt.Sprintf("team size %d is outside the allowed range [%d, %d] for event %s",
		e.TeamSize, e.Min, e.Max, e.EventID)
}

// ConfigError is returned when custom tiered pricing is enabled but no tier
// covers the requested team size. The resolver never falls back to zero or
// an arbitrary tier.
type ConfigError struct {
	EventID  string
	TeamSize int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("no pricing tier covers team size %d for event %s", e.TeamSize, e.EventID)
}

// Resolve computes the amount due for a registration against the event's
// pricing configuration. Amounts are integer currency units. The result is
// advisory at the client boundary; the persistence layer re-executes the
// same computation at commit time.
func Resolve(event *models.Event, tiers []models.TeamPricingTier, isTeam bool, teamSize int) (int64, error) {
	if !isTeam {
		return event.IndividualPrice, nil
	}

	if err := CheckTeamSize(event, teamSize); err != nil {
		return 0, err
	}

	if !event.HasCustomTeamPricing {
		return event.TeamBasePrice + event.PricePerMember*int64(teamSize), nil
	}

	for _, tier := range tiers {
		if tier.EventID != event.ID {
			continue
		}
		if teamSize >= tier.MinMembers && teamSize <= tier.MaxMembers {
			return tier.Price, nil
		}
	}

	return 0, &ConfigError{EventID: event.ID, TeamSize: teamSize}
}

// CheckTeamSize validates the requested size against the event bounds.
// Unset bounds leave that side unconstrained.
func CheckTeamSize(event *models.Event, teamSize int) error {
	min, max := 1, teamSize
	if event.TeamSizeMin != nil {
		min = *event.TeamSizeMin
	}
	if event.TeamSizeMax != nil {
		max = *event.TeamSizeMax
	}

	if teamSize < min || teamSize > max {
		return &TeamSizeError{EventID: event.ID, TeamSize: teamSize, Min: min, Max: max}
	}
	return nil
}

// ValidateTiers rejects overlapping tier ranges for the same event. Gaps are
// allowed at write time; Resolve surfaces them as ConfigError when hit.
func ValidateTiers(tiers []models.TeamPricingTier) error {
	for i := range tiers {
		if tiers[i].MinMembers > tiers[i].MaxMembers {
			return fmt.Errorf("tier [%d, %d] has min greater than max",
				tiers[i].MinMembers, tiers[i].MaxMembers)
		}
		for j := i + 1; j < len(tiers); j++ {
			if tiers[i].EventID != tiers[j].EventID {
				continue
			}
			if tiers[i].MinMembers <= tiers[j].MaxMembers && tiers[j].MinMembers <= tiers[i].MaxMembers {
				return fmt.Errorf("tier [%d, %d] overlaps tier [%d, %d]",
					tiers[i].MinMembers, tiers[i].MaxMembers,
					tiers[j].MinMembers, tiers[j].MaxMembers)
			}
		}
	}
	return nil
}
