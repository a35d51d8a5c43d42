package pricing

import (
	"testing"

	"unifest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func formulaEvent() *models.Event {
	return &models.Event{
		ID:              "evt-1",
		IndividualPrice: 300,
		TeamBasePrice:   500,
		PricePerMember:  100,
		TeamSizeMin:     intPtr(2),
		TeamSizeMax:     intPtr(10),
	}
}

func tieredEvent() *models.Event {
	return &models.Event{
		ID:                   "evt-2",
		IndividualPrice:      300,
		TeamSizeMin:          intPtr(2),
		TeamSizeMax:          intPtr(10),
		HasCustomTeamPricing: true,
	}
}

func tiersFor(eventID string) []models.TeamPricingTier {
	return []models.TeamPricingTier{
		{EventID: eventID, MinMembers: 2, MaxMembers: 4, Price: 1000},
		{EventID: eventID, MinMembers: 5, MaxMembers: 8, Price: 1800},
	}
}

func TestResolveIndividual(t *testing.T) {
	amount, err := Resolve(formulaEvent(), nil, false, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(300), amount)
}

func TestResolveTeamFormula(t *testing.T) {
	// base 500 + 100 per member * 4 members
	amount, err := Resolve(formulaEvent(), nil, true, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(900), amount)
}

func TestResolveTieredPricing(t *testing.T) {
	event := tieredEvent()
	tiers := tiersFor(event.ID)

	amount, err := Resolve(event, tiers, true, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), amount)

	amount, err = Resolve(event, tiers, true, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), amount)

	amount, err = Resolve(event, tiers, true, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), amount)
}

func TestResolveTierGap(t *testing.T) {
	event := tieredEvent()
	// No tier covers sizes 9 and 10 even though the bounds allow them
	_, err := Resolve(event, tiersFor(event.ID), true, 9)
	require.Error(t, err)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, event.ID, configErr.EventID)
	assert.Equal(t, 9, configErr.TeamSize)
}

func TestResolveIgnoresForeignTiers(t *testing.T) {
	event := tieredEvent()
	_, err := Resolve(event, tiersFor("other-event"), true, 3)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestResolveTeamSizeBounds(t *testing.T) {
	event := formulaEvent()

	_, err := Resolve(event, nil, true, 1)
	var sizeErr *TeamSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 1, sizeErr.TeamSize)
	assert.Equal(t, 2, sizeErr.Min)
	assert.Equal(t, 10, sizeErr.Max)

	_, err = Resolve(event, nil, true, 11)
	require.ErrorAs(t, err, &sizeErr)
}

func TestResolveUnsetBoundsUnconstrained(t *testing.T) {
	event := &models.Event{
		ID:             "evt-3",
		TeamBasePrice:  500,
		PricePerMember: 100,
	}

	amount, err := Resolve(event, nil, true, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), amount)
}

func TestResolveIndividualSkipsSizeCheck(t *testing.T) {
	// Individual registrations never hit team bounds
	event := formulaEvent()
	amount, err := Resolve(event, nil, false, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(300), amount)
}

func TestResolveDeterministic(t *testing.T) {
	event := tieredEvent()
	tiers := tiersFor(event.ID)

	first, err := Resolve(event, tiers, true, 5)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Resolve(event, tiers, true, 5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveNonNegative(t *testing.T) {
	event := formulaEvent()
	for size := 2; size <= 10; size++ {
		amount, err := Resolve(event, nil, true, size)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, amount, int64(0))
	}
}

func TestValidateTiers(t *testing.T) {
	valid := tiersFor("evt")
	assert.NoError(t, ValidateTiers(valid))

	overlapping := []models.TeamPricingTier{
		{EventID: "evt", MinMembers: 2, MaxMembers: 5, Price: 1000},
		{EventID: "evt", MinMembers: 5, MaxMembers: 8, Price: 1800},
	}
	assert.Error(t, ValidateTiers(overlapping))

	inverted := []models.TeamPricingTier{
		{EventID: "evt", MinMembers: 6, MaxMembers: 2, Price: 1000},
	}
	assert.Error(t, ValidateTiers(inverted))

	// Same ranges on different events never conflict
	separate := []models.TeamPricingTier{
		{EventID: "evt-a", MinMembers: 2, MaxMembers: 4, Price: 1000},
		{EventID: "evt-b", MinMembers: 2, MaxMembers: 4, Price: 1500},
	}
	assert.NoError(t, ValidateTiers(separate))
}
