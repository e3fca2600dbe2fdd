package betslip

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/models"
)

func testGenerator() *Generator {
	return NewGenerator(
		config.ProfilesConfig{
			LowRisk:    lowRiskProfile(),
			MediumRisk: mediumRiskProfile(),
		},
		config.ConfidenceCuts{High: 25, Medium: 50},
		logrus.New(),
	)
}

func leagueMarket(fixtureID int, league string, odds float64, risk int) models.ScoredMarket {
	m := market(fixtureID, odds, risk)
	m.League = league
	m.HomeTeam = "Home"
	m.AwayTeam = "Away"
	return m
}

func TestGenerateBothProfiles(t *testing.T) {
	markets := []models.ScoredMarket{
		leagueMarket(1, "Premier League", 1.35, 15),
		leagueMarket(2, "La Liga", 1.25, 20),
		leagueMarket(3, "Serie A", 1.28, 18),
		leagueMarket(4, "Bundesliga", 1.40, 25),
		leagueMarket(5, "Ligue 1", 1.45, 30),
		leagueMarket(6, "Eredivisie", 1.50, 35),
		leagueMarket(7, "Primeira Liga", 1.55, 40),
	}

	result := testGenerator().Generate("2026-08-30", markets)

	assert.Equal(t, "2026-08-30", result.Date)

	require.NotNil(t, result.LowRisk)
	assert.GreaterOrEqual(t, result.LowRisk.TotalOdds, 2.0)
	assert.LessOrEqual(t, result.LowRisk.TotalOdds, 3.0)
	assert.NotEmpty(t, result.LowRisk.Explanation)

	require.NotNil(t, result.MediumRisk)
	assert.Len(t, result.MediumRisk.Selections, 7)
	assert.GreaterOrEqual(t, result.MediumRisk.TotalOdds, 8.5)
	assert.LessOrEqual(t, result.MediumRisk.TotalOdds, 11.5)
	assert.Equal(t, models.ConfidenceMedium, result.MediumRisk.Confidence)
}

func TestGenerateNilSlipWhenInfeasible(t *testing.T) {
	// One safe market cannot satisfy the medium profile's 4-pick minimum
	markets := []models.ScoredMarket{
		leagueMarket(1, "Premier League", 2.5, 15),
	}

	result := testGenerator().Generate("2026-08-30", markets)

	require.NotNil(t, result.LowRisk)
	assert.Nil(t, result.MediumRisk)
}

func TestGenerateEmptyMarkets(t *testing.T) {
	result := testGenerator().Generate("2026-08-30", nil)

	assert.Nil(t, result.LowRisk)
	assert.Nil(t, result.MediumRisk)
}

func TestGenerateTotalOddsMatchesSelections(t *testing.T) {
	markets := []models.ScoredMarket{
		leagueMarket(1, "Premier League", 1.35, 15),
		leagueMarket(2, "La Liga", 1.25, 20),
		leagueMarket(3, "Serie A", 1.28, 18),
	}

	result := testGenerator().Generate("2026-08-30", markets)
	require.NotNil(t, result.LowRisk)

	product := 1.0
	for _, s := range result.LowRisk.Selections {
		product *= s.Odds
	}
	assert.InDelta(t, product, result.LowRisk.TotalOdds, 0.01)
}

func TestBalanceLeaguesCapsPerLeague(t *testing.T) {
	selections := []models.ScoredMarket{
		leagueMarket(1, "Premier League", 1.3, 10),
		leagueMarket(2, "Premier League", 1.3, 20),
		leagueMarket(3, "Premier League", 1.3, 30),
		leagueMarket(4, "La Liga", 1.3, 15),
		leagueMarket(5, "La Liga", 1.3, 25),
	}

	balanced := balanceLeagues(selections, 2)

	// Dropping one of five keeps 80%, exactly at the safety floor
	require.Len(t, balanced, 4)
	perLeague := make(map[string]int)
	for _, s := range balanced {
		perLeague[s.League]++
	}
	assert.Equal(t, 2, perLeague["Premier League"])
	assert.Equal(t, 2, perLeague["La Liga"])

	// The riskiest Premier League pick is the one dropped
	for _, s := range balanced {
		assert.NotEqual(t, 3, s.FixtureID)
	}
}

func TestBalanceLeaguesRevertsWhenTooDestructive(t *testing.T) {
	selections := []models.ScoredMarket{
		leagueMarket(1, "Premier League", 1.3, 10),
		leagueMarket(2, "Premier League", 1.3, 20),
		leagueMarket(3, "Premier League", 1.3, 30),
		leagueMarket(4, "Premier League", 1.3, 40),
	}

	// Capping at 2 would halve the slip, below the 80% floor
	balanced := balanceLeagues(selections, 2)
	assert.Equal(t, selections, balanced)
}

func TestSlipConfidenceCuts(t *testing.T) {
	g := testGenerator()

	tests := []struct {
		avgRisk  float64
		expected models.Confidence
	}{
		{10, models.ConfidenceHigh},
		{25, models.ConfidenceHigh},
		{25.1, models.ConfidenceMedium},
		{50, models.ConfidenceMedium},
		{50.1, models.ConfidenceLow},
		{90, models.ConfidenceLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, g.slipConfidence(tt.avgRisk), "avg risk %.1f", tt.avgRisk)
	}
}
