package scoring

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/models"
)

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		Weights: config.ScoringWeights{
			RecentForm:         0.25,
			GoalTrends:         0.20,
			DefensiveStability: 0.20,
			LeaguePositionGap:  0.15,
			HistoricalMatchup:  0.10,
			OddsStability:      0.10,
		},
		MinFormMatches:   5,
		MinHeadToHead:    3,
		MarketConfidence: config.ConfidenceCuts{High: 20, Medium: 45},
		SlipConfidence:   config.ConfidenceCuts{High: 25, Medium: 50},
	}
}

func testScorer() *Scorer {
	return NewScorer(testScoringConfig(), logrus.New())
}

// formStats builds stats for n matches with the given outcome splits
func formStats(wins, draws, losses, goalsFor, goalsAgainst, cleanSheets, btts, over15, over25 int) models.TeamFormStats {
	n := wins + draws + losses
	stats := models.TeamFormStats{
		RecentMatches: n,
		Wins:          wins,
		Draws:         draws,
		Losses:        losses,
		GoalsFor:      goalsFor,
		GoalsAgainst:  goalsAgainst,
		CleanSheets:   cleanSheets,
		BTTS:          btts,
		Over15Goals:   over15,
		Over25Goals:   over25,
	}
	if n > 0 {
		stats.GoalsForAverage = float64(goalsFor) / float64(n)
		stats.GoalsAgainstAverage = float64(goalsAgainst) / float64(n)
	}
	return stats
}

func bareFixture(marketType models.MarketType, odds float64) models.EnrichedFixture {
	return models.EnrichedFixture{
		FixtureID: 100,
		HomeTeam:  models.Team{ID: 1, Name: "Alpha"},
		AwayTeam:  models.Team{ID: 2, Name: "Beta"},
		League:    models.League{ID: 39, Name: "Premier League"},
		AvailableMarkets: []models.MarketOdds{
			{MarketID: 5, MarketName: "Goals Over/Under", Selection: "Over 1.5", Odds: odds, Normalized: marketType},
		},
	}
}

func TestScoreSparseFixtureIsNeutral(t *testing.T) {
	// No form, standings or head-to-head data: every statistical factor
	// falls back to 50, and odds of 2.5 also band to 50
	fixture := bareFixture(models.MarketOver15, 2.5)

	scored := testScorer().Score([]models.EnrichedFixture{fixture})
	require.Len(t, scored, 1)

	assert.Equal(t, 50, scored[0].RiskScore)
	assert.Equal(t, models.ConfidenceLow, scored[0].Confidence)
}

func TestScoreRangeInvariant(t *testing.T) {
	fixtures := []models.EnrichedFixture{
		bareFixture(models.MarketOver15, 1.05),
		bareFixture(models.MarketBTTSYes, 1.5),
		bareFixture(models.MarketUnder45, 7.0),
	}
	fixtures[1].HomeTeamStats = formStats(9, 1, 0, 30, 2, 8, 1, 10, 9)
	fixtures[1].AwayTeamStats = formStats(0, 1, 9, 2, 30, 0, 1, 10, 9)

	scored := testScorer().Score(fixtures)
	require.Len(t, scored, 3)
	for _, m := range scored {
		assert.GreaterOrEqual(t, m.RiskScore, 0)
		assert.LessOrEqual(t, m.RiskScore, 100)
	}
}

func TestScoreSortedAscending(t *testing.T) {
	fixtures := []models.EnrichedFixture{
		bareFixture(models.MarketOver15, 7.0),
		bareFixture(models.MarketOver15, 1.3),
		bareFixture(models.MarketOver15, 2.5),
	}

	scored := testScorer().Score(fixtures)
	require.Len(t, scored, 3)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i].RiskScore, scored[i-1].RiskScore)
	}
}

func TestScoreOddsStabilityBands(t *testing.T) {
	tests := []struct {
		odds     float64
		expected float64
	}{
		{1.05, 30},
		{1.1, 20},
		{1.3, 20},
		{1.5, 20},
		{1.8, 35},
		{2.0, 35},
		{2.5, 50},
		{3.0, 50},
		{4.0, 70},
		{5.0, 70},
		{8.0, 85},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, scoreOddsStability(tt.odds), "odds %.2f", tt.odds)
	}
}

func TestScoreGoalTrendsBands(t *testing.T) {
	scorer := testScorer()

	// Both sides over 1.5 in 9 of 10 recent matches
	fixture := bareFixture(models.MarketOver15, 1.5)
	fixture.HomeTeamStats = formStats(5, 3, 2, 15, 8, 3, 5, 9, 6)
	fixture.AwayTeamStats = formStats(4, 3, 3, 14, 9, 2, 5, 9, 6)

	market := fixture.AvailableMarkets[0]
	assert.Equal(t, 20.0, scorer.scoreGoalTrends(&fixture, market))

	// Thin form data is neutral
	fixture.HomeTeamStats = formStats(2, 1, 1, 5, 3, 1, 2, 3, 2)
	assert.Equal(t, neutralScore, scorer.scoreGoalTrends(&fixture, market))
}

func TestScoreLeaguePositionGap(t *testing.T) {
	scorer := testScorer()

	tests := []struct {
		name     string
		homeRank int
		awayRank int
		market   models.MarketType
		expected float64
	}{
		{"wide gap favoring home side", 1, 15, models.MarketDoubleChanceHomeDraw, 16},
		{"wide gap neutral market", 1, 15, models.MarketOver15, 20},
		{"moderate gap", 4, 10, models.MarketOver15, 35},
		{"small gap", 5, 8, models.MarketOver15, 50},
		{"adjacent ranks", 5, 6, models.MarketOver15, 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := bareFixture(tt.market, 1.5)
			fixture.AvailableMarkets[0].Normalized = tt.market
			fixture.Standings = &models.FixtureStandings{
				Home: models.StandingEntry{Rank: tt.homeRank},
				Away: models.StandingEntry{Rank: tt.awayRank},
			}
			assert.Equal(t, tt.expected, scorer.scoreLeaguePosition(&fixture, fixture.AvailableMarkets[0]))
		})
	}
}

func TestScoreHistoricalMatchupNeedsMeetings(t *testing.T) {
	scorer := testScorer()

	fixture := bareFixture(models.MarketDoubleChanceHomeDraw, 1.5)
	fixture.HeadToHead = []models.HeadToHeadMatch{
		{HomeScore: 2, AwayScore: 0, HomeWinner: true},
		{HomeScore: 1, AwayScore: 1},
	}

	// Two meetings is below the minimum of three
	assert.Equal(t, neutralScore, scorer.scoreHistoricalMatchup(&fixture, fixture.AvailableMarkets[0]))

	fixture.HeadToHead = append(fixture.HeadToHead,
		models.HeadToHeadMatch{HomeScore: 3, AwayScore: 1, HomeWinner: true},
		models.HeadToHeadMatch{HomeScore: 2, AwayScore: 1, HomeWinner: true},
		models.HeadToHeadMatch{HomeScore: 0, AwayScore: 0},
	)

	// Home won or drew all five meetings
	assert.Equal(t, 20.0, scorer.scoreHistoricalMatchup(&fixture, fixture.AvailableMarkets[0]))
}

func TestMarketConfidenceTiers(t *testing.T) {
	scorer := testScorer()

	assert.Equal(t, models.ConfidenceHigh, scorer.MarketConfidence(15))
	assert.Equal(t, models.ConfidenceHigh, scorer.MarketConfidence(20))
	assert.Equal(t, models.ConfidenceMedium, scorer.MarketConfidence(21))
	assert.Equal(t, models.ConfidenceMedium, scorer.MarketConfidence(45))
	assert.Equal(t, models.ConfidenceLow, scorer.MarketConfidence(46))
}

func TestScoreBreakdownSumsNearTotal(t *testing.T) {
	fixture := bareFixture(models.MarketOver15, 1.5)
	fixture.HomeTeamStats = formStats(5, 3, 2, 15, 8, 3, 5, 9, 6)
	fixture.AwayTeamStats = formStats(4, 3, 3, 14, 9, 2, 5, 9, 6)

	scored := testScorer().Score([]models.EnrichedFixture{fixture})
	require.Len(t, scored, 1)

	b := scored[0].Reasoning
	sum := b.FormScore + b.GoalTrendScore + b.DefensiveScore + b.PositionScore + b.H2HScore + b.OddsScore

	// Components are rounded individually, so the sum can drift from the
	// rounded total by a few points
	assert.InDelta(t, scored[0].RiskScore, sum, 3)
}
