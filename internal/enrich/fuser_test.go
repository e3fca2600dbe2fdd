package enrich

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samellow/matchsense/internal/apifootball"
	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/models"
)

func testMarketsConfig() config.MarketsConfig {
	return config.MarketsConfig{
		AllowedMarketIDs: []int{1, 2, 5, 8, 12},
		ExcludedKeywords: []string{"Correct Score", "Corners", "Cards", "Special"},
	}
}

func testFuser() *Fuser {
	return NewFuser(testMarketsConfig(), logrus.New())
}

func intPtr(v int) *int { return &v }

func finishedMatch(fixtureID, homeID, awayID, homeGoals, awayGoals int) apifootball.FixturePayload {
	return apifootball.FixturePayload{
		Fixture: apifootball.FixtureInfo{
			ID:     fixtureID,
			Date:   time.Date(2026, 8, 1, 15, 0, 0, 0, time.UTC),
			Status: apifootball.StatusInfo{Short: models.StatusFinished},
		},
		Teams: apifootball.TeamsInfo{
			Home: apifootball.TeamInfo{ID: homeID, Name: "Home"},
			Away: apifootball.TeamInfo{ID: awayID, Name: "Away"},
		},
		Goals: apifootball.GoalsInfo{Home: intPtr(homeGoals), Away: intPtr(awayGoals)},
	}
}

func upcomingFixture(fixtureID, homeID, awayID int) apifootball.FixturePayload {
	f := finishedMatch(fixtureID, homeID, awayID, 0, 0)
	f.Fixture.Status.Short = models.StatusNotStarted
	f.Goals = apifootball.GoalsInfo{}
	f.League = apifootball.LeagueInfo{ID: 39, Name: "Premier League", Round: "Regular Season - 3"}
	return f
}

func TestCalculateFormStatsPerspective(t *testing.T) {
	// Team 10 plays twice at home and once away
	results := []models.MatchResult{
		{HomeTeamID: 10, AwayTeamID: 20, HomeScore: 2, AwayScore: 0},
		{HomeTeamID: 10, AwayTeamID: 30, HomeScore: 1, AwayScore: 1},
		{HomeTeamID: 40, AwayTeamID: 10, HomeScore: 3, AwayScore: 1},
	}

	stats := calculateFormStats(results, 10)

	assert.Equal(t, 3, stats.RecentMatches)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 4, stats.GoalsFor)
	assert.Equal(t, 4, stats.GoalsAgainst)
	assert.Equal(t, 1, stats.CleanSheets)
	assert.Equal(t, 2, stats.BTTS)
	assert.Equal(t, 3, stats.Over15Goals)
	assert.Equal(t, 1, stats.Over25Goals)
	assert.InDelta(t, 4.0/3.0, stats.GoalsForAverage, 1e-9)
}

func TestProcessFormFiltersAndCaps(t *testing.T) {
	var matches []apifootball.FixturePayload
	for i := 0; i < 15; i++ {
		matches = append(matches, finishedMatch(i+1, 10, 20, 1, 0))
	}
	// Unfinished matches never count toward form
	live := finishedMatch(99, 10, 20, 1, 0)
	live.Fixture.Status.Short = "1H"
	matches = append([]apifootball.FixturePayload{live}, matches...)

	results := processForm(matches)
	assert.Len(t, results, 10)
	for _, r := range results {
		assert.NotEqual(t, 99, r.FixtureID)
	}
}

func TestIsAllowedMarket(t *testing.T) {
	cfg := testMarketsConfig()

	tests := []struct {
		name     string
		market   string
		marketID int
		allowed  bool
	}{
		{"allowed market", "Match Winner", 1, true},
		{"id not on allow-list", "Exact Goals Number", 38, false},
		{"excluded keyword", "Corners Over/Under", 5, false},
		{"excluded keyword case-insensitive", "Total CORNERS", 8, false},
		{"keyword inside longer name", "Red Cards Total", 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, IsAllowedMarket(cfg, tt.market, tt.marketID))
		})
	}
}

func TestNormalizeMarket(t *testing.T) {
	tests := []struct {
		market    string
		selection string
		expected  models.MarketType
	}{
		{"Double Chance", "Home/Draw", models.MarketDoubleChanceHomeDraw},
		{"Double Chance", "1X", models.MarketDoubleChanceHomeDraw},
		{"Double Chance", "Draw/Away", models.MarketDoubleChanceDrawAway},
		{"Double Chance", "X2", models.MarketDoubleChanceDrawAway},
		{"Goals Over/Under", "Over 1.5", models.MarketOver15},
		{"Goals Over/Under", "Under 4.5", models.MarketUnder45},
		{"Both Teams To Score", "Yes", models.MarketBTTSYes},
		{"Both Teams To Score", "No", models.MarketBTTSNo},
		{"Home Team To Score", "Yes", models.MarketTeamToScore},
		{"Unknown Market", "Whatever", models.MarketType("Unknown Market")},
	}

	for _, tt := range tests {
		t.Run(tt.market+"/"+tt.selection, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeMarket(tt.market, tt.selection))
		})
	}
}

func TestNormalizeMarketIdempotent(t *testing.T) {
	canonical := []models.MarketType{
		models.MarketOver15,
		models.MarketUnder45,
		models.MarketBTTSYes,
		models.MarketBTTSNo,
		models.MarketTeamToScore,
	}
	for _, market := range canonical {
		selection := ""
		switch market {
		case models.MarketOver15:
			selection = "Over 1.5"
		case models.MarketUnder45:
			selection = "Under 4.5"
		case models.MarketBTTSYes:
			selection = "Yes"
		case models.MarketBTTSNo:
			selection = "No"
		}
		assert.Equal(t, market, NormalizeMarket(string(market), selection))
	}
}

func TestFuseRequiresTeamIDs(t *testing.T) {
	fixture := upcomingFixture(1, 10, 0)

	_, err := testFuser().Fuse(fixture, nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestFuseTolerantOfMissingData(t *testing.T) {
	fixture := upcomingFixture(1, 10, 20)

	enriched, err := testFuser().Fuse(fixture, nil, nil, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, enriched.FixtureID)
	assert.Equal(t, 0, enriched.HomeTeamStats.RecentMatches)
	assert.Nil(t, enriched.Standings)
	assert.Empty(t, enriched.HeadToHead)
	assert.Empty(t, enriched.AvailableMarkets)
}

func TestFuseFiltersOddsMarkets(t *testing.T) {
	fixture := upcomingFixture(1, 10, 20)
	odds := &apifootball.OddsPayload{
		Bookmakers: []apifootball.Bookmaker{{
			ID:   6,
			Name: "Primary",
			Bets: []apifootball.BookmakerBet{
				{
					ID:   5,
					Name: "Goals Over/Under",
					Values: []apifootball.BetValue{
						{Value: "Over 1.5", Odd: "1.25"},
						{Value: "Under 4.5", Odd: "not-a-number"},
						{Value: "Over 3.5", Odd: "0"},
					},
				},
				{
					ID:   5,
					Name: "Corners Over/Under",
					Values: []apifootball.BetValue{
						{Value: "Over 8.5", Odd: "1.80"},
					},
				},
				{
					ID:   99,
					Name: "Exotic",
					Values: []apifootball.BetValue{
						{Value: "Pick", Odd: "2.00"},
					},
				},
			},
		}},
	}

	enriched, err := testFuser().Fuse(fixture, nil, nil, nil, nil, odds)
	require.NoError(t, err)

	require.Len(t, enriched.AvailableMarkets, 1)
	m := enriched.AvailableMarkets[0]
	assert.Equal(t, models.MarketOver15, m.Normalized)
	assert.Equal(t, 1.25, m.Odds)
}

func TestFuseUsesFirstBookmakerOnly(t *testing.T) {
	fixture := upcomingFixture(1, 10, 20)
	odds := &apifootball.OddsPayload{
		Bookmakers: []apifootball.Bookmaker{
			{
				Bets: []apifootball.BookmakerBet{{
					ID:     5,
					Name:   "Goals Over/Under",
					Values: []apifootball.BetValue{{Value: "Over 1.5", Odd: "1.30"}},
				}},
			},
			{
				Bets: []apifootball.BookmakerBet{{
					ID:     5,
					Name:   "Goals Over/Under",
					Values: []apifootball.BetValue{{Value: "Over 1.5", Odd: "1.99"}},
				}},
			},
		},
	}

	enriched, err := testFuser().Fuse(fixture, nil, nil, nil, nil, odds)
	require.NoError(t, err)

	require.Len(t, enriched.AvailableMarkets, 1)
	assert.Equal(t, 1.30, enriched.AvailableMarkets[0].Odds)
}
