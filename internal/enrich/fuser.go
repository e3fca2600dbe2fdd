// Package enrich fuses raw per-fixture statistics into enriched feature records.
package enrich

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/samellow/matchsense/internal/apifootball"
	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/models"
)

// maxFormMatches caps how many recent finished matches feed form stats
const maxFormMatches = 10

// Fuser merges one fixture's sub-fetched statistics into a single
// EnrichedFixture record.
type Fuser struct {
	markets config.MarketsConfig
	logger  *logrus.Logger
}

// NewFuser creates a fuser with the given market filter configuration
func NewFuser(markets config.MarketsConfig, logger *logrus.Logger) *Fuser {
	return &Fuser{markets: markets, logger: logger}
}

// Fuse merges a fixture with its form, standings, head-to-head and odds
// data. Partial inputs are tolerated: empty slices and nil pointers leave
// the corresponding sections empty or unset.
func (f *Fuser) Fuse(
	fixture apifootball.FixturePayload,
	homeForm, awayForm []apifootball.FixturePayload,
	standings *apifootball.StandingsPayload,
	headToHead []apifootball.FixturePayload,
	odds *apifootball.OddsPayload,
) (*models.EnrichedFixture, error) {
	homeID := fixture.Teams.Home.ID
	awayID := fixture.Teams.Away.ID
	if homeID == 0 || awayID == 0 {
		return nil, fmt.Errorf("fixture %d is missing a team id", fixture.Fixture.ID)
	}

	homeResults := processForm(homeForm)
	awayResults := processForm(awayForm)

	enriched := &models.EnrichedFixture{
		FixtureID: fixture.Fixture.ID,
		HomeTeam: models.Team{
			ID:   homeID,
			Name: fixture.Teams.Home.Name,
			Logo: fixture.Teams.Home.Logo,
		},
		AwayTeam: models.Team{
			ID:   awayID,
			Name: fixture.Teams.Away.Name,
			Logo: fixture.Teams.Away.Logo,
		},
		League: models.League{
			ID:      fixture.League.ID,
			Name:    fixture.League.Name,
			Country: fixture.League.Country,
			Round:   fixture.League.Round,
		},
		KickoffTime:      fixture.Fixture.Date,
		Venue:            fixture.Fixture.Venue.Name,
		HomeTeamForm:     homeResults,
		AwayTeamForm:     awayResults,
		HomeTeamStats:    calculateFormStats(homeResults, homeID),
		AwayTeamStats:    calculateFormStats(awayResults, awayID),
		Standings:        processStandings(standings, homeID, awayID),
		HeadToHead:       processHeadToHead(headToHead),
		AvailableMarkets: f.processOdds(odds),
	}

	return enriched, nil
}

// processForm keeps only finished matches, at most the 10 most recent,
// and maps each into a compact result record
func processForm(matches []apifootball.FixturePayload) []models.MatchResult {
	results := make([]models.MatchResult, 0, maxFormMatches)
	for _, m := range matches {
		if m.Fixture.Status.Short != models.StatusFinished {
			continue
		}
		if len(results) == maxFormMatches {
			break
		}
		results = append(results, models.MatchResult{
			FixtureID:  m.Fixture.ID,
			Date:       m.Fixture.Date,
			HomeTeamID: m.Teams.Home.ID,
			AwayTeamID: m.Teams.Away.ID,
			HomeTeam:   m.Teams.Home.Name,
			AwayTeam:   m.Teams.Away.Name,
			HomeScore:  goals(m.Goals.Home),
			AwayScore:  goals(m.Goals.Away),
			League:     m.League.Name,
		})
	}
	return results
}

// calculateFormStats aggregates a team's recent results from the
// perspective of teamID
func calculateFormStats(matches []models.MatchResult, teamID int) models.TeamFormStats {
	stats := models.TeamFormStats{RecentMatches: len(matches)}
	if len(matches) == 0 {
		return stats
	}

	for _, match := range matches {
		isHome := match.HomeTeamID == teamID
		teamScore := match.HomeScore
		opponentScore := match.AwayScore
		if !isHome {
			teamScore, opponentScore = opponentScore, teamScore
		}

		stats.GoalsFor += teamScore
		stats.GoalsAgainst += opponentScore

		switch {
		case teamScore > opponentScore:
			stats.Wins++
		case teamScore == opponentScore:
			stats.Draws++
		default:
			stats.Losses++
		}

		if opponentScore == 0 {
			stats.CleanSheets++
		}
		if teamScore > 0 && opponentScore > 0 {
			stats.BTTS++
		}
		total := teamScore + opponentScore
		if total > 1 {
			stats.Over15Goals++
		}
		if total > 2 {
			stats.Over25Goals++
		}
	}

	n := float64(stats.RecentMatches)
	stats.GoalsForAverage = float64(stats.GoalsFor) / n
	stats.GoalsAgainstAverage = float64(stats.GoalsAgainst) / n

	return stats
}

// processStandings locates both sides in the first standings group.
// Either side missing leaves standings unset on the fixture.
func processStandings(standings *apifootball.StandingsPayload, homeID, awayID int) *models.FixtureStandings {
	if standings == nil || len(standings.League.Standings) == 0 {
		return nil
	}

	group := standings.League.Standings[0]
	var home, away *apifootball.StandingRow
	for i := range group {
		switch group[i].Team.ID {
		case homeID:
			home = &group[i]
		case awayID:
			away = &group[i]
		}
	}
	if home == nil || away == nil {
		return nil
	}

	return &models.FixtureStandings{
		Home: models.StandingEntry{
			Rank:      home.Rank,
			Points:    home.Points,
			GoalsDiff: home.GoalsDiff,
			Form:      home.Form,
		},
		Away: models.StandingEntry{
			Rank:      away.Rank,
			Points:    away.Points,
			GoalsDiff: away.GoalsDiff,
			Form:      away.Form,
		},
	}
}

// processHeadToHead keeps finished historical meetings between the pair
func processHeadToHead(matches []apifootball.FixturePayload) []models.HeadToHeadMatch {
	meetings := make([]models.HeadToHeadMatch, 0, len(matches))
	for _, m := range matches {
		if m.Fixture.Status.Short != models.StatusFinished {
			continue
		}
		homeScore := goals(m.Goals.Home)
		awayScore := goals(m.Goals.Away)
		meetings = append(meetings, models.HeadToHeadMatch{
			FixtureID:  m.Fixture.ID,
			Date:       m.Fixture.Date,
			HomeTeam:   m.Teams.Home.Name,
			AwayTeam:   m.Teams.Away.Name,
			HomeScore:  homeScore,
			AwayScore:  awayScore,
			HomeWinner: homeScore > awayScore,
		})
	}
	return meetings
}

// processOdds filters the first bookmaker's quoted bets to the allow-listed
// set and normalizes each surviving market/selection pair. Entries whose
// odds are non-numeric or non-positive are dropped.
func (f *Fuser) processOdds(odds *apifootball.OddsPayload) []models.MarketOdds {
	if odds == nil || len(odds.Bookmakers) == 0 {
		return []models.MarketOdds{}
	}

	// First bookmaker only; it is the provider's primary quote
	bookmaker := odds.Bookmakers[0]
	markets := make([]models.MarketOdds, 0, len(bookmaker.Bets))

	for _, bet := range bookmaker.Bets {
		if !IsAllowedMarket(f.markets, bet.Name, bet.ID) {
			continue
		}

		for _, value := range bet.Values {
			quote, err := decimal.NewFromString(value.Odd)
			if err != nil || !quote.IsPositive() {
				continue
			}

			markets = append(markets, models.MarketOdds{
				MarketID:   bet.ID,
				MarketName: bet.Name,
				Selection:  value.Value,
				Odds:       quote.InexactFloat64(),
				Normalized: NormalizeMarket(bet.Name, value.Value),
			})
		}
	}

	return markets
}

func goals(g *int) int {
	if g == nil {
		return 0
	}
	return *g
}
