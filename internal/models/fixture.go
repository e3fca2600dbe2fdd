package models

import "time"

// Provider fixture status short codes
const (
	StatusFinished   = "FT"
	StatusNotStarted = "NS"
	StatusTBD        = "TBD"
)

// Team identifies one side of a fixture
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// League identifies the competition a fixture belongs to
type League struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Round   string `json:"round,omitempty"`
}

// MatchResult is one finished match in a team's recent form.
// Team IDs are carried alongside names so the subject team's
// perspective can be resolved without name matching.
type MatchResult struct {
	FixtureID  int       `json:"fixture_id"`
	Date       time.Time `json:"date"`
	HomeTeamID int       `json:"home_team_id"`
	AwayTeamID int       `json:"away_team_id"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	League     string    `json:"league"`
}

// TeamFormStats aggregates a team's recent finished matches.
// When RecentMatches is 0 every rate is 0 and the record means
// "insufficient data", not "zero risk".
type TeamFormStats struct {
	RecentMatches       int     `json:"recent_matches"`
	Wins                int     `json:"wins"`
	Draws               int     `json:"draws"`
	Losses              int     `json:"losses"`
	GoalsFor            int     `json:"goals_for"`
	GoalsAgainst        int     `json:"goals_against"`
	GoalsForAverage     float64 `json:"goals_for_average"`
	GoalsAgainstAverage float64 `json:"goals_against_average"`
	CleanSheets         int     `json:"clean_sheets"`
	BTTS                int     `json:"btts"`
	Over15Goals         int     `json:"over_15_goals"`
	Over25Goals         int     `json:"over_25_goals"`
}

// WinRate returns the share of recent matches won
func (s TeamFormStats) WinRate() float64 {
	if s.RecentMatches == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.RecentMatches)
}

// CleanSheetRate returns the share of recent matches without conceding
func (s TeamFormStats) CleanSheetRate() float64 {
	if s.RecentMatches == 0 {
		return 0
	}
	return float64(s.CleanSheets) / float64(s.RecentMatches)
}

// BTTSRate returns the share of recent matches where both teams scored
func (s TeamFormStats) BTTSRate() float64 {
	if s.RecentMatches == 0 {
		return 0
	}
	return float64(s.BTTS) / float64(s.RecentMatches)
}

// Over15Rate returns the share of recent matches with more than 1.5 total goals
func (s TeamFormStats) Over15Rate() float64 {
	if s.RecentMatches == 0 {
		return 0
	}
	return float64(s.Over15Goals) / float64(s.RecentMatches)
}

// Over25Rate returns the share of recent matches with more than 2.5 total goals
func (s TeamFormStats) Over25Rate() float64 {
	if s.RecentMatches == 0 {
		return 0
	}
	return float64(s.Over25Goals) / float64(s.RecentMatches)
}

// StandingEntry is one team's position in the league table
type StandingEntry struct {
	Rank      int    `json:"rank"`
	Points    int    `json:"points"`
	GoalsDiff int    `json:"goals_diff"`
	Form      string `json:"form,omitempty"`
}

// FixtureStandings pairs both sides' league table entries
type FixtureStandings struct {
	Home StandingEntry `json:"home"`
	Away StandingEntry `json:"away"`
}

// HeadToHeadMatch is one finished historical meeting between the two teams
type HeadToHeadMatch struct {
	FixtureID  int       `json:"fixture_id"`
	Date       time.Time `json:"date"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	HomeWinner bool      `json:"home_winner"`
}

// IsDraw reports whether the meeting ended level
func (m HeadToHeadMatch) IsDraw() bool {
	return m.HomeScore == m.AwayScore
}

// BothScored reports whether both teams scored in the meeting
func (m HeadToHeadMatch) BothScored() bool {
	return m.HomeScore > 0 && m.AwayScore > 0
}

// MarketOdds is one bookmaker-quoted market/selection pair that survived
// filtering. Odds are always positive; invalid quotes are dropped upstream.
type MarketOdds struct {
	MarketID   int        `json:"market_id"`
	MarketName string     `json:"market_name"`
	Selection  string     `json:"selection"`
	Odds       float64    `json:"odds"`
	Normalized MarketType `json:"normalized_market"`
}

// EnrichedFixture merges a fixture's raw statistics into one record.
// It is built once per generation run and never mutated afterwards.
type EnrichedFixture struct {
	FixtureID        int               `json:"fixture_id"`
	HomeTeam         Team              `json:"home_team"`
	AwayTeam         Team              `json:"away_team"`
	League           League            `json:"league"`
	KickoffTime      time.Time         `json:"kickoff_time"`
	Venue            string            `json:"venue,omitempty"`
	HomeTeamForm     []MatchResult     `json:"home_team_form"`
	AwayTeamForm     []MatchResult     `json:"away_team_form"`
	HomeTeamStats    TeamFormStats     `json:"home_team_stats"`
	AwayTeamStats    TeamFormStats     `json:"away_team_stats"`
	Standings        *FixtureStandings `json:"standings,omitempty"`
	HeadToHead       []HeadToHeadMatch `json:"head_to_head"`
	AvailableMarkets []MarketOdds      `json:"available_markets"`
}
