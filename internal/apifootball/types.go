package apifootball

import "time"

// Payload types mirror the API-Football v3 response shapes, trimmed to
// the fields the pipeline consumes.

// FixturePayload is one fixture entry from /fixtures or /fixtures/headtohead
type FixturePayload struct {
	Fixture FixtureInfo `json:"fixture"`
	League  LeagueInfo  `json:"league"`
	Teams   TeamsInfo   `json:"teams"`
	Goals   GoalsInfo   `json:"goals"`
}

// FixtureInfo holds scheduling and status details for a fixture
type FixtureInfo struct {
	ID        int        `json:"id"`
	Date      time.Time  `json:"date"`
	Timestamp int64      `json:"timestamp"`
	Venue     VenueInfo  `json:"venue"`
	Status    StatusInfo `json:"status"`
}

// VenueInfo identifies where a fixture is played
type VenueInfo struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// StatusInfo carries the fixture state; Short is one of the provider's
// status codes ("NS", "FT", "TBD", ...)
type StatusInfo struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

// LeagueInfo identifies the competition and round of a fixture
type LeagueInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Season  int    `json:"season"`
	Round   string `json:"round"`
}

// TeamsInfo pairs the two sides of a fixture
type TeamsInfo struct {
	Home TeamInfo `json:"home"`
	Away TeamInfo `json:"away"`
}

// TeamInfo identifies one team
type TeamInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner"`
}

// GoalsInfo carries the full-time score; nil before kickoff
type GoalsInfo struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// StandingsPayload is one league's table from /standings. Standings is a
// list of groups; single-table leagues have exactly one group.
type StandingsPayload struct {
	League struct {
		ID        int             `json:"id"`
		Name      string          `json:"name"`
		Country   string          `json:"country"`
		Season    int             `json:"season"`
		Standings [][]StandingRow `json:"standings"`
	} `json:"league"`
}

// StandingRow is one team's entry in a standings group
type StandingRow struct {
	Rank      int      `json:"rank"`
	Team      TeamInfo `json:"team"`
	Points    int      `json:"points"`
	GoalsDiff int      `json:"goalsDiff"`
	Group     string   `json:"group"`
	Form      string   `json:"form"`
}

// OddsPayload is one fixture's bookmaker odds from /odds
type OddsPayload struct {
	Fixture struct {
		ID int `json:"id"`
	} `json:"fixture"`
	Bookmakers []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one bookmaker's quoted bets for a fixture
type Bookmaker struct {
	ID   int            `json:"id"`
	Name string         `json:"name"`
	Bets []BookmakerBet `json:"bets"`
}

// BookmakerBet is one quoted market with its selection values
type BookmakerBet struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Values []BetValue `json:"values"`
}

// BetValue is one selection and its decimal odds, quoted as strings
type BetValue struct {
	Value string `json:"value"`
	Odd   string `json:"odd"`
}
