package models

// MarketType is the canonical vocabulary every quoted market is
// normalized into before scoring.
type MarketType string

const (
	MarketDoubleChanceHomeDraw MarketType = "1X"
	MarketDoubleChanceDrawAway MarketType = "X2"
	MarketOver15               MarketType = "Over 1.5 Goals"
	MarketUnder45              MarketType = "Under 4.5 Goals"
	MarketBTTSYes              MarketType = "Both Teams To Score - Yes"
	MarketBTTSNo               MarketType = "Both Teams To Score - No"
	MarketTeamToScore          MarketType = "Team To Score - Yes"
)

// FavorsHome reports whether the market backs the home side
func (m MarketType) FavorsHome() bool {
	return m == MarketDoubleChanceHomeDraw
}

// FavorsAway reports whether the market backs the away side
func (m MarketType) FavorsAway() bool {
	return m == MarketDoubleChanceDrawAway
}

// Confidence is the coarse High/Medium/Low tier derived from a risk score
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// RiskBreakdown holds the six weighted sub-scores behind a risk score,
// kept for explainability and audit.
type RiskBreakdown struct {
	FormScore      int `json:"form_score"`
	GoalTrendScore int `json:"goal_trend_score"`
	DefensiveScore int `json:"defensive_score"`
	PositionScore  int `json:"position_score"`
	H2HScore       int `json:"h2h_score"`
	OddsScore      int `json:"odds_score"`
}

// ScoredMarket is one fixture+market combination with its 0-100 risk
// score (lower = safer). The same fixture may contribute several
// markets; fixture-level exclusivity is enforced by the optimizer.
type ScoredMarket struct {
	FixtureID  int           `json:"fixture_id"`
	HomeTeam   string        `json:"home_team"`
	AwayTeam   string        `json:"away_team"`
	League     string        `json:"league"`
	LeagueID   int           `json:"league_id"`
	Market     MarketType    `json:"market"`
	Odds       float64       `json:"odds"`
	RiskScore  int           `json:"risk_score"`
	Confidence Confidence    `json:"confidence"`
	Reasoning  RiskBreakdown `json:"reasoning"`
}
