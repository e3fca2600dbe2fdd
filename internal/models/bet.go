package models

import (
	"time"

	"github.com/google/uuid"
)

// JSON field names on the bet types below are the public API shape and
// must stay camelCase.

// BetSelection is one chosen market on one fixture inside a slip
type BetSelection struct {
	FixtureID int        `json:"fixtureId"`
	HomeTeam  string     `json:"homeTeam"`
	AwayTeam  string     `json:"awayTeam"`
	League    string     `json:"league"`
	Market    MarketType `json:"market"`
	Odds      float64    `json:"odds"`
	RiskScore int        `json:"riskScore"`
}

// GeneratedBet is a finished slip. TotalOdds equals the product of the
// selections' odds rounded to 2 decimals, and selections reference
// distinct fixtures.
type GeneratedBet struct {
	TotalOdds   float64        `json:"totalOdds"`
	Confidence  Confidence     `json:"confidence"`
	Selections  []BetSelection `json:"selections"`
	Explanation string         `json:"explanation"`
}

// BetGenerationResult is the terminal artifact of one generation run.
// Either slip is nil when no combination satisfied that profile.
type BetGenerationResult struct {
	Date       string        `json:"date"`
	LowRisk    *GeneratedBet `json:"lowRisk"`
	MediumRisk *GeneratedBet `json:"mediumRisk"`
}

// BetRecord is a persisted generation result
type BetRecord struct {
	ID        uuid.UUID           `db:"id" json:"id"`
	Date      string              `db:"bet_date" json:"date"`
	Result    BetGenerationResult `db:"result" json:"result"`
	CreatedAt time.Time           `db:"created_at" json:"createdAt"`
}
