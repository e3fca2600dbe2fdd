package enrich

import (
	"strings"

	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/models"
)

// IsAllowedMarket reports whether a quoted bet passes the market filter:
// its id must be on the allow-list and its display name must not contain
// any excluded keyword (case-insensitive).
func IsAllowedMarket(cfg config.MarketsConfig, marketName string, marketID int) bool {
	allowed := false
	for _, id := range cfg.AllowedMarketIDs {
		if id == marketID {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}

	upperName := strings.ToUpper(marketName)
	for _, keyword := range cfg.ExcludedKeywords {
		if strings.Contains(upperName, strings.ToUpper(keyword)) {
			return false
		}
	}
	return true
}

// NormalizeMarket maps a quoted market name and selection onto the
// canonical vocabulary using case-insensitive substring rules. Inputs
// that match no rule come back unchanged, which makes the function
// idempotent over already-canonical names.
func NormalizeMarket(marketName, selection string) models.MarketType {
	upperName := strings.ToUpper(marketName)
	upperSelection := strings.ToUpper(selection)

	// Double chance
	if strings.Contains(upperName, "DOUBLE CHANCE") || strings.Contains(upperName, "1X2") {
		if upperSelection == "1X" ||
			(strings.Contains(upperSelection, "HOME") && strings.Contains(upperSelection, "DRAW")) {
			return models.MarketDoubleChanceHomeDraw
		}
		if upperSelection == "X2" ||
			(strings.Contains(upperSelection, "AWAY") && strings.Contains(upperSelection, "DRAW")) {
			return models.MarketDoubleChanceDrawAway
		}
	}

	// Over/under goal lines
	if strings.Contains(upperName, "OVER") && strings.Contains(upperSelection, "1.5") {
		return models.MarketOver15
	}
	if strings.Contains(upperName, "UNDER") && strings.Contains(upperSelection, "4.5") {
		return models.MarketUnder45
	}

	// Both teams to score
	if strings.Contains(upperName, "BOTH TEAMS TO SCORE") || strings.Contains(upperName, "BTTS") {
		if upperSelection == "YES" || upperSelection == "TRUE" {
			return models.MarketBTTSYes
		}
		if upperSelection == "NO" || upperSelection == "FALSE" {
			return models.MarketBTTSNo
		}
	}

	// Team to score at least one goal
	if strings.Contains(upperName, "TEAM TO SCORE") {
		return models.MarketTeamToScore
	}

	return models.MarketType(marketName)
}
