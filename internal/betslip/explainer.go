package betslip

import (
	"fmt"
	"strings"

	"github.com/samellow/matchsense/internal/models"
)

// Fixed rationale templates per canonical market
var marketExplanations = map[models.MarketType]string{
	models.MarketBTTSYes: "Selected matches where both teams consistently score, " +
		"based on recent form showing high goal-scoring patterns and defensive vulnerabilities.",
	models.MarketBTTSNo: "Selected matches where at least one team has shown strong " +
		"defensive form with frequent clean sheets.",
	models.MarketOver15: "Selected matches based on teams with consistent goal production, " +
		"where both sides have scored at least 2 goals combined in the majority of recent matches.",
	models.MarketUnder45: "Selected matches featuring defensively stable teams with " +
		"low-scoring patterns in recent fixtures.",
	models.MarketDoubleChanceHomeDraw: "Selected matches where the home team has shown strong " +
		"home form or where draws are common, providing defensive stability.",
	models.MarketDoubleChanceDrawAway: "Selected matches where the away team has strong form " +
		"or where the home team has struggled, reducing reliance on a single outcome.",
}

// Explain converts a slip's selections into a short rationale grouped by
// market type. Multiple market groups are concatenated under a combined
// prefix; unrecognized markets fall back to a risk-band rationale.
func Explain(selections []models.ScoredMarket) string {
	if len(selections) == 0 {
		return "No selections available."
	}

	// Group selections by market, preserving first-seen order
	var order []models.MarketType
	groups := make(map[models.MarketType][]models.ScoredMarket)
	for _, selection := range selections {
		if _, seen := groups[selection.Market]; !seen {
			order = append(order, selection.Market)
		}
		groups[selection.Market] = append(groups[selection.Market], selection)
	}

	var explanations []string
	for _, market := range order {
		if explanation, ok := marketExplanations[market]; ok {
			explanations = append(explanations, explanation)
		}
	}

	if len(explanations) > 1 {
		return fmt.Sprintf("Selection combines %d picks: %s",
			len(selections), strings.Join(explanations, " "))
	}
	if len(explanations) == 1 {
		return explanations[0]
	}

	return riskBandExplanation(selections)
}

// riskBandExplanation is the fallback for slips made of unrecognized
// market types, keyed on the selections' average risk score
func riskBandExplanation(selections []models.ScoredMarket) string {
	total := 0
	for _, s := range selections {
		total += s.RiskScore
	}
	avgRisk := float64(total) / float64(len(selections))

	switch {
	case avgRisk <= 25:
		return "Selection based on teams with defensive stability and consistent " +
			"goal production in recent matches."
	case avgRisk <= 50:
		return "Targeting teams with strong recent form and favorable matchups " +
			"based on historical data and current standings."
	}
	return "Selected matches based on statistical analysis of team form, " +
		"goal trends, and league positions."
}
