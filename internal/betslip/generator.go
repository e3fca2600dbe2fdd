package betslip

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/models"
)

// minKeepRatio is the league-diversity safety floor: when rebalancing
// would discard more than 20% of a slip's selections, the original slip
// is kept unchanged.
const minKeepRatio = 0.8

// Generator turns scored markets into the two fixed-profile slips
type Generator struct {
	profiles config.ProfilesConfig
	slipCuts config.ConfidenceCuts
	logger   *logrus.Logger
}

// NewGenerator creates a generator with the given profiles and slip
// confidence cut points
func NewGenerator(profiles config.ProfilesConfig, slipCuts config.ConfidenceCuts, logger *logrus.Logger) *Generator {
	return &Generator{
		profiles: profiles,
		slipCuts: slipCuts,
		logger:   logger,
	}
}

// Generate runs both profiles over the scored markets. Either slip is nil
// when its profile's constraints cannot be met.
func (g *Generator) Generate(date string, markets []models.ScoredMarket) models.BetGenerationResult {
	return models.BetGenerationResult{
		Date:       date,
		LowRisk:    g.generateSlip("low_risk", markets, g.profiles.LowRisk),
		MediumRisk: g.generateSlip("medium_risk", markets, g.profiles.MediumRisk),
	}
}

// generateSlip optimizes one profile and assembles the final slip. The
// slip confidence comes from the optimizer's average risk score; the
// league-diversity pass, when configured, may rebalance the selections
// afterwards, so total odds are recomputed from the final set.
func (g *Generator) generateSlip(profileName string, markets []models.ScoredMarket, profile config.BetProfile) *models.GeneratedBet {
	combo := Optimize(markets, profile)
	if combo == nil {
		g.logger.WithField("profile", profileName).Info("No feasible combination for profile")
		return nil
	}

	selections := combo.Selections
	if profile.MaxPerLeague > 0 {
		selections = balanceLeagues(selections, profile.MaxPerLeague)
	}

	bet := &models.GeneratedBet{
		TotalOdds:   RoundOdds(productOfOdds(selections)),
		Confidence:  g.slipConfidence(combo.AverageRiskScore),
		Selections:  toSelections(selections),
		Explanation: Explain(selections),
	}

	g.logger.WithFields(logrus.Fields{
		"profile":    profileName,
		"selections": len(bet.Selections),
		"total_odds": bet.TotalOdds,
		"confidence": bet.Confidence,
	}).Info("Slip assembled")

	return bet
}

// balanceLeagues caps any league at maxPerLeague selections, keeping the
// safest picks, unless doing so would discard more than 20% of the slip.
func balanceLeagues(selections []models.ScoredMarket, maxPerLeague int) []models.ScoredMarket {
	sorted := make([]models.ScoredMarket, len(selections))
	copy(sorted, selections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RiskScore < sorted[j].RiskScore
	})

	balanced := make([]models.ScoredMarket, 0, len(sorted))
	perLeague := make(map[string]int)
	for _, selection := range sorted {
		if perLeague[selection.League] < maxPerLeague {
			balanced = append(balanced, selection)
			perLeague[selection.League]++
		}
	}

	if float64(len(balanced)) < float64(len(selections))*minKeepRatio {
		return selections
	}

	return balanced
}

// slipConfidence derives the slip-level tier from the combination's
// average risk score. The cut points differ from the per-market tiers.
func (g *Generator) slipConfidence(averageRiskScore float64) models.Confidence {
	switch {
	case averageRiskScore <= g.slipCuts.High:
		return models.ConfidenceHigh
	case averageRiskScore <= g.slipCuts.Medium:
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}

func productOfOdds(selections []models.ScoredMarket) float64 {
	total := 1.0
	for _, s := range selections {
		total *= s.Odds
	}
	return total
}

func toSelections(markets []models.ScoredMarket) []models.BetSelection {
	selections := make([]models.BetSelection, len(markets))
	for i, m := range markets {
		selections[i] = models.BetSelection{
			FixtureID: m.FixtureID,
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			League:    m.League,
			Market:    m.Market,
			Odds:      m.Odds,
			RiskScore: m.RiskScore,
		}
	}
	return selections
}
