// Package scoring converts enriched fixtures into risk-scored markets.
package scoring

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/metrics"
	"github.com/samellow/matchsense/internal/models"
)

// neutralScore is the fallback when a factor has insufficient data
const neutralScore = 50.0

// Scorer computes 0-100 risk scores for every market on every enriched
// fixture. Scoring is pure: the same fixtures and configuration always
// produce the same scores.
type Scorer struct {
	cfg    config.ScoringConfig
	logger *logrus.Logger
}

// NewScorer creates a scorer with the given scoring configuration
func NewScorer(cfg config.ScoringConfig, logger *logrus.Logger) *Scorer {
	return &Scorer{cfg: cfg, logger: logger}
}

// Score produces one ScoredMarket per (fixture, market) pair, globally
// sorted ascending by risk score so the safest markets come first.
func (s *Scorer) Score(fixtures []models.EnrichedFixture) []models.ScoredMarket {
	scored := make([]models.ScoredMarket, 0, len(fixtures)*4)

	for i := range fixtures {
		fixture := &fixtures[i]
		for _, market := range fixture.AvailableMarkets {
			total, breakdown := s.scoreMarket(fixture, market)

			scored = append(scored, models.ScoredMarket{
				FixtureID:  fixture.FixtureID,
				HomeTeam:   fixture.HomeTeam.Name,
				AwayTeam:   fixture.AwayTeam.Name,
				League:     fixture.League.Name,
				LeagueID:   fixture.League.ID,
				Market:     market.Normalized,
				Odds:       market.Odds,
				RiskScore:  total,
				Confidence: s.MarketConfidence(total),
				Reasoning:  breakdown,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RiskScore < scored[j].RiskScore
	})

	metrics.MarketsScoredTotal.Add(float64(len(scored)))
	s.logger.WithFields(logrus.Fields{
		"fixtures": len(fixtures),
		"markets":  len(scored),
	}).Info("Markets scored")

	return scored
}

// scoreMarket combines the six weighted sub-scores into the rounded total
func (s *Scorer) scoreMarket(fixture *models.EnrichedFixture, market models.MarketOdds) (int, models.RiskBreakdown) {
	w := s.cfg.Weights

	formScore := s.scoreRecentForm(fixture, market) * w.RecentForm
	goalScore := s.scoreGoalTrends(fixture, market) * w.GoalTrends
	defensiveScore := s.scoreDefensiveStability(fixture) * w.DefensiveStability
	positionScore := s.scoreLeaguePosition(fixture, market) * w.LeaguePositionGap
	h2hScore := s.scoreHistoricalMatchup(fixture, market) * w.HistoricalMatchup
	oddsScore := scoreOddsStability(market.Odds) * w.OddsStability

	total := formScore + goalScore + defensiveScore + positionScore + h2hScore + oddsScore

	breakdown := models.RiskBreakdown{
		FormScore:      round(formScore),
		GoalTrendScore: round(goalScore),
		DefensiveScore: round(defensiveScore),
		PositionScore:  round(positionScore),
		H2HScore:       round(h2hScore),
		OddsScore:      round(oddsScore),
	}

	return round(total), breakdown
}

// MarketConfidence derives a per-market confidence tier from a risk score
func (s *Scorer) MarketConfidence(riskScore int) models.Confidence {
	switch {
	case float64(riskScore) <= s.cfg.MarketConfidence.High:
		return models.ConfidenceHigh
	case float64(riskScore) <= s.cfg.MarketConfidence.Medium:
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}

func round(v float64) int {
	return int(math.Round(v))
}
