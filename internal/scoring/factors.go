package scoring

import (
	"math"

	"github.com/samellow/matchsense/internal/models"
)

// Each factor returns a raw sub-score in [0,100], lower = safer. Factors
// fall back to a neutral 50 whenever their inputs are too thin to trust.

// scoreRecentForm measures how lopsided both sides' recent results are.
// Consistent sides (mostly winning or mostly losing) carry less risk than
// sides bouncing between outcomes, and markets backing one side are
// biased by that side's win rate.
func (s *Scorer) scoreRecentForm(fixture *models.EnrichedFixture, market models.MarketOdds) float64 {
	home := fixture.HomeTeamStats
	away := fixture.AwayTeamStats

	if home.RecentMatches < s.cfg.MinFormMatches || away.RecentMatches < s.cfg.MinFormMatches {
		return neutralScore
	}

	score := (formVariance(home) + formVariance(away)) / 2

	switch {
	case market.Normalized.FavorsHome():
		if home.WinRate() > 0.6 {
			score *= 0.7
		} else if home.WinRate() < 0.3 {
			score *= 1.3
		}
	case market.Normalized.FavorsAway():
		if away.WinRate() > 0.5 {
			score *= 0.7
		} else if away.WinRate() < 0.2 {
			score *= 1.3
		}
	}

	return clamp(score)
}

// formVariance maps a win/draw/loss distribution to [0,100]: the further
// the rates sit from a uniform 1/3 split, the more lopsided (and cheaper)
// the side's form.
func formVariance(stats models.TeamFormStats) float64 {
	total := stats.Wins + stats.Draws + stats.Losses
	if total == 0 {
		return neutralScore
	}

	n := float64(total)
	winRate := float64(stats.Wins) / n
	drawRate := float64(stats.Draws) / n
	lossRate := float64(stats.Losses) / n

	variance := math.Abs(winRate-0.33) + math.Abs(drawRate-0.33) + math.Abs(lossRate-0.33)

	return (1 - variance) * 100
}

// scoreGoalTrends evaluates market-specific recent goal rates against
// fixed bands. Markets with no matching rule keep the neutral score.
func (s *Scorer) scoreGoalTrends(fixture *models.EnrichedFixture, market models.MarketOdds) float64 {
	home := fixture.HomeTeamStats
	away := fixture.AwayTeamStats

	if home.RecentMatches < s.cfg.MinFormMatches || away.RecentMatches < s.cfg.MinFormMatches {
		return neutralScore
	}

	score := neutralScore

	switch market.Normalized {
	case models.MarketOver15:
		avgRate := (home.Over15Rate() + away.Over15Rate()) / 2
		switch {
		case avgRate > 0.8:
			score = 20
		case avgRate > 0.6:
			score = 40
		case avgRate < 0.4:
			score = 80
		}
	case models.MarketBTTSYes, models.MarketBTTSNo:
		avgRate := (home.BTTSRate() + away.BTTSRate()) / 2
		switch {
		case avgRate > 0.8:
			score = 20
		case avgRate > 0.6:
			score = 40
		case avgRate < 0.3:
			score = 80
		}
	case models.MarketUnder45:
		// Low-scoring sides make the under safer
		avgRate := (home.Over25Rate() + away.Over25Rate()) / 2
		switch {
		case avgRate < 0.3:
			score = 20
		case avgRate < 0.5:
			score = 40
		case avgRate > 0.7:
			score = 80
		}
	}

	return score
}

// scoreDefensiveStability scales both sides' goals-against averages,
// discounted when clean sheets are frequent.
func (s *Scorer) scoreDefensiveStability(fixture *models.EnrichedFixture) float64 {
	home := fixture.HomeTeamStats
	away := fixture.AwayTeamStats

	if home.RecentMatches < s.cfg.MinFormMatches || away.RecentMatches < s.cfg.MinFormMatches {
		return neutralScore
	}

	score := ((home.GoalsAgainstAverage + away.GoalsAgainstAverage) / 2) * 20

	if (home.CleanSheetRate()+away.CleanSheetRate())/2 > 0.4 {
		score *= 0.6
	}

	return clamp(score)
}

// scoreLeaguePosition maps the rank gap between the sides into risk
// bands, discounted when the market-favored side is the higher-ranked one.
func (s *Scorer) scoreLeaguePosition(fixture *models.EnrichedFixture, market models.MarketOdds) float64 {
	if fixture.Standings == nil {
		return neutralScore
	}

	homeRank := fixture.Standings.Home.Rank
	awayRank := fixture.Standings.Away.Rank
	rankDiff := homeRank - awayRank
	if rankDiff < 0 {
		rankDiff = -rankDiff
	}

	var score float64
	switch {
	case rankDiff > 10:
		score = 20
	case rankDiff > 5:
		score = 35
	case rankDiff > 2:
		score = 50
	default:
		score = 65
	}

	switch {
	case market.Normalized.FavorsHome():
		if homeRank < awayRank {
			score *= 0.8
		}
	case market.Normalized.FavorsAway():
		if awayRank < homeRank {
			score *= 0.8
		}
	}

	return clamp(score)
}

// scoreHistoricalMatchup evaluates market-specific rates over the pair's
// past meetings. Fewer than the minimum number of meetings is neutral.
func (s *Scorer) scoreHistoricalMatchup(fixture *models.EnrichedFixture, market models.MarketOdds) float64 {
	meetings := fixture.HeadToHead
	if len(meetings) < s.cfg.MinHeadToHead {
		return neutralScore
	}

	score := neutralScore
	n := float64(len(meetings))

	switch market.Normalized {
	case models.MarketDoubleChanceHomeDraw:
		count := 0
		for _, m := range meetings {
			if m.HomeWinner || m.IsDraw() {
				count++
			}
		}
		score = bandHistoricalRate(float64(count) / n)
	case models.MarketDoubleChanceDrawAway:
		count := 0
		for _, m := range meetings {
			if !m.HomeWinner || m.IsDraw() {
				count++
			}
		}
		score = bandHistoricalRate(float64(count) / n)
	case models.MarketBTTSYes, models.MarketBTTSNo:
		count := 0
		for _, m := range meetings {
			if m.BothScored() {
				count++
			}
		}
		rate := float64(count) / n
		if rate > 0.8 {
			score = 20
		} else if rate < 0.3 {
			score = 80
		}
	}

	return clamp(score)
}

func bandHistoricalRate(rate float64) float64 {
	switch {
	case rate > 0.8:
		return 20
	case rate > 0.6:
		return 40
	case rate < 0.3:
		return 80
	}
	return neutralScore
}

// scoreOddsStability is a pure function of the quoted value. The 1.1-1.5
// range is the sweet spot; shorter prices pay too little, longer ones
// fail too often.
func scoreOddsStability(odds float64) float64 {
	switch {
	case odds < 1.1:
		return 30
	case odds <= 1.5:
		return 20
	case odds <= 2.0:
		return 35
	case odds <= 3.0:
		return 50
	case odds <= 5.0:
		return 70
	}
	return 85
}

func clamp(score float64) float64 {
	return math.Min(100, math.Max(0, score))
}
