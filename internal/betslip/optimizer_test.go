package betslip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/models"
)

func lowRiskProfile() config.BetProfile {
	return config.BetProfile{
		MinOdds:       2.0,
		MaxOdds:       3.0,
		MinSelections: 1,
		MaxSelections: 3,
		MaxRiskScore:  30,
	}
}

func mediumRiskProfile() config.BetProfile {
	return config.BetProfile{
		MinOdds:       8.5,
		MaxOdds:       11.5,
		MinSelections: 4,
		MaxSelections: 8,
		MaxRiskScore:  60,
		MaxPerLeague:  2,
	}
}

func market(fixtureID int, odds float64, risk int) models.ScoredMarket {
	return models.ScoredMarket{
		FixtureID: fixtureID,
		Market:    models.MarketOver15,
		Odds:      odds,
		RiskScore: risk,
	}
}

func TestOptimizeAccumulatesUntilOddsReached(t *testing.T) {
	markets := []models.ScoredMarket{
		market(1, 1.35, 15),
		market(2, 1.25, 20),
		market(3, 1.28, 18),
	}

	combo := Optimize(markets, lowRiskProfile())
	require.NotNil(t, combo)

	// No single pick or pair reaches 2.0, so all three are needed
	assert.Len(t, combo.Selections, 3)
	assert.InDelta(t, 2.16, combo.TotalOdds, 0.01)
	assert.Equal(t, 53, combo.TotalRiskScore)
	assert.InDelta(t, 17.7, combo.AverageRiskScore, 0.01)
}

func TestOptimizeTooFewEligible(t *testing.T) {
	markets := []models.ScoredMarket{
		market(1, 1.5, 30),
		market(2, 1.6, 35),
		market(3, 1.7, 40),
	}

	combo := Optimize(markets, mediumRiskProfile())
	assert.Nil(t, combo)
}

func TestOptimizeRespectsRiskCeiling(t *testing.T) {
	markets := []models.ScoredMarket{
		market(1, 2.5, 31),
		market(2, 2.5, 25),
	}

	combo := Optimize(markets, lowRiskProfile())
	require.NotNil(t, combo)
	require.Len(t, combo.Selections, 1)
	assert.Equal(t, 2, combo.Selections[0].FixtureID)
}

func TestOptimizeHigherCeilingKeepsFeasibleCombination(t *testing.T) {
	markets := []models.ScoredMarket{
		market(1, 2.5, 20),
		market(2, 2.6, 22),
		market(3, 2.4, 55),
	}

	strict := lowRiskProfile()
	relaxed := lowRiskProfile()
	relaxed.MaxRiskScore = 60

	combo := Optimize(markets, strict)
	require.NotNil(t, combo)
	require.Len(t, combo.Selections, 1)
	assert.Equal(t, 1, combo.Selections[0].FixtureID)

	// Raising the ceiling admits fixture 3 but must not displace the
	// combination that already won under the stricter ceiling
	wider := Optimize(markets, relaxed)
	require.NotNil(t, wider)
	require.Len(t, wider.Selections, 1)
	assert.Equal(t, combo.Selections[0].FixtureID, wider.Selections[0].FixtureID)
	assert.Equal(t, combo.TotalOdds, wider.TotalOdds)
	assert.Equal(t, combo.TotalRiskScore, wider.TotalRiskScore)
}

func TestOptimizeRanksOnUnroundedOdds(t *testing.T) {
	// Both candidates round to 2.50 but only fixture 2 sits exactly on
	// the midpoint, so it must win the tie-break
	markets := []models.ScoredMarket{
		market(1, 2.496, 20),
		market(2, 2.5, 20),
	}

	combo := Optimize(markets, lowRiskProfile())
	require.NotNil(t, combo)
	require.Len(t, combo.Selections, 1)
	assert.Equal(t, 2, combo.Selections[0].FixtureID)
	assert.Equal(t, 2.5, combo.TotalOdds)
}

func TestOptimizeNoFeasibleOdds(t *testing.T) {
	// Everything eligible but no combination lands inside [2.0, 3.0]
	markets := []models.ScoredMarket{
		market(1, 1.05, 10),
		market(2, 1.04, 12),
	}

	combo := Optimize(markets, lowRiskProfile())
	assert.Nil(t, combo)
}

func TestOptimizeFixtureExclusivity(t *testing.T) {
	// No single pick reaches the range; the two fixture-1 markets would
	// pair into range but collide, forcing a cross-fixture pair
	markets := []models.ScoredMarket{
		market(1, 1.5, 10),
		market(1, 1.5, 12),
		market(2, 1.5, 15),
	}

	combo := Optimize(markets, lowRiskProfile())
	require.NotNil(t, combo)

	seen := make(map[int]bool)
	for _, s := range combo.Selections {
		assert.False(t, seen[s.FixtureID], "fixture %d appears twice", s.FixtureID)
		seen[s.FixtureID] = true
	}
}

func TestOptimizePrefersSmallerSlips(t *testing.T) {
	// A single pick already satisfies the odds range
	markets := []models.ScoredMarket{
		market(1, 2.5, 10),
		market(2, 1.1, 12),
		market(3, 1.1, 14),
	}

	combo := Optimize(markets, lowRiskProfile())
	require.NotNil(t, combo)
	assert.Len(t, combo.Selections, 1)
	assert.Equal(t, 1, combo.Selections[0].FixtureID)
}

func TestOptimizeTotalOddsIsProduct(t *testing.T) {
	markets := []models.ScoredMarket{
		market(1, 1.44, 10),
		market(2, 1.52, 12),
	}

	combo := Optimize(markets, lowRiskProfile())
	require.NotNil(t, combo)
	assert.InDelta(t, 1.44*1.52, combo.TotalOdds, 0.01)
}

func TestAdvanceEnumeratesAllCombinations(t *testing.T) {
	indices := []int{0, 1}
	count := 1
	for advance(indices, 4) {
		count++
	}
	// C(4,2) = 6
	assert.Equal(t, 6, count)
	assert.Equal(t, []int{2, 3}, indices)
}

func TestRoundOdds(t *testing.T) {
	assert.Equal(t, 2.16, RoundOdds(2.1599999))
	assert.Equal(t, 10.0, RoundOdds(10.0))
	assert.Equal(t, 1.35, RoundOdds(1.345))
}
