// Package betslip searches scored markets for risk-bounded slip combinations.
package betslip

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/models"
)

// maxCombinations bounds the search per slip size. The enumeration is a
// deliberate best-effort, not exhaustive: eligible sets can be large and
// the lowest-risk prefixes are explored first.
const maxCombinations = 100

// oddsDistanceWeight penalizes distance from the target range midpoint
// when ranking candidate combinations
const oddsDistanceWeight = 10.0

// Combination is an optimizer result satisfying all profile constraints
type Combination struct {
	Selections       []models.ScoredMarket
	TotalOdds        float64
	TotalRiskScore   int
	AverageRiskScore float64
}

// Optimize searches markets for the best combination under the profile's
// risk ceiling, odds range and selection-count range. Smaller slips are
// preferred: sizes are tried ascending and the first feasible size wins.
// Returns nil when no combination satisfies the constraints.
func Optimize(markets []models.ScoredMarket, profile config.BetProfile) *Combination {
	eligible := make([]models.ScoredMarket, 0, len(markets))
	for _, m := range markets {
		if m.RiskScore <= profile.MaxRiskScore {
			eligible = append(eligible, m)
		}
	}

	if len(eligible) < profile.MinSelections {
		return nil
	}

	// Safest first; the combination enumeration below is lexicographic
	// over this ordering, which makes repeated runs deterministic.
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].RiskScore < eligible[j].RiskScore
	})

	for size := profile.MinSelections; size <= profile.MaxSelections; size++ {
		if combo := bestCombinationOfSize(eligible, size, profile); combo != nil {
			return combo
		}
	}

	return nil
}

// bestCombinationOfSize enumerates up to maxCombinations index
// combinations of the given size in lexicographic order and keeps the
// minimum-scoring valid one.
func bestCombinationOfSize(markets []models.ScoredMarket, size int, profile config.BetProfile) *Combination {
	n := len(markets)
	if size <= 0 || size > n {
		return nil
	}

	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}

	midpoint := profile.OddsMidpoint()

	var best *Combination
	bestScore := math.Inf(1)

	for explored := 0; explored < maxCombinations; explored++ {
		if combo, ok := evaluate(markets, indices, profile); ok {
			score := float64(combo.TotalRiskScore) + oddsDistanceWeight*math.Abs(combo.TotalOdds-midpoint)
			if score < bestScore {
				bestScore = score
				best = combo
			}
		}

		if !advance(indices, n) {
			break
		}
	}

	if best != nil {
		best.TotalOdds = RoundOdds(best.TotalOdds)
	}
	return best
}

// evaluate checks one index combination against fixture exclusivity and
// the target odds range
func evaluate(markets []models.ScoredMarket, indices []int, profile config.BetProfile) (*Combination, bool) {
	seen := make(map[int]bool, len(indices))
	totalOdds := 1.0
	totalRisk := 0

	for _, idx := range indices {
		m := markets[idx]
		if seen[m.FixtureID] {
			return nil, false
		}
		seen[m.FixtureID] = true
		totalOdds *= m.Odds
		totalRisk += m.RiskScore
	}

	if totalOdds < profile.MinOdds || totalOdds > profile.MaxOdds {
		return nil, false
	}

	selections := make([]models.ScoredMarket, len(indices))
	for i, idx := range indices {
		selections[i] = markets[idx]
	}

	avg := float64(totalRisk) / float64(len(indices))

	// TotalOdds stays unrounded here so the ranking in
	// bestCombinationOfSize measures the true distance to the midpoint
	return &Combination{
		Selections:       selections,
		TotalOdds:        totalOdds,
		TotalRiskScore:   totalRisk,
		AverageRiskScore: math.Round(avg*10) / 10,
	}, true
}

// advance moves the index vector to the next lexicographic combination
// over n items, returning false when exhausted
func advance(indices []int, n int) bool {
	size := len(indices)
	for i := size - 1; i >= 0; i-- {
		if indices[i] < n-size+i {
			indices[i]++
			for j := i + 1; j < size; j++ {
				indices[j] = indices[j-1] + 1
			}
			return true
		}
	}
	return false
}

// RoundOdds rounds a decimal odds value to 2 places
func RoundOdds(odds float64) float64 {
	return decimal.NewFromFloat(odds).Round(2).InexactFloat64()
}
