package enrich

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samellow/matchsense/internal/apifootball"
	"github.com/samellow/matchsense/internal/cache"
	"github.com/samellow/matchsense/internal/metrics"
	"github.com/samellow/matchsense/internal/models"
)

// DataFetcher supplies the per-fixture sub-data. Implementations absorb
// upstream failures and return empty results instead of errors, so a
// broken fetch can only thin out a fixture, never fail it.
type DataFetcher interface {
	TeamForm(ctx context.Context, teamID int) []apifootball.FixturePayload
	Standings(ctx context.Context, leagueID int) *apifootball.StandingsPayload
	HeadToHead(ctx context.Context, homeID, awayID int) []apifootball.FixturePayload
	Odds(ctx context.Context, fixtureID int) *apifootball.OddsPayload
}

// Result is the per-fixture outcome of enrichment: either an enriched
// record or a dropped fixture with the reason. Errors never cross the
// batch boundary.
type Result struct {
	FixtureID int
	Fixture   *models.EnrichedFixture
	Dropped   bool
	Reason    string
}

// Enricher runs batched, concurrent fixture enrichment
type Enricher struct {
	fetcher   DataFetcher
	fuser     *Fuser
	cache     *cache.Cache
	batchSize int
	logger    *logrus.Logger
}

// NewEnricher creates an enricher. The cache is optional; passing nil
// disables the enriched-fixture cache.
func NewEnricher(fetcher DataFetcher, fuser *Fuser, c *cache.Cache, batchSize int, logger *logrus.Logger) *Enricher {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Enricher{
		fetcher:   fetcher,
		fuser:     fuser,
		cache:     c,
		batchSize: batchSize,
		logger:    logger,
	}
}

// EnrichFixtures enriches a day's fixtures in fixed-size batches to bound
// upstream concurrency. Order of the input is preserved in the output.
func (e *Enricher) EnrichFixtures(ctx context.Context, fixtures []apifootball.FixturePayload) []Result {
	results := make([]Result, len(fixtures))

	for start := 0; start < len(fixtures); start += e.batchSize {
		end := start + e.batchSize
		if end > len(fixtures) {
			end = len(fixtures)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = e.enrichOne(ctx, fixtures[idx])
			}(i)
		}
		wg.Wait()
	}

	return results
}

// Enriched filters a result set down to the successfully enriched fixtures
func Enriched(results []Result) []models.EnrichedFixture {
	fixtures := make([]models.EnrichedFixture, 0, len(results))
	for _, r := range results {
		if !r.Dropped && r.Fixture != nil {
			fixtures = append(fixtures, *r.Fixture)
		}
	}
	return fixtures
}

// enrichOne fetches one fixture's sub-data concurrently, joins, and fuses
func (e *Enricher) enrichOne(ctx context.Context, fixture apifootball.FixturePayload) Result {
	fixtureID := fixture.Fixture.ID
	started := time.Now()

	if e.cache != nil {
		if cached, found := e.cache.Get(cache.EnrichedKey(fixtureID)); found {
			if enriched, ok := cached.(*models.EnrichedFixture); ok {
				return Result{FixtureID: fixtureID, Fixture: enriched}
			}
		}
	}

	homeID := fixture.Teams.Home.ID
	awayID := fixture.Teams.Away.ID
	leagueID := fixture.League.ID

	var (
		wg        sync.WaitGroup
		homeForm  []apifootball.FixturePayload
		awayForm  []apifootball.FixturePayload
		standings *apifootball.StandingsPayload
		h2h       []apifootball.FixturePayload
		odds      *apifootball.OddsPayload
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		homeForm = e.fetcher.TeamForm(ctx, homeID)
	}()
	go func() {
		defer wg.Done()
		awayForm = e.fetcher.TeamForm(ctx, awayID)
	}()
	go func() {
		defer wg.Done()
		standings = e.fetcher.Standings(ctx, leagueID)
	}()
	go func() {
		defer wg.Done()
		h2h = e.fetcher.HeadToHead(ctx, homeID, awayID)
	}()
	go func() {
		defer wg.Done()
		odds = e.fetcher.Odds(ctx, fixtureID)
	}()
	wg.Wait()

	enriched, err := e.fuser.Fuse(fixture, homeForm, awayForm, standings, h2h, odds)
	if err != nil {
		metrics.FixturesDroppedTotal.Inc()
		e.logger.WithError(err).WithField("fixture_id", fixtureID).Warn("Dropping fixture from run")
		return Result{
			FixtureID: fixtureID,
			Dropped:   true,
			Reason:    fmt.Sprintf("fusion failed: %v", err),
		}
	}

	metrics.FixturesEnrichedTotal.Inc()
	metrics.EnrichmentDuration.Observe(time.Since(started).Seconds())

	if e.cache != nil {
		e.cache.Set(cache.EnrichedKey(fixtureID), enriched, cache.TTLEnriched)
	}

	return Result{FixtureID: fixtureID, Fixture: enriched}
}
