package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samellow/matchsense/internal/apifootball"
	"github.com/samellow/matchsense/internal/cache"
	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/metrics"
	"github.com/samellow/matchsense/internal/models"
)

// Provider is the slice of the API-Football client the fetcher consumes
type Provider interface {
	FixturesByDate(ctx context.Context, date time.Time, leagueID, season int) ([]apifootball.FixturePayload, error)
	TeamRecentMatches(ctx context.Context, teamID, last int) ([]apifootball.FixturePayload, error)
	LeagueStandings(ctx context.Context, leagueID, season int) (*apifootball.StandingsPayload, error)
	HeadToHead(ctx context.Context, teamA, teamB, last int) ([]apifootball.FixturePayload, error)
	FixtureOdds(ctx context.Context, fixtureID int) (*apifootball.OddsPayload, error)
}

// CachedFetcher wraps the provider client with cache-aside reads and
// absorbs upstream failures: every method returns an empty result instead
// of an error, so a broken fetch thins out a fixture but never fails it.
type CachedFetcher struct {
	client   Provider
	cache    *cache.Cache
	provider config.ProviderConfig
	leagues  config.LeaguesConfig
	logger   *logrus.Logger

	mu     sync.Mutex
	season int
}

// NewCachedFetcher creates a fetcher over the provider client
func NewCachedFetcher(client Provider, c *cache.Cache, provider config.ProviderConfig, leagues config.LeaguesConfig, logger *logrus.Logger) *CachedFetcher {
	return &CachedFetcher{
		client:   client,
		cache:    c,
		provider: provider,
		leagues:  leagues,
		logger:   logger,
	}
}

// FixturesForDate fetches and filters one day's fixtures across all
// allowed leagues. Kept fixtures have not kicked off, are not excluded
// round types, and carry both team ids. Per-league failures are logged
// and skipped so one broken league cannot empty the day.
func (f *CachedFetcher) FixturesForDate(ctx context.Context, date time.Time) []apifootball.FixturePayload {
	isoDate := date.Format("2006-01-02")
	key := cache.FixturesKey(isoDate)

	if cached, found := f.cache.Get(key); found {
		if fixtures, ok := cached.([]apifootball.FixturePayload); ok {
			return fixtures
		}
	}

	season := date.Year()
	f.mu.Lock()
	f.season = season
	f.mu.Unlock()

	var kept []apifootball.FixturePayload

	for _, leagueID := range f.leagues.AllowedLeagueIDs {
		fixtures, err := f.client.FixturesByDate(ctx, date, leagueID, season)
		if err != nil {
			f.logger.WithError(err).WithField("league_id", leagueID).Warn("Failed to fetch league fixtures")
			continue
		}

		for _, fixture := range fixtures {
			if f.keepFixture(fixture) {
				kept = append(kept, fixture)
			}
		}
	}

	metrics.FixturesFetchedTotal.Add(float64(len(kept)))
	f.cache.Set(key, kept, cache.TTLFixtures)

	return kept
}

func (f *CachedFetcher) keepFixture(fixture apifootball.FixturePayload) bool {
	status := fixture.Fixture.Status.Short
	if status != models.StatusNotStarted && status != models.StatusTBD {
		return false
	}

	round := strings.ToLower(fixture.League.Round)
	for _, excluded := range f.leagues.ExcludedRounds {
		if strings.Contains(round, strings.ToLower(excluded)) {
			return false
		}
	}

	return fixture.Teams.Home.ID != 0 && fixture.Teams.Away.ID != 0
}

// TeamForm returns a team's recent matches, empty on upstream failure
func (f *CachedFetcher) TeamForm(ctx context.Context, teamID int) []apifootball.FixturePayload {
	key := cache.TeamFormKey(teamID)
	if cached, found := f.cache.Get(key); found {
		if form, ok := cached.([]apifootball.FixturePayload); ok {
			return form
		}
	}

	form, err := f.client.TeamRecentMatches(ctx, teamID, f.provider.FormMatches)
	if err != nil {
		f.logger.WithError(err).WithField("team_id", teamID).Warn("Failed to fetch team form")
		return nil
	}

	f.cache.Set(key, form, cache.TTLTeamForm)
	return form
}

// Standings returns a league's standings, nil on upstream failure
func (f *CachedFetcher) Standings(ctx context.Context, leagueID int) *apifootball.StandingsPayload {
	key := cache.StandingsKey(leagueID)
	if cached, found := f.cache.Get(key); found {
		if standings, ok := cached.(*apifootball.StandingsPayload); ok {
			return standings
		}
	}

	standings, err := f.client.LeagueStandings(ctx, leagueID, f.currentSeason())
	if err != nil {
		f.logger.WithError(err).WithField("league_id", leagueID).Warn("Failed to fetch standings")
		return nil
	}

	if standings != nil {
		f.cache.Set(key, standings, cache.TTLStandings)
	}
	return standings
}

// currentSeason is the year of the run date set by FixturesForDate, so
// standings come from the same season as the fixtures being enriched.
// Falls back to the current year before the first fetch of a run.
func (f *CachedFetcher) currentSeason() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.season == 0 {
		return time.Now().UTC().Year()
	}
	return f.season
}

// HeadToHead returns the pair's past meetings, empty on upstream failure
func (f *CachedFetcher) HeadToHead(ctx context.Context, homeID, awayID int) []apifootball.FixturePayload {
	key := cache.H2HKey(homeID, awayID)
	if cached, found := f.cache.Get(key); found {
		if h2h, ok := cached.([]apifootball.FixturePayload); ok {
			return h2h
		}
	}

	h2h, err := f.client.HeadToHead(ctx, homeID, awayID, f.provider.HeadToHeadMatches)
	if err != nil {
		f.logger.WithError(err).WithFields(logrus.Fields{
			"home_id": homeID,
			"away_id": awayID,
		}).Warn("Failed to fetch head-to-head")
		return nil
	}

	f.cache.Set(key, h2h, cache.TTLH2H)
	return h2h
}

// Odds returns a fixture's bookmaker odds, nil on upstream failure
func (f *CachedFetcher) Odds(ctx context.Context, fixtureID int) *apifootball.OddsPayload {
	key := cache.OddsKey(fixtureID)
	if cached, found := f.cache.Get(key); found {
		if odds, ok := cached.(*apifootball.OddsPayload); ok {
			return odds
		}
	}

	odds, err := f.client.FixtureOdds(ctx, fixtureID)
	if err != nil {
		f.logger.WithError(err).WithField("fixture_id", fixtureID).Warn("Failed to fetch fixture odds")
		return nil
	}

	if odds != nil {
		f.cache.Set(key, odds, cache.TTLOdds)
	}
	return odds
}
