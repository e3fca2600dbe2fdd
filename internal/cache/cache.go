// Package cache provides the in-memory TTL cache shared by the generation pipeline.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/samellow/matchsense/internal/metrics"
)

// TTLs per key family. Standings and the fixtures/bets lists move slowly;
// enrichment composites and odds go stale faster.
const (
	TTLFixtures  = 3600 * time.Second
	TTLBets      = 3600 * time.Second
	TTLEnriched  = 1800 * time.Second
	TTLTeamForm  = 1800 * time.Second
	TTLStandings = 3600 * time.Second
	TTLH2H       = 3600 * time.Second
	TTLOdds      = 1800 * time.Second
)

// Cache is a thin wrapper around go-cache with hit/miss accounting.
// Concurrent misses for the same key may both recompute; that is fine
// because every cached computation here is idempotent.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache with the given default TTL and cleanup interval
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value, reporting whether it was present
func (c *Cache) Get(key string) (interface{}, bool) {
	value, found := c.store.Get(key)
	if found {
		metrics.CacheHitsTotal.Inc()
	} else {
		metrics.CacheMissesTotal.Inc()
	}
	return value, found
}

// Set stores a value under key for the given TTL
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Has reports whether key is present without counting a hit or miss
func (c *Cache) Has(key string) bool {
	_, found := c.store.Get(key)
	return found
}

// Delete removes a key
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Flush clears the entire cache
func (c *Cache) Flush() {
	c.store.Flush()
}

// ItemCount returns the number of cached items, expired ones included
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Key builders for every cache key family used by the pipeline.

// FixturesKey keys the filtered fixtures list for an ISO date
func FixturesKey(isoDate string) string {
	return fmt.Sprintf("fixtures:%s", isoDate)
}

// BetsKey keys a generation result for an ISO date
func BetsKey(isoDate string) string {
	return fmt.Sprintf("bets:%s", isoDate)
}

// EnrichedKey keys one fixture's enrichment composite
func EnrichedKey(fixtureID int) string {
	return fmt.Sprintf("enriched:%d", fixtureID)
}

// TeamFormKey keys a team's recent matches
func TeamFormKey(teamID int) string {
	return fmt.Sprintf("team-form:%d", teamID)
}

// StandingsKey keys a league's standings
func StandingsKey(leagueID int) string {
	return fmt.Sprintf("standings:%d", leagueID)
}

// H2HKey keys the head-to-head history for a team pair
func H2HKey(teamA, teamB int) string {
	return fmt.Sprintf("h2h:%d:%d", teamA, teamB)
}

// OddsKey keys one fixture's bookmaker odds
func OddsKey(fixtureID int) string {
	return fmt.Sprintf("odds:%d", fixtureID)
}
