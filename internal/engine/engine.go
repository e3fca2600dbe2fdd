// Package engine orchestrates the daily bet generation pipeline.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/samellow/matchsense/internal/apifootball"
	"github.com/samellow/matchsense/internal/betslip"
	"github.com/samellow/matchsense/internal/cache"
	"github.com/samellow/matchsense/internal/enrich"
	"github.com/samellow/matchsense/internal/logger"
	"github.com/samellow/matchsense/internal/metrics"
	"github.com/samellow/matchsense/internal/models"
	"github.com/samellow/matchsense/internal/repository"
	"github.com/samellow/matchsense/internal/scoring"
)

// FixtureSource supplies a day's candidate fixtures, already filtered
type FixtureSource interface {
	FixturesForDate(ctx context.Context, date time.Time) []apifootball.FixturePayload
}

// Engine runs the generation pipeline: fetch, enrich, score, generate.
// A run is a pure function of its input fixtures and configuration; the
// engine adds caching and optional persistence around it.
type Engine struct {
	source    FixtureSource
	enricher  *enrich.Enricher
	scorer    *scoring.Scorer
	generator *betslip.Generator
	cache     *cache.Cache
	repo      repository.GeneratedBetRepository
	audit     *logger.AuditLogger
	logger    *logrus.Logger
}

// New creates an engine. The repository is optional; a nil repo disables
// persistence and history.
func New(
	source FixtureSource,
	enricher *enrich.Enricher,
	scorer *scoring.Scorer,
	generator *betslip.Generator,
	c *cache.Cache,
	repo repository.GeneratedBetRepository,
	log *logrus.Logger,
) *Engine {
	return &Engine{
		source:    source,
		enricher:  enricher,
		scorer:    scorer,
		generator: generator,
		cache:     c,
		repo:      repo,
		audit:     logger.NewAuditLogger(log),
		logger:    log,
	}
}

// CachedResult returns the cached generation result for a date, if any
func (e *Engine) CachedResult(date time.Time) (models.BetGenerationResult, bool) {
	if e.cache == nil {
		return models.BetGenerationResult{}, false
	}
	cached, found := e.cache.Get(cache.BetsKey(date.Format("2006-01-02")))
	if !found {
		return models.BetGenerationResult{}, false
	}
	result, ok := cached.(models.BetGenerationResult)
	return result, ok
}

// Run executes one full generation run for the given date. Empty stages
// short-circuit to a result with both slips nil; per-fixture failures
// only drop that fixture. Run never returns an error: upstream failure
// degrades to an empty result.
func (e *Engine) Run(ctx context.Context, date time.Time) models.BetGenerationResult {
	runID := uuid.NewString()
	isoDate := date.Format("2006-01-02")
	started := time.Now()

	runLog := e.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"date":   isoDate,
	})
	runLog.Info("Starting bet generation run")

	fixtures := e.source.FixturesForDate(ctx, date)
	runLog.WithField("fixtures", len(fixtures)).Info("Fixtures fetched")

	if len(fixtures) == 0 {
		return e.finish(ctx, runID, isoDate, started, 0, 0, 0, emptyResult(isoDate))
	}

	enrichResults := e.enricher.EnrichFixtures(ctx, fixtures)
	for _, r := range enrichResults {
		if r.Dropped {
			e.audit.LogFixtureDropped(runID, r.FixtureID, r.Reason)
		}
	}
	enriched := enrich.Enriched(enrichResults)
	runLog.WithField("enriched", len(enriched)).Info("Fixtures enriched")

	if len(enriched) == 0 {
		return e.finish(ctx, runID, isoDate, started, len(fixtures), 0, 0, emptyResult(isoDate))
	}

	scored := e.scorer.Score(enriched)
	if len(scored) == 0 {
		return e.finish(ctx, runID, isoDate, started, len(fixtures), len(enriched), 0, emptyResult(isoDate))
	}

	result := e.generator.Generate(isoDate, scored)
	e.audit.LogSlipGenerated(runID, "low_risk", result.LowRisk)
	e.audit.LogSlipGenerated(runID, "medium_risk", result.MediumRisk)

	return e.finish(ctx, runID, isoDate, started, len(fixtures), len(enriched), len(scored), result)
}

// finish records metrics and audit output, caches the result and
// persists it when a repository is configured
func (e *Engine) finish(ctx context.Context, runID, isoDate string, started time.Time, fixtures, enriched, scored int, result models.BetGenerationResult) models.BetGenerationResult {
	slips := 0
	if result.LowRisk != nil {
		slips++
	}
	if result.MediumRisk != nil {
		slips++
	}

	outcome := "empty"
	if slips > 0 {
		outcome = "slips"
	}
	metrics.GenerationRunsTotal.WithLabelValues(outcome).Inc()
	metrics.GenerationDuration.Observe(time.Since(started).Seconds())
	metrics.LastRunScoredMarkets.Set(float64(scored))
	metrics.LastRunSlips.Set(float64(slips))

	e.audit.LogRunCompleted(runID, isoDate, fixtures, enriched, scored,
		result.LowRisk != nil, result.MediumRisk != nil)

	if e.cache != nil {
		e.cache.Set(cache.BetsKey(isoDate), result, cache.TTLBets)
	}

	if e.repo != nil {
		record := &models.BetRecord{
			ID:        uuid.New(),
			Date:      isoDate,
			Result:    result,
			CreatedAt: time.Now().UTC(),
		}
		if err := e.repo.Save(ctx, record); err != nil {
			e.logger.WithError(err).Warn("Failed to persist generation result")
		}
	}

	return result
}

func emptyResult(isoDate string) models.BetGenerationResult {
	return models.BetGenerationResult{Date: isoDate}
}
