// Package main provides the entry point for the matchsense API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samellow/matchsense/internal/apifootball"
	"github.com/samellow/matchsense/internal/betslip"
	"github.com/samellow/matchsense/internal/cache"
	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/database"
	"github.com/samellow/matchsense/internal/engine"
	"github.com/samellow/matchsense/internal/enrich"
	"github.com/samellow/matchsense/internal/logger"
	"github.com/samellow/matchsense/internal/metrics"
	"github.com/samellow/matchsense/internal/repository"
	"github.com/samellow/matchsense/internal/scheduler"
	"github.com/samellow/matchsense/internal/scoring"
	"github.com/samellow/matchsense/internal/server"
)

func main() {
	configPath := os.Getenv("MATCHSENSE_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Matchsense server starting")

	metrics.InitRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		db   *database.DB
		repo repository.GeneratedBetRepository
		ping server.DatabasePinger
	)
	if cfg.Database.Enabled {
		initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err = database.Initialize(initCtx, &cfg.Database)
		cancel()
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()
		repo = repository.NewPostgresGeneratedBetRepository(db)
		ping = db
		appLog.Info("Database connection established")
	} else {
		appLog.Info("Persistence disabled, running cache-only")
	}

	c := cache.New(
		time.Duration(cfg.Cache.DefaultTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupIntervalSeconds)*time.Second,
	)

	client := apifootball.NewClient(&cfg.Provider, appLog)
	fetcher := engine.NewCachedFetcher(client, c, cfg.Provider, cfg.Leagues, appLog)
	fuser := enrich.NewFuser(cfg.Markets, appLog)
	enricher := enrich.NewEnricher(fetcher, fuser, c, cfg.Provider.EnrichBatchSize, appLog)
	scorer := scoring.NewScorer(cfg.Scoring, appLog)
	generator := betslip.NewGenerator(cfg.Profiles, cfg.Scoring.SlipConfidence, appLog)

	eng := engine.New(fetcher, enricher, scorer, generator, c, repo, appLog)

	if cfg.Scheduler.Enabled {
		sched := scheduler.NewScheduler(eng, appLog)
		if err := sched.ScheduleDailyGeneration(cfg.Scheduler.DailyCron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule daily generation")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		defer sched.Stop()
		appLog.WithField("next_run", sched.NextRun()).Info("Daily generation scheduled")
	}

	srv := server.New(cfg, eng, repo, ping, appLog)
	srv.SetReady(true)

	if err := srv.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("API server failed")
	}

	appLog.Info("Matchsense server stopped")
}
