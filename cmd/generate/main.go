// Package main provides a CLI for running a single generation pass.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

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
	"github.com/samellow/matchsense/internal/scoring"
)

var (
	configFile string
	dateFlag   string
	noStore    bool

	appLog *logrus.Logger
	cfg    *config.Config
	db     *database.DB
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&dateFlag, "date", "", "Date to generate for (YYYY-MM-DD, default today UTC)")
	rootCmd.Flags().BoolVar(&noStore, "no-store", false, "Skip persisting the result")
}

var rootCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one bet generation pass",
	Long:  `Fetches the day's fixtures, enriches and scores them, builds the low and medium risk slips, and prints the result as JSON.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel)
		metrics.InitRegistry()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGeneration(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGeneration(ctx context.Context) error {
	date := time.Now().UTC()
	if dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
		}
		date = parsed
	}

	var repo repository.GeneratedBetRepository
	if cfg.Database.Enabled && !noStore {
		initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		var err error
		db, err = database.Initialize(initCtx, &cfg.Database)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		repo = repository.NewPostgresGeneratedBetRepository(db)
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
	result := eng.Run(ctx, date)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
