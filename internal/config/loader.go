// Package config provides configuration management for the MatchSense service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
// Missing files are tolerated; defaults carry the full pipeline constants so
// only the provider API key is strictly required from the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix("MATCHSENSE")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		// Expand environment variables in the configuration (${VAR} syntax)
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal configuration into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers the production pipeline constants. Everything here
// can be overridden by the YAML file or MATCHSENSE_* environment variables.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "matchsense")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 120)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "matchsense")
	v.SetDefault("database.user", "matchsense")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)

	v.SetDefault("provider.base_url", "https://v3.football.api-sports.io")
	v.SetDefault("provider.timeout_seconds", 30)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.rate_limit_per_second", 5.0)
	v.SetDefault("provider.form_matches", 10)
	v.SetDefault("provider.head_to_head_matches", 5)
	v.SetDefault("provider.enrich_batch_size", 5)

	v.SetDefault("cache.default_ttl_seconds", 3600)
	v.SetDefault("cache.cleanup_interval_seconds", 600)

	// The six factor weights must sum to 1.0
	v.SetDefault("scoring.weights.recent_form", 0.25)
	v.SetDefault("scoring.weights.goal_trends", 0.20)
	v.SetDefault("scoring.weights.defensive_stability", 0.20)
	v.SetDefault("scoring.weights.league_position_gap", 0.15)
	v.SetDefault("scoring.weights.historical_matchup", 0.10)
	v.SetDefault("scoring.weights.odds_stability", 0.10)
	v.SetDefault("scoring.min_form_matches", 5)
	v.SetDefault("scoring.min_head_to_head", 3)
	v.SetDefault("scoring.market_confidence.high", 20)
	v.SetDefault("scoring.market_confidence.medium", 45)
	v.SetDefault("scoring.slip_confidence.high", 25)
	v.SetDefault("scoring.slip_confidence.medium", 50)

	// 1X2, Double Chance, Over/Under, Both Teams To Score, Team To Score
	v.SetDefault("markets.allowed_market_ids", []int{1, 2, 5, 8, 12})
	v.SetDefault("markets.excluded_keywords", []string{
		"Correct Score",
		"First Goal Scorer",
		"Anytime Goal Scorer",
		"First Card",
		"Corners",
		"Cards",
		"Player Statistics",
		"Special",
	})

	// Top and mid-tier leagues across Europe and Asia
	v.SetDefault("leagues.allowed_league_ids", []int{
		39, 140, 135, 78, 61, 88, 94, 203, 144, 235, 179, 207, 218,
		40, 141, 136, 79,
		98, 292, 169, 106, 307, 294, 295, 323,
	})
	v.SetDefault("leagues.excluded_rounds", []string{
		"Friendly", "U21", "U20", "U19", "U18", "Youth",
	})

	v.SetDefault("profiles.low_risk.min_odds", 2.0)
	v.SetDefault("profiles.low_risk.max_odds", 3.0)
	v.SetDefault("profiles.low_risk.min_selections", 1)
	v.SetDefault("profiles.low_risk.max_selections", 3)
	v.SetDefault("profiles.low_risk.max_risk_score", 30)
	v.SetDefault("profiles.low_risk.max_per_league", 0)

	v.SetDefault("profiles.medium_risk.min_odds", 8.5)
	v.SetDefault("profiles.medium_risk.max_odds", 11.5)
	v.SetDefault("profiles.medium_risk.min_selections", 4)
	v.SetDefault("profiles.medium_risk.max_selections", 8)
	v.SetDefault("profiles.medium_risk.max_risk_score", 60)
	v.SetDefault("profiles.medium_risk.max_per_league", 2)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.daily_cron", "0 6 * * *")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
