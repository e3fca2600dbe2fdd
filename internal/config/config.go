// Package config provides configuration management for the MatchSense service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Provider  ProviderConfig  `mapstructure:"provider" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Scoring   ScoringConfig   `mapstructure:"scoring" validate:"required"`
	Markets   MarketsConfig   `mapstructure:"markets" validate:"required"`
	Leagues   LeaguesConfig   `mapstructure:"leagues" validate:"required"`
	Profiles  ProfilesConfig  `mapstructure:"profiles" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP API server configuration
type ServerConfig struct {
	Port               int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int     `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig represents database connection configuration.
// Persistence is optional; when Enabled is false the service runs
// cache-only and the history endpoint returns empty.
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// ProviderConfig represents the upstream sports-data provider configuration
type ProviderConfig struct {
	BaseURL            string  `mapstructure:"base_url" validate:"required,url"`
	APIKey             string  `mapstructure:"api_key" validate:"required"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries         int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	FormMatches        int     `mapstructure:"form_matches" validate:"required,gt=0"`
	HeadToHeadMatches  int     `mapstructure:"head_to_head_matches" validate:"required,gt=0"`
	EnrichBatchSize    int     `mapstructure:"enrich_batch_size" validate:"required,gt=0"`
}

// CacheConfig represents the in-memory TTL cache configuration
type CacheConfig struct {
	DefaultTTLSeconds      int `mapstructure:"default_ttl_seconds" validate:"required,gt=0"`
	CleanupIntervalSeconds int `mapstructure:"cleanup_interval_seconds" validate:"required,gt=0"`
}

// ScoringWeights holds the six risk-factor weights. They must sum to 1.0.
type ScoringWeights struct {
	RecentForm         float64 `mapstructure:"recent_form" validate:"gte=0,lte=1"`
	GoalTrends         float64 `mapstructure:"goal_trends" validate:"gte=0,lte=1"`
	DefensiveStability float64 `mapstructure:"defensive_stability" validate:"gte=0,lte=1"`
	LeaguePositionGap  float64 `mapstructure:"league_position_gap" validate:"gte=0,lte=1"`
	HistoricalMatchup  float64 `mapstructure:"historical_matchup" validate:"gte=0,lte=1"`
	OddsStability      float64 `mapstructure:"odds_stability" validate:"gte=0,lte=1"`
}

// Sum returns the total of all six weights
func (w ScoringWeights) Sum() float64 {
	return w.RecentForm + w.GoalTrends + w.DefensiveStability +
		w.LeaguePositionGap + w.HistoricalMatchup + w.OddsStability
}

// ConfidenceCuts maps a risk score to a confidence tier: scores at or
// below High are High confidence, at or below Medium are Medium, else Low.
type ConfidenceCuts struct {
	High   float64 `mapstructure:"high" validate:"required,gt=0"`
	Medium float64 `mapstructure:"medium" validate:"required,gt=0"`
}

// ScoringConfig represents risk scoring configuration
type ScoringConfig struct {
	Weights          ScoringWeights `mapstructure:"weights" validate:"required"`
	MinFormMatches   int            `mapstructure:"min_form_matches" validate:"required,gt=0"`
	MinHeadToHead    int            `mapstructure:"min_head_to_head" validate:"required,gt=0"`
	MarketConfidence ConfidenceCuts `mapstructure:"market_confidence" validate:"required"`
	SlipConfidence   ConfidenceCuts `mapstructure:"slip_confidence" validate:"required"`
}

// MarketsConfig represents market filtering configuration
type MarketsConfig struct {
	AllowedMarketIDs []int    `mapstructure:"allowed_market_ids" validate:"required,min=1"`
	ExcludedKeywords []string `mapstructure:"excluded_keywords"`
}

// LeaguesConfig represents fixture filtering configuration
type LeaguesConfig struct {
	AllowedLeagueIDs []int    `mapstructure:"allowed_league_ids" validate:"required,min=1"`
	ExcludedRounds   []string `mapstructure:"excluded_rounds"`
}

// BetProfile represents one risk profile's slip constraints
type BetProfile struct {
	MinOdds       float64 `mapstructure:"min_odds" validate:"required,gt=1"`
	MaxOdds       float64 `mapstructure:"max_odds" validate:"required,gt=1"`
	MinSelections int     `mapstructure:"min_selections" validate:"required,gt=0"`
	MaxSelections int     `mapstructure:"max_selections" validate:"required,gt=0"`
	MaxRiskScore  int     `mapstructure:"max_risk_score" validate:"required,gt=0,lte=100"`
	MaxPerLeague  int     `mapstructure:"max_per_league" validate:"gte=0"`
}

// OddsMidpoint returns the center of the profile's target odds range
func (p BetProfile) OddsMidpoint() float64 {
	return (p.MinOdds + p.MaxOdds) / 2
}

// ProfilesConfig represents the two fixed generation profiles
type ProfilesConfig struct {
	LowRisk    BetProfile `mapstructure:"low_risk" validate:"required"`
	MediumRisk BetProfile `mapstructure:"medium_risk" validate:"required"`
}

// SchedulerConfig represents the daily generation schedule
type SchedulerConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	DailyCron string `mapstructure:"daily_cron"`
}

// MetricsConfig represents metrics exposure configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// DSN returns a PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
	)
}

// ProviderTimeout returns the provider request timeout as a duration
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}
