// Package config provides configuration management for the MatchSense service.
package config

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	return validateCrossField(cfg)
}

func validateCrossField(cfg *Config) error {
	if sum := cfg.Scoring.Weights.Sum(); math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.4f", sum)
	}

	if cfg.Scoring.MarketConfidence.High >= cfg.Scoring.MarketConfidence.Medium {
		return fmt.Errorf("market confidence high cut (%.0f) must be below medium cut (%.0f)",
			cfg.Scoring.MarketConfidence.High, cfg.Scoring.MarketConfidence.Medium)
	}
	if cfg.Scoring.SlipConfidence.High >= cfg.Scoring.SlipConfidence.Medium {
		return fmt.Errorf("slip confidence high cut (%.0f) must be below medium cut (%.0f)",
			cfg.Scoring.SlipConfidence.High, cfg.Scoring.SlipConfidence.Medium)
	}

	for name, p := range map[string]BetProfile{
		"low_risk":    cfg.Profiles.LowRisk,
		"medium_risk": cfg.Profiles.MediumRisk,
	} {
		if err := validateProfile(name, p); err != nil {
			return err
		}
	}

	if cfg.Database.Enabled {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database is enabled but host, name or user is empty")
		}
	}

	return nil
}

func validateProfile(name string, p BetProfile) error {
	if p.MinOdds >= p.MaxOdds {
		return fmt.Errorf("profile %s: min_odds (%.2f) must be below max_odds (%.2f)", name, p.MinOdds, p.MaxOdds)
	}
	if p.MinSelections > p.MaxSelections {
		return fmt.Errorf("profile %s: min_selections (%d) must not exceed max_selections (%d)", name, p.MinSelections, p.MaxSelections)
	}
	return nil
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	}
	return false
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
		return true
	}
	return false
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return fmt.Errorf("invalid configuration: field %q failed rule %q (%d error(s) total)",
		first.Namespace(), first.Tag(), len(errs))
}
