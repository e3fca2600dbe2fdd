// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/samellow/matchsense/internal/models"
)

// AuditLogger provides a dedicated audit trail for generation runs.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogSlipGenerated records a generated slip with its headline numbers.
func (al *AuditLogger) LogSlipGenerated(runID, profile string, bet *models.GeneratedBet) {
	if bet == nil {
		al.WithFields(logrus.Fields{
			"run_id":  runID,
			"profile": profile,
		}).Info("No feasible slip for profile")
		return
	}

	al.WithFields(logrus.Fields{
		"run_id":     runID,
		"profile":    profile,
		"total_odds": bet.TotalOdds,
		"confidence": bet.Confidence,
		"selections": len(bet.Selections),
	}).Info("Slip generated")
}

// LogFixtureDropped records a fixture excluded from a run.
func (al *AuditLogger) LogFixtureDropped(runID string, fixtureID int, reason string) {
	al.WithFields(logrus.Fields{
		"run_id":     runID,
		"fixture_id": fixtureID,
		"reason":     reason,
	}).Warn("Fixture dropped from run")
}

// LogRunCompleted records the outcome of a full generation run.
func (al *AuditLogger) LogRunCompleted(runID, date string, fixtures, enriched, scored int, lowRisk, mediumRisk bool) {
	al.WithFields(logrus.Fields{
		"run_id":           runID,
		"date":             date,
		"fixtures":         fixtures,
		"enriched":         enriched,
		"scored_markets":   scored,
		"low_risk_slip":    lowRisk,
		"medium_risk_slip": mediumRisk,
	}).Info("Generation run completed")
}
