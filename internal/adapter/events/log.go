package events

import (
	"context"
	"log"

	"oqassets-backend/internal/domain/event"
)

// LogSink writes events to the process log. Used when no redis is configured.
type LogSink struct{}

func (LogSink) PublishValuation(_ context.Context, ev event.ValuationEvent) error {
	log.Printf("event: valuation job=%s doc=%s status=%s progress=%d msg=%q",
		ev.JobID, ev.DocumentID, ev.Status, ev.Progress, ev.Message)
	return nil
}

func (LogSink) PublishRisk(_ context.Context, ev event.RiskEvent) error {
	log.Printf("event: risk loan=%s user=%s severity=%s ltv=%s msg=%q",
		ev.LoanID, ev.UserAddress, ev.Severity, ev.CurrentLTV, ev.Message)
	return nil
}
