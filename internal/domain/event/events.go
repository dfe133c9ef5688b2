package event

import (
	"context"

	"github.com/shopspring/decimal"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// ValuationEvent is one progress tick of a valuation job. Consumers (websocket
// gateway, notifier) live outside this service.
type ValuationEvent struct {
	JobID      string `json:"job_id"`
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Progress   int    `json:"progress"`
	Message    string `json:"message"`
	// Result fields are set only on the terminal event of a completed job.
	SuggestedValue *decimal.Decimal `json:"suggested_value,omitempty"`
	Confidence     *decimal.Decimal `json:"confidence,omitempty"`
}

// RiskEvent signals a loan crossing a risk threshold.
type RiskEvent struct {
	LoanID      string          `json:"loan_id"`
	UserAddress string          `json:"user_id"`
	Severity    Severity        `json:"severity"`
	Message     string          `json:"message"`
	CurrentLTV  decimal.Decimal `json:"current_ltv"`
}

// Sink is the outbound event boundary. Delivery failures are the publisher's
// problem to log; business flows never fail on a sink error.
type Sink interface {
	PublishValuation(ctx context.Context, ev ValuationEvent) error
	PublishRisk(ctx context.Context, ev RiskEvent) error
}
