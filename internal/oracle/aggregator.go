package oracle

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrDegenerateInput: every estimate carried zero confidence, so the
	// weighted mean is undefined.
	ErrDegenerateInput = errors.New("oracle: aggregation over zero total confidence")
	ErrNoEstimates     = errors.New("oracle: no estimates to aggregate")
)

// Estimate is one source's opinion of a document's value.
type Estimate struct {
	Source     string
	Value      decimal.Decimal
	Confidence decimal.Decimal
}

// Aggregate is the reconciled result of a consultation round.
type Aggregate struct {
	// SuggestedValue is the confidence-weighted mean, rounded to cents.
	SuggestedValue decimal.Decimal
	// Confidence is the plain mean of source confidences, rounded to 2
	// places. Note the denominator is N, not the weight total: this is the
	// average trust level, not the weighting sum.
	Confidence decimal.Decimal
}

// Aggregator folds independent estimates into one trusted value and decides
// whether it is usable without human sign-off.
type Aggregator struct {
	reviewThreshold decimal.Decimal
}

// NewAggregator builds an aggregator. Results at or below threshold require
// manual review; strictly above is auto-acceptable.
func NewAggregator(reviewThreshold decimal.Decimal) *Aggregator {
	return &Aggregator{reviewThreshold: reviewThreshold}
}

func (a *Aggregator) Aggregate(estimates []Estimate) (Aggregate, error) {
	if len(estimates) == 0 {
		return Aggregate{}, ErrNoEstimates
	}

	weighted := decimal.Zero
	totalWeight := decimal.Zero
	for _, e := range estimates {
		weighted = weighted.Add(e.Value.Mul(e.Confidence))
		totalWeight = totalWeight.Add(e.Confidence)
	}
	if totalWeight.IsZero() {
		return Aggregate{}, ErrDegenerateInput
	}

	n := decimal.NewFromInt(int64(len(estimates)))
	return Aggregate{
		SuggestedValue: weighted.Div(totalWeight).Round(2),
		Confidence:     totalWeight.Div(n).Round(2),
	}, nil
}

// NeedsReview reports whether a result with the given confidence must be held
// for human sign-off.
func (a *Aggregator) NeedsReview(confidence decimal.Decimal) bool {
	return confidence.LessThanOrEqual(a.reviewThreshold)
}
