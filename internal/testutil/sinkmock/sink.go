package sinkmock

import (
	"context"
	"sync"

	"oqassets-backend/internal/domain/event"
)

var _ event.Sink = (*Sink)(nil)

// Sink records every published event so tests can assert on the sequence.
// Safe for concurrent use.
type Sink struct {
	mu         sync.Mutex
	valuations []event.ValuationEvent
	risks      []event.RiskEvent

	PublishValuationFn func(ctx context.Context, ev event.ValuationEvent) error
	PublishRiskFn      func(ctx context.Context, ev event.RiskEvent) error
}

func (m *Sink) PublishValuation(ctx context.Context, ev event.ValuationEvent) error {
	m.mu.Lock()
	m.valuations = append(m.valuations, ev)
	m.mu.Unlock()
	if m.PublishValuationFn != nil {
		return m.PublishValuationFn(ctx, ev)
	}
	return nil
}

func (m *Sink) PublishRisk(ctx context.Context, ev event.RiskEvent) error {
	m.mu.Lock()
	m.risks = append(m.risks, ev)
	m.mu.Unlock()
	if m.PublishRiskFn != nil {
		return m.PublishRiskFn(ctx, ev)
	}
	return nil
}

func (m *Sink) Valuations() []event.ValuationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.ValuationEvent, len(m.valuations))
	copy(out, m.valuations)
	return out
}

func (m *Sink) Risks() []event.RiskEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.RiskEvent, len(m.risks))
	copy(out, m.risks)
	return out
}
