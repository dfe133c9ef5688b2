package valuation

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"time"

	"oqassets-backend/internal/domain/document"

	"github.com/shopspring/decimal"
)

// Analyzer covers the pre-oracle stages of the pipeline: content analysis and
// financial extraction. The simulated implementation stands in for an ML
// backend and is the piece to replace when one exists.
type Analyzer interface {
	AnalyzeContent(ctx context.Context, doc *document.Document) error
	ExtractFinancials(ctx context.Context, doc *document.Document) (decimal.Decimal, error)
}

// SimulatedAnalyzer derives a deterministic face amount from the document
// hash, so the same document always extracts to the same value.
type SimulatedAnalyzer struct {
	// StageDelay models per-stage processing time; zero in tests.
	StageDelay time.Duration
}

func (a *SimulatedAnalyzer) AnalyzeContent(ctx context.Context, doc *document.Document) error {
	if err := a.wait(ctx); err != nil {
		return err
	}
	if doc.DocHash == "" {
		return errors.New("analyzer: document has no content hash")
	}
	return nil
}

func (a *SimulatedAnalyzer) ExtractFinancials(ctx context.Context, doc *document.Document) (decimal.Decimal, error) {
	if err := a.wait(ctx); err != nil {
		return decimal.Zero, err
	}
	b, err := hex.DecodeString(doc.DocHash)
	if err != nil || len(b) < 8 {
		return decimal.Zero, errors.New("analyzer: malformed content hash")
	}
	// Invoice amounts between 1,000.00 and 101,000.00 USD.
	cents := binary.BigEndian.Uint64(b[:8]) % 10_000_001
	return decimal.NewFromInt(int64(cents)).Div(decimal.NewFromInt(100)).Add(decimal.NewFromInt(1000)), nil
}

func (a *SimulatedAnalyzer) wait(ctx context.Context) error {
	if a.StageDelay <= 0 {
		return nil
	}
	t := time.NewTimer(a.StageDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
