package oracle

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNoSources = errors.New("oracle: no sources configured")

// Request carries everything a source needs to price a document.
type Request struct {
	DocHash   string
	AssetType string
	// ExtractedValue is the face amount pulled out of the document by the
	// extraction stage; sources price around it.
	ExtractedValue decimal.Decimal
}

// Source is one independent estimator. Estimate must honor ctx; callers apply
// their own per-source timeout.
type Source interface {
	Name() string
	Estimate(ctx context.Context, req Request) (Estimate, error)
}

// SimulatedSource stands in for a real pricing backend. It derives a
// deterministic deviation from the document hash so repeated runs over the
// same document agree, applies its configured spread, and sleeps a small
// latency to model a network round-trip.
type SimulatedSource struct {
	name       string
	spread     decimal.Decimal // max relative deviation, e.g. 0.05 for ±5%
	confidence decimal.Decimal
	latency    time.Duration
}

func NewSimulatedSource(name string, spread, confidence decimal.Decimal, latency time.Duration) *SimulatedSource {
	return &SimulatedSource{name: name, spread: spread, confidence: confidence, latency: latency}
}

func (s *SimulatedSource) Name() string { return s.name }

func (s *SimulatedSource) Estimate(ctx context.Context, req Request) (Estimate, error) {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Estimate{}, ctx.Err()
		case <-t.C:
		}
	}
	if req.ExtractedValue.Sign() <= 0 {
		return Estimate{}, fmt.Errorf("source %s: non-positive base value", s.name)
	}

	// Deviation in [-spread, +spread], keyed by doc hash and source name so
	// distinct sources disagree on the same document.
	dev := s.spread.Mul(deviationFactor(req.DocHash + ":" + s.name))
	value := req.ExtractedValue.Mul(decimal.NewFromInt(1).Add(dev)).Round(2)

	return Estimate{Source: s.name, Value: value, Confidence: s.confidence}, nil
}

// deviationFactor maps a seed string onto [-1, 1].
func deviationFactor(seed string) decimal.Decimal {
	b, err := hex.DecodeString(seed)
	if err != nil || len(b) < 8 {
		sum := [8]byte{}
		for i, c := range []byte(seed) {
			sum[i%8] ^= c
		}
		b = sum[:]
	}
	u := binary.BigEndian.Uint64(b[:8])
	// scale to [0,2) then shift to [-1,1)
	f := decimal.NewFromInt(int64(u % 20001)).Div(decimal.NewFromInt(10000))
	return f.Sub(decimal.NewFromInt(1))
}

// SourcesFromSpec parses a comma list of "name:spread:confidence" entries into
// simulated sources, e.g. "marketdata:0.05:0.9,comps:0.10:0.8,risk:0.08:0.6".
// The set of sources is configuration, never hard-coded.
func SourcesFromSpec(spec string, latency time.Duration) ([]Source, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrNoSources
	}
	var out []Source
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 || parts[0] == "" {
			return nil, fmt.Errorf("invalid oracle source spec %q", entry)
		}
		spread, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid spread in %q: %w", entry, err)
		}
		conf, err := decimal.NewFromString(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid confidence in %q: %w", entry, err)
		}
		if conf.IsNegative() || conf.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("confidence out of [0,1] in %q", entry)
		}
		out = append(out, NewSimulatedSource(parts[0], spread, conf, latency))
	}
	return out, nil
}
