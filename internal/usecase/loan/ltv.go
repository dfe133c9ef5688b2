package loan

import (
	"context"
	"errors"

	"oqassets-backend/internal/domain/asset"
	domain "oqassets-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LTVModel computes a loan's current LTV. It is an interface because the
// upstream system's recomputation formula is circular (it re-derives the
// collateral value from the stored admission LTV and the already-inflated
// principal); keeping it behind this seam lets the anchored formula be swapped
// for a live-collateral one without touching the ledger.
type LTVModel interface {
	CurrentLTV(ctx context.Context, l *domain.Loan) (decimal.Decimal, error)
}

// AnchoredLTV reproduces the upstream recomputation verbatim:
//
//	current_ltv = principal / (principal / stored_ltv * 100) * 100
//
// Both occurrences of principal are the current, interest-inflated one, so the
// expression collapses to the stored LTV. Preserved for compatibility.
type AnchoredLTV struct{}

func (AnchoredLTV) CurrentLTV(_ context.Context, l *domain.Loan) (decimal.Decimal, error) {
	if l.LTV.IsZero() || l.Principal.IsZero() {
		return decimal.Zero, nil
	}
	impliedCollateral := l.Principal.Div(l.LTV).Mul(hundred)
	return l.Principal.Div(impliedCollateral).Mul(hundred), nil
}

// FaceValueLTV computes LTV against the collateral asset's minted face value,
// which is what the thresholds are actually meant to measure.
type FaceValueLTV struct {
	Assets asset.Repository
}

func (m FaceValueLTV) CurrentLTV(ctx context.Context, l *domain.Loan) (decimal.Decimal, error) {
	a, err := m.Assets.GetByAssetID(ctx, l.AssetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, asset.ErrNotFound
		}
		return decimal.Zero, err
	}
	if a.FaceValue.IsZero() {
		return decimal.Zero, nil
	}
	return l.Principal.Div(a.FaceValue).Mul(hundred), nil
}

// NewLTVModel resolves a configured model name, defaulting to the anchored
// upstream-compatible formula.
func NewLTVModel(name string, assets asset.Repository) LTVModel {
	if name == "face_value" {
		return FaceValueLTV{Assets: assets}
	}
	return AnchoredLTV{}
}
