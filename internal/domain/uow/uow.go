package uow

import (
	"context"

	"oqassets-backend/internal/domain/asset"
	"oqassets-backend/internal/domain/document"
	"oqassets-backend/internal/domain/loan"
	"oqassets-backend/internal/domain/valuation"
)

type Repos struct {
	Documents  document.Repository
	Assets     asset.Repository
	Loans      loan.Repository
	Valuations valuation.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn with repos bound to one transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
