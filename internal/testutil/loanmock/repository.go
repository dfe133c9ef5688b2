package loanmock

import (
	"context"

	domain "oqassets-backend/internal/domain/loan"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled getters return
// gorm.ErrRecordNotFound so "not found" is the default world.
type Repo struct {
	CreateFn             func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn        func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetActiveByAssetIDFn func(ctx context.Context, assetID string) (*domain.Loan, error)
	ListByStatusFn       func(ctx context.Context, st domain.Status) ([]domain.Loan, error)
	SaveFn               func(ctx context.Context, l *domain.Loan) error
	UpdateWithVersionFn  func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetActiveByAssetID(ctx context.Context, assetID string) (*domain.Loan, error) {
	if m.GetActiveByAssetIDFn != nil {
		return m.GetActiveByAssetIDFn(ctx, assetID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByStatus(ctx context.Context, st domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, st)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) UpdateWithVersion(ctx context.Context, l *domain.Loan) error {
	if m.UpdateWithVersionFn != nil {
		return m.UpdateWithVersionFn(ctx, l)
	}
	l.Version++
	return nil
}
