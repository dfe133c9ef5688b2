package assetmock

import (
	"context"

	domain "oqassets-backend/internal/domain/asset"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, a *domain.Asset) error
	GetByAssetIDFn    func(ctx context.Context, assetID string) (*domain.Asset, error)
	LockByAssetIDFn   func(ctx context.Context, assetID string) (*domain.Asset, error)
	GetByDocumentIDFn func(ctx context.Context, documentID uint64) (*domain.Asset, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Asset) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAssetID(ctx context.Context, assetID string) (*domain.Asset, error) {
	if m.GetByAssetIDFn != nil {
		return m.GetByAssetIDFn(ctx, assetID)
	}
	return nil, gorm.ErrRecordNotFound
}

// LockByAssetID defaults to the plain lookup; locking is a no-op in mocks.
func (m *Repo) LockByAssetID(ctx context.Context, assetID string) (*domain.Asset, error) {
	if m.LockByAssetIDFn != nil {
		return m.LockByAssetIDFn(ctx, assetID)
	}
	return m.GetByAssetID(ctx, assetID)
}

func (m *Repo) GetByDocumentID(ctx context.Context, documentID uint64) (*domain.Asset, error) {
	if m.GetByDocumentIDFn != nil {
		return m.GetByDocumentIDFn(ctx, documentID)
	}
	return nil, gorm.ErrRecordNotFound
}
