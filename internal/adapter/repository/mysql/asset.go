package mysql

import (
	"context"

	assetDomain "oqassets-backend/internal/domain/asset"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssetRepository struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) *AssetRepository { return &AssetRepository{db: db} }

func (r *AssetRepository) Create(ctx context.Context, a *assetDomain.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssetRepository) GetByAssetID(ctx context.Context, assetID string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}

// LockByAssetID issues SELECT ... FOR UPDATE so concurrent admissions against
// the same asset serialize on the row instead of racing on snapshot reads.
func (r *AssetRepository) LockByAssetID(ctx context.Context, assetID string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}

func (r *AssetRepository) GetByDocumentID(ctx context.Context, documentID uint64) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).Where("document_id = ?", documentID).First(&out)
	return &out, res.Error
}
