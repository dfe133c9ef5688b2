package asset

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("asset not found")
	ErrNotOwner      = errors.New("asset not owned by caller")
	ErrAlreadyMinted = errors.New("document already minted")
	ErrMintFailed    = errors.New("mint submission failed")
)

// Asset is a minted oqAsset token backed by a valued document. FaceValue is
// written exactly once, from the accepted valuation, and never mutated.
type Asset struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	AssetID      string          `gorm:"size:32;uniqueIndex:ux_assets_asset_id" json:"asset_id"`
	DocumentID   uint64          `gorm:"uniqueIndex:ux_assets_document" json:"-"`
	OwnerAddress string          `gorm:"size:42;index:idx_assets_owner" json:"owner_address"`
	FaceValue    decimal.Decimal `gorm:"type:decimal(18,2)" json:"face_value"`
	TokenID      string          `gorm:"size:32" json:"token_id"`
	MintTxHash   string          `gorm:"size:66" json:"mint_tx_hash"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Asset) TableName() string { return "assets" }
