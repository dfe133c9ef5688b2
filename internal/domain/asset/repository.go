package asset

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByAssetID(ctx context.Context, assetID string) (*Asset, error)
	// LockByAssetID reads the asset under a row lock held until the
	// surrounding transaction ends. Only meaningful inside a UnitOfWork.
	LockByAssetID(ctx context.Context, assetID string) (*Asset, error)
	GetByDocumentID(ctx context.Context, documentID uint64) (*Asset, error)
}

// MintMetadata enumerates the fields forwarded to the chain on mint. Arbitrary
// payloads are deliberately not accepted.
type MintMetadata struct {
	DocHash      string
	Valuation    decimal.Decimal
	MaturityDate time.Time
	AssetType    string
}

type MintReceipt struct {
	TxHash  string
	TokenID string
}

// Submitter is the blockchain boundary. Implementations may be slow and must
// honor ctx; callers persist nothing until the receipt comes back.
type Submitter interface {
	MintAsset(ctx context.Context, ownerAddress string, meta MintMetadata) (*MintReceipt, error)
}
