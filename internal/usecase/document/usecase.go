package document

import (
	"context"
	"errors"
	"time"

	domain "oqassets-backend/internal/domain/document"
	"oqassets-backend/pkg/id"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RegisterInput struct {
	OwnerAddress string `json:"owner_address"`
	FileName     string `json:"file_name"`
	DocHash      string `json:"doc_hash"`
	AssetType    string `json:"asset_type"`
	MaturityDate string `json:"maturity_date"`
}

type DocumentDTO struct {
	DocumentID     string          `json:"document_id"`
	OwnerAddress   string          `json:"owner_address"`
	FileName       string          `json:"file_name"`
	AssetType      string          `json:"asset_type"`
	Status         string          `json:"status"`
	SuggestedValue decimal.Decimal `json:"suggested_value"`
	Confidence     decimal.Decimal `json:"confidence"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Usecase registers document records. The actual file upload/storage happens
// elsewhere; this service only tracks the hash and the valuation state.
type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*DocumentDTO, error) {
	if !common.IsHexAddress(in.OwnerAddress) || len(in.DocHash) != 64 {
		return nil, errors.New("invalid input")
	}
	maturity, err := time.Parse("2006-01-02", in.MaturityDate)
	if err != nil {
		return nil, errors.New("maturity_date must be YYYY-MM-DD")
	}
	assetType := in.AssetType
	if assetType == "" {
		assetType = "invoice"
	}

	d := &domain.Document{
		DocumentID:      id.NewID32(),
		OwnerAddress:    common.HexToAddress(in.OwnerAddress).Hex(),
		FileName:        in.FileName,
		DocHash:         in.DocHash,
		AssetType:       assetType,
		MaturityDate:    maturity,
		Status:          domain.StatusUploaded,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDTO(d), nil
}

func (u *Usecase) Get(ctx context.Context, documentID string) (*DocumentDTO, error) {
	d, err := u.repo.GetByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(d), nil
}

func toDTO(d *domain.Document) *DocumentDTO {
	return &DocumentDTO{
		DocumentID:     d.DocumentID,
		OwnerAddress:   d.OwnerAddress,
		FileName:       d.FileName,
		AssetType:      d.AssetType,
		Status:         string(d.Status),
		SuggestedValue: d.SuggestedValue,
		Confidence:     d.Confidence,
		CreatedAt:      d.CreatedAt,
	}
}
