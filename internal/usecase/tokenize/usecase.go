package tokenize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"oqassets-backend/internal/domain/asset"
	"oqassets-backend/internal/domain/document"
	"oqassets-backend/internal/domain/uow"
	domain "oqassets-backend/internal/domain/valuation"
	"oqassets-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AcceptValuationInput struct {
	JobID        string `json:"job_id"`
	OwnerAddress string `json:"owner_address"`
}

type AssetDTO struct {
	AssetID      string          `json:"asset_id"`
	DocumentID   string          `json:"document_id"`
	OwnerAddress string          `json:"owner_address"`
	FaceValue    decimal.Decimal `json:"face_value"`
	TokenID      string          `json:"token_id"`
	MintTxHash   string          `json:"mint_tx_hash"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Usecase turns an accepted valuation into a minted oqAsset. The chain call
// happens first; nothing is persisted until the receipt is back, and then the
// asset insert and the document transition commit together.
type Usecase struct {
	jobs      domain.Repository
	docs      document.Repository
	uow       uow.UnitOfWork
	submitter asset.Submitter
}

func NewUsecase(jobs domain.Repository, docs document.Repository, tx uow.UnitOfWork, submitter asset.Submitter) *Usecase {
	return &Usecase{jobs: jobs, docs: docs, uow: tx, submitter: submitter}
}

func (u *Usecase) Accept(ctx context.Context, in AcceptValuationInput) (*AssetDTO, error) {
	if in.JobID == "" || in.OwnerAddress == "" {
		return nil, errors.New("invalid input")
	}

	j, err := u.jobs.GetByJobID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	// Manual-review results are not mintable until a human promotes them.
	if j.Status != domain.StatusDone {
		return nil, domain.ErrNotDone
	}

	doc, err := u.docs.GetByID(ctx, j.DocumentID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(doc.OwnerAddress, in.OwnerAddress) {
		return nil, asset.ErrNotOwner
	}
	switch doc.Status {
	case document.StatusValued:
	case document.StatusMinted:
		return nil, asset.ErrAlreadyMinted
	default:
		return nil, document.ErrNotValued
	}

	meta := asset.MintMetadata{
		DocHash:      doc.DocHash,
		Valuation:    j.SuggestedValue,
		MaturityDate: doc.MaturityDate,
		AssetType:    doc.AssetType,
	}
	receipt, err := u.submitter.MintAsset(ctx, doc.OwnerAddress, meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", asset.ErrMintFailed, err)
	}

	var dto *AssetDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cur, err := r.Documents.GetByID(ctx, doc.ID)
		if err != nil {
			return err
		}
		if cur.Status != document.StatusValued {
			return asset.ErrAlreadyMinted
		}
		a := &asset.Asset{
			AssetID:      id.NewID32(),
			DocumentID:   cur.ID,
			OwnerAddress: strings.ToLower(cur.OwnerAddress),
			FaceValue:    j.SuggestedValue,
			TokenID:      receipt.TokenID,
			MintTxHash:   receipt.TxHash,
		}
		if err := r.Assets.Create(ctx, a); err != nil {
			return err
		}
		cur.Status = document.StatusMinted
		cur.StatusUpdatedAt = time.Now().UTC()
		if err := r.Documents.Save(ctx, cur); err != nil {
			return err
		}
		dto = &AssetDTO{
			AssetID:      a.AssetID,
			DocumentID:   cur.DocumentID,
			OwnerAddress: a.OwnerAddress,
			FaceValue:    a.FaceValue,
			TokenID:      a.TokenID,
			MintTxHash:   a.MintTxHash,
			CreatedAt:    a.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
