package document

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrNotValued = errors.New("document has no accepted valuation")
)

type Status string

const (
	StatusUploaded Status = "uploaded"
	StatusValued   Status = "valued"
	StatusMinted   Status = "minted"
)

// Document is the uploaded collateral artifact. Upload/storage mechanics live
// outside this service; we only keep the record and its valuation state.
type Document struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	DocumentID   string `gorm:"size:32;uniqueIndex:ux_documents_document_id" json:"document_id"`
	OwnerAddress string `gorm:"size:42;index:idx_documents_owner" json:"owner_address"`
	FileName     string `gorm:"type:text" json:"file_name"`
	// DocHash is the sha256 of the uploaded content, hex encoded.
	DocHash   string `gorm:"size:64" json:"doc_hash"`
	AssetType string `gorm:"size:32;default:'invoice'" json:"asset_type"`
	// MaturityDate is the invoice due date; carried into mint metadata.
	MaturityDate time.Time `gorm:"type:date" json:"maturity_date"`
	Status       Status    `gorm:"type:enum('uploaded','valued','minted');default:'uploaded'" json:"status"`
	// SuggestedValue/Confidence are filled when a valuation job lands done.
	SuggestedValue  decimal.Decimal `gorm:"type:decimal(18,2)" json:"suggested_value"`
	Confidence      decimal.Decimal `gorm:"type:decimal(4,2)" json:"confidence"`
	StatusUpdatedAt time.Time       `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
