package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM, decimals as text) ---

type documentSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	DocumentID      string    `gorm:"size:32;column:document_id"`
	OwnerAddress    string    `gorm:"size:42;column:owner_address"`
	FileName        string    `gorm:"column:file_name"`
	DocHash         string    `gorm:"size:64;column:doc_hash"`
	AssetType       string    `gorm:"size:32;column:asset_type"`
	MaturityDate    time.Time `gorm:"column:maturity_date"`
	Status          string    `gorm:"type:text;column:status"` // ← no enum
	SuggestedValue  string    `gorm:"type:text;column:suggested_value"`
	Confidence      string    `gorm:"type:text;column:confidence"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (documentSQLite) TableName() string { return "documents" }

type assetSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	AssetID      string    `gorm:"size:32;column:asset_id"`
	DocumentID   uint64    `gorm:"uniqueIndex:ux_assets_document;column:document_id"`
	OwnerAddress string    `gorm:"size:42;column:owner_address"`
	FaceValue    string    `gorm:"type:text;column:face_value"`
	TokenID      string    `gorm:"size:32;column:token_id"`
	MintTxHash   string    `gorm:"size:66;column:mint_tx_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (assetSQLite) TableName() string { return "assets" }

type loanSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	LoanID          string    `gorm:"size:32;column:loan_id"`
	UserAddress     string    `gorm:"size:42;column:user_address"`
	AssetID         string    `gorm:"size:32;column:asset_id"`
	Principal       string    `gorm:"type:text;column:principal"`
	AccruedInterest string    `gorm:"type:text;column:accrued_interest"`
	AnnualRate      string    `gorm:"type:text;column:annual_rate"`
	LTV             string    `gorm:"type:text;column:ltv"`
	CurrentLTV      string    `gorm:"type:text;column:current_ltv"`
	Status          string    `gorm:"type:text;column:status"` // ← no enum
	Version         uint64    `gorm:"column:version"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type valuationJobSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	JobID          string    `gorm:"size:36;column:job_id"`
	DocumentID     uint64    `gorm:"column:document_id"`
	SuggestedValue string    `gorm:"type:text;column:suggested_value"`
	Confidence     string    `gorm:"type:text;column:confidence"`
	Sources        string    `gorm:"type:text;column:sources"`
	Status         string    `gorm:"type:text;column:status"` // ← no enum
	ErrorMessage   string    `gorm:"type:text;column:error_message"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (valuationJobSQLite) TableName() string { return "valuation_jobs" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&documentSQLite{}, &assetSQLite{}, &loanSQLite{}, &valuationJobSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
