package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("loan not found")
	// ErrAssetCollateralized: the asset already backs an active loan.
	ErrAssetCollateralized = errors.New("asset already collateralizes an active loan")
	// ErrLTVTooHigh: admission control rejection; wrappers carry the computed LTV.
	ErrLTVTooHigh = errors.New("requested LTV exceeds admission cap")
	// ErrNotActive: mutation attempted on a repaid or liquidated loan.
	ErrNotActive = errors.New("loan is not active")
	// ErrStale: optimistic version check lost the race; caller should retry.
	ErrStale = errors.New("loan version is stale")
)

type Status string

const (
	StatusActive     Status = "active"
	StatusRepaid     Status = "repaid"
	StatusLiquidated Status = "liquidated"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool { return s == StatusRepaid || s == StatusLiquidated }

type Loan struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID      string `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserAddress string `gorm:"size:42;index:idx_loans_user" json:"user_id"`
	AssetID     string `gorm:"size:32;index:idx_loans_asset" json:"asset_id"`
	// Principal grows with each accrual sweep; AccruedInterest records the
	// accrued portion separately so the original debt stays recoverable.
	Principal       decimal.Decimal `gorm:"type:decimal(18,6)" json:"principal"`
	AccruedInterest decimal.Decimal `gorm:"type:decimal(18,6)" json:"accrued_interest"`
	// AnnualRate is a percentage, e.g. 10.00 for 10% APR.
	AnnualRate decimal.Decimal `gorm:"type:decimal(6,2)" json:"annual_rate"`
	// LTV is fixed at admission; CurrentLTV is refreshed by the sweeps.
	LTV        decimal.Decimal `gorm:"type:decimal(9,4)" json:"ltv"`
	CurrentLTV decimal.Decimal `gorm:"type:decimal(9,4)" json:"current_ltv"`
	Status     Status          `gorm:"type:enum('active','repaid','liquidated');default:'active'" json:"status"`
	// Version backs the compare-and-swap update discipline.
	Version         uint64    `gorm:"default:0" json:"-"`
	StatusUpdatedAt time.Time `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
