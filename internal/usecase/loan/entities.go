package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	UserAddress string          `json:"user_address"`
	AssetID     string          `json:"asset_id"`
	Principal   decimal.Decimal `json:"principal"`
	AnnualRate  decimal.Decimal `json:"annual_rate"`
}

type RepayInput struct {
	LoanID string          `json:"loan_id"`
	Amount decimal.Decimal `json:"amount"`
}

type LoanDTO struct {
	LoanID          string          `json:"loan_id"`
	UserAddress     string          `json:"user_id"`
	AssetID         string          `json:"asset_id"`
	Principal       decimal.Decimal `json:"principal"`
	AccruedInterest decimal.Decimal `json:"accrued_interest"`
	AnnualRate      decimal.Decimal `json:"annual_rate"`
	LTV             decimal.Decimal `json:"ltv"`
	CurrentLTV      decimal.Decimal `json:"current_ltv"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
