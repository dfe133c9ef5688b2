package mysql

import (
	"context"
	"time"

	loanDomain "oqassets-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetActiveByAssetID(ctx context.Context, assetID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("asset_id = ? AND status = ?", assetID, loanDomain.StatusActive).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByStatus(ctx context.Context, st loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).Where("status = ?", st).Order("id ASC").Find(&out)
	return out, res.Error
}

// UpdateWithVersion is the conditional write behind the ledger's
// read-modify-write loop: the update only lands if nobody bumped the version
// since the read.
func (r *LoanRepository) UpdateWithVersion(ctx context.Context, l *loanDomain.Loan) error {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ? AND version = ?", l.ID, l.Version).
		Updates(map[string]any{
			"principal":         l.Principal,
			"accrued_interest":  l.AccruedInterest,
			"current_ltv":       l.CurrentLTV,
			"status":            l.Status,
			"status_updated_at": l.StatusUpdatedAt,
			"updated_at":        time.Now().UTC(),
			"version":           l.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrStale
	}
	l.Version++
	return nil
}
