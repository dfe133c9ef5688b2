package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetActiveByAssetID(ctx context.Context, assetID string) (*Loan, error)
	ListByStatus(ctx context.Context, st Status) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	// UpdateWithVersion persists the mutable columns only when the stored
	// version still matches l.Version; returns ErrStale otherwise. On success
	// the version is bumped both in the row and on l.
	UpdateWithVersion(ctx context.Context, l *Loan) error
}
