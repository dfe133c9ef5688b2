package mysql

import (
	"context"

	"oqassets-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Documents:  &DocumentRepository{db: tx},
			Assets:     &AssetRepository{db: tx},
			Loans:      &LoanRepository{db: tx},
			Valuations: &ValuationRepository{db: tx},
		}
		return fn(r)
	})
}
