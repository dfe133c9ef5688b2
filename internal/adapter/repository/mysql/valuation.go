package mysql

import (
	"context"

	valDomain "oqassets-backend/internal/domain/valuation"

	"gorm.io/gorm"
)

type ValuationRepository struct{ db *gorm.DB }

func NewValuationRepository(db *gorm.DB) *ValuationRepository { return &ValuationRepository{db: db} }

func (r *ValuationRepository) Create(ctx context.Context, j *valDomain.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *ValuationRepository) Save(ctx context.Context, j *valDomain.Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *ValuationRepository) GetByJobID(ctx context.Context, jobID string) (*valDomain.Job, error) {
	var out valDomain.Job
	res := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&out)
	return &out, res.Error
}
