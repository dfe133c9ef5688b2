package valmock

import (
	"context"

	domain "oqassets-backend/internal/domain/valuation"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, j *domain.Job) error
	GetByJobIDFn func(ctx context.Context, jobID string) (*domain.Job, error)
	SaveFn       func(ctx context.Context, j *domain.Job) error
}

func (m *Repo) Create(ctx context.Context, j *domain.Job) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, j)
	}
	return nil
}

func (m *Repo) GetByJobID(ctx context.Context, jobID string) (*domain.Job, error) {
	if m.GetByJobIDFn != nil {
		return m.GetByJobIDFn(ctx, jobID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, j *domain.Job) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, j)
	}
	return nil
}
