package valuation

import "context"

type Repository interface {
	Create(ctx context.Context, j *Job) error
	GetByJobID(ctx context.Context, jobID string) (*Job, error)
	Save(ctx context.Context, j *Job) error
}
