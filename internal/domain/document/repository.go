package document

import "context"

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uint64) (*Document, error)
	GetByDocumentID(ctx context.Context, documentID string) (*Document, error)
	Save(ctx context.Context, d *Document) error
}
