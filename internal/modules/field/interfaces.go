package field

import (
	"context"

	"crmboard/internal/domain"
)

type FieldRepositoryInterface interface {
	Create(ctx context.Context, f *domain.CustomField) error
	GetByID(ctx context.Context, companyID, id int64) (*domain.CustomField, error)
	ListForPipeline(ctx context.Context, companyID, pipelineID int64) ([]domain.CustomField, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.CustomField, error)
	Update(ctx context.Context, f *domain.CustomField) error
	Delete(ctx context.Context, companyID, id int64) error
}

type PipelineReader interface {
	GetByID(ctx context.Context, companyID, id int64) (*domain.Pipeline, error)
}
