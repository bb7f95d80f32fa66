package lead

import (
	"context"
	"time"

	"crmboard/internal/domain"
	"crmboard/internal/repository"
)

type LeadRepositoryInterface interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, companyID, id int64) (*domain.Lead, error)
	List(ctx context.Context, companyID int64, f repository.LeadFilter) ([]domain.Lead, error)
	ListByStage(ctx context.Context, companyID, stageID int64) ([]domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
	TouchLastContact(ctx context.Context, companyID, leadID int64, at time.Time) error
	Delete(ctx context.Context, companyID, id int64) error
}

type StageReader interface {
	GetByID(ctx context.Context, companyID, id int64) (*domain.Stage, error)
}

type FieldRepositoryInterface interface {
	GetByID(ctx context.Context, companyID, id int64) (*domain.CustomField, error)
	UpsertValue(ctx context.Context, v *domain.CustomValue) error
	ValuesForLead(ctx context.Context, leadID int64) ([]domain.CustomValue, error)
}

type BoardInvalidator interface {
	Invalidate(companyID, pipelineID int64)
}
