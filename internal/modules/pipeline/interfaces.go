package pipeline

import (
	"context"

	"crmboard/internal/domain"
)

type PipelineRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Pipeline) error
	GetByID(ctx context.Context, companyID, id int64) (*domain.Pipeline, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Pipeline, error)
	Rename(ctx context.Context, companyID, id int64, name string) error
	Delete(ctx context.Context, companyID, id int64) error
}

type StageRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Stage) error
	GetByID(ctx context.Context, companyID, id int64) (*domain.Stage, error)
	ListByPipeline(ctx context.Context, companyID, pipelineID int64) ([]domain.Stage, error)
	Update(ctx context.Context, s *domain.Stage) error
	Delete(ctx context.Context, companyID, id int64) error
	CountByPipeline(ctx context.Context, companyID, pipelineID int64) (int64, error)
}

// LeadReassigner re-homes the leads of a deleted stage.
type LeadReassigner interface {
	ReassignStage(ctx context.Context, companyID, fromStageID, toStageID int64) error
}

// BoardInvalidator drops any cached in-memory board after writes that
// bypass the board operations.
type BoardInvalidator interface {
	Invalidate(companyID, pipelineID int64)
}
