package board

import (
	"context"

	"crmboard/internal/domain"
	"crmboard/internal/modules/realtime"
	"crmboard/internal/repository"
)

// StageStore is the slice of the stage repository the board needs.
type StageStore interface {
	ListByPipeline(ctx context.Context, companyID, pipelineID int64) ([]domain.Stage, error)
	UpdatePosition(ctx context.Context, companyID, stageID int64, position int) error
}

// LeadStore is the slice of the lead repository the board needs.
type LeadStore interface {
	ListByStage(ctx context.Context, companyID, stageID int64) ([]domain.Lead, error)
	UpdatePlacements(ctx context.Context, companyID int64, placements []repository.LeadPlacement) error
}

// StageFinder is optionally implemented by the stage store; the board
// uses it to tell a cross-pipeline destination apart from a missing one.
type StageFinder interface {
	GetByID(ctx context.Context, companyID, id int64) (*domain.Stage, error)
}

// StatsProvider backs the badge counts and the stats panel.
type StatsProvider interface {
	LeadCountsByStage(ctx context.Context, companyID, pipelineID int64) ([]repository.StageLeadCount, error)
	PipelineTotals(ctx context.Context, companyID, pipelineID int64) (*repository.PipelineTotals, error)
}

// Broadcaster pushes board events to the company's open sockets.
type Broadcaster interface {
	Broadcast(companyID int64, event realtime.Event) int
}
