package board

import (
	"context"
	"sync"

	"crmboard/internal/repository"
)

type boardKey struct {
	companyID  int64
	pipelineID int64
}

// Service keeps one controller per open (company, pipeline) board and
// routes operations to it. Controllers load lazily on first access and
// are dropped when the underlying pipeline changes outside the board
// (stage CRUD, lead CRUD) or when the last viewer leaves.
type Service struct {
	mu     sync.Mutex
	boards map[boardKey]*Controller

	stages StageStore
	leads  LeadStore
	stats  StatsProvider
	events Broadcaster
}

func NewService(stages StageStore, leads LeadStore, stats StatsProvider, events Broadcaster) *Service {
	return &Service{
		boards: make(map[boardKey]*Controller),
		stages: stages,
		leads:  leads,
		stats:  stats,
		events: events,
	}
}

func (s *Service) controller(ctx context.Context, companyID, pipelineID int64) (*Controller, error) {
	key := boardKey{companyID, pipelineID}

	s.mu.Lock()
	c, ok := s.boards[key]
	s.mu.Unlock()
	if ok {
		return c, nil
	}

	c = NewController(companyID, pipelineID, s.stages, s.leads, s.events)
	if err := c.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	// another request may have loaded the same board meanwhile
	if existing, ok := s.boards[key]; ok {
		s.mu.Unlock()
		c.Close()
		return existing, nil
	}
	s.boards[key] = c
	s.mu.Unlock()
	return c, nil
}

// Invalidate drops the cached controller so the next access reloads from
// the stores. Stage and lead CRUD call this after writes that bypass the
// board operations.
func (s *Service) Invalidate(companyID, pipelineID int64) {
	key := boardKey{companyID, pipelineID}

	s.mu.Lock()
	c, ok := s.boards[key]
	delete(s.boards, key)
	s.mu.Unlock()

	if ok {
		c.Close()
	}
}

func (s *Service) Board(ctx context.Context, companyID, pipelineID int64) (*Board, error) {
	c, err := s.controller(ctx, companyID, pipelineID)
	if err != nil {
		return nil, err
	}
	snap := c.Snapshot()
	return &snap, nil
}

func (s *Service) ReorderStages(ctx context.Context, companyID, pipelineID int64, fromIndex, toIndex int) (*Board, error) {
	c, err := s.controller(ctx, companyID, pipelineID)
	if err != nil {
		return nil, err
	}
	if err := c.ReorderStages(ctx, fromIndex, toIndex); err != nil {
		return nil, err
	}
	snap := c.Snapshot()
	return &snap, nil
}

func (s *Service) MoveLead(ctx context.Context, companyID, pipelineID, leadID, fromStageID, toStageID int64, toIndex int) (*Board, error) {
	c, err := s.controller(ctx, companyID, pipelineID)
	if err != nil {
		return nil, err
	}
	if err := c.MoveLead(ctx, leadID, fromStageID, toStageID, toIndex); err != nil {
		return nil, s.translateStageErr(ctx, err, companyID, pipelineID, toStageID)
	}
	snap := c.Snapshot()
	return &snap, nil
}

func (s *Service) MoveLeadAdjacent(ctx context.Context, companyID, pipelineID, leadID int64, direction Direction) (*Board, error) {
	c, err := s.controller(ctx, companyID, pipelineID)
	if err != nil {
		return nil, err
	}
	if err := c.MoveLeadAdjacent(ctx, leadID, direction); err != nil {
		return nil, err
	}
	snap := c.Snapshot()
	return &snap, nil
}

// translateStageErr turns "stage not on this board" into the explicit
// cross-pipeline rejection when the stage exists under another pipeline
// of the same company.
func (s *Service) translateStageErr(ctx context.Context, err error, companyID, pipelineID, stageID int64) error {
	if err != ErrStageNotFound {
		return err
	}
	if finder, ok := s.stages.(StageFinder); ok {
		st, ferr := finder.GetByID(ctx, companyID, stageID)
		if ferr == nil && st != nil && st.PipelineID != pipelineID {
			return ErrCrossPipeline
		}
	}
	return err
}

// Stats returns per-stage lead counts and pipeline totals without
// materializing lead rows.
func (s *Service) Stats(ctx context.Context, companyID, pipelineID int64) (*StatsResponse, error) {
	counts, err := s.stats.LeadCountsByStage(ctx, companyID, pipelineID)
	if err != nil {
		return nil, err
	}
	totals, err := s.stats.PipelineTotals(ctx, companyID, pipelineID)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{
		PipelineID:  pipelineID,
		StageCounts: counts,
		Totals:      *totals,
	}, nil
}

type StatsResponse struct {
	PipelineID  int64                       `json:"pipeline_id"`
	StageCounts []repository.StageLeadCount `json:"stage_counts"`
	Totals      repository.PipelineTotals   `json:"totals"`
}
