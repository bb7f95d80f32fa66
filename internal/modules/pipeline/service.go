package pipeline

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"crmboard/internal/domain"
)

// Service owns pipeline and stage CRUD. Structural writes that happen
// here (stage create/delete/rename) invalidate the live board so the
// next board access reloads a consistent snapshot.
type Service struct {
	pipelines PipelineRepositoryInterface
	stages    StageRepositoryInterface
	leads     LeadReassigner
	boards    BoardInvalidator
}

func NewService(pipelines PipelineRepositoryInterface, stages StageRepositoryInterface, leads LeadReassigner, boards BoardInvalidator) *Service {
	return &Service{pipelines: pipelines, stages: stages, leads: leads, boards: boards}
}

func (s *Service) CreatePipeline(ctx context.Context, companyID int64, req CreatePipelineRequest) (*domain.Pipeline, error) {
	p := &domain.Pipeline{
		CompanyID: companyID,
		Name:      strings.TrimSpace(req.Name),
	}
	if err := s.pipelines.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPipeline(ctx context.Context, companyID, id int64) (*domain.Pipeline, error) {
	p, err := s.pipelines.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPipelineNotFound
	}
	stages, err := s.stages.ListByPipeline(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	p.Stages = stages
	return p, nil
}

func (s *Service) ListPipelines(ctx context.Context, companyID int64) ([]domain.Pipeline, error) {
	return s.pipelines.ListByCompany(ctx, companyID)
}

func (s *Service) RenamePipeline(ctx context.Context, companyID, id int64, req RenamePipelineRequest) error {
	err := s.pipelines.Rename(ctx, companyID, id, strings.TrimSpace(req.Name))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPipelineNotFound
	}
	return err
}

func (s *Service) DeletePipeline(ctx context.Context, companyID, id int64) error {
	err := s.pipelines.Delete(ctx, companyID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPipelineNotFound
	}
	if err == nil {
		s.boards.Invalidate(companyID, id)
	}
	return err
}

// AddStage appends a stage at the end of the pipeline. Stage names are
// unique per pipeline, compared case-insensitively.
func (s *Service) AddStage(ctx context.Context, companyID, pipelineID int64, req CreateStageRequest) (*domain.Stage, error) {
	p, err := s.pipelines.GetByID(ctx, companyID, pipelineID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPipelineNotFound
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.stages.ListByPipeline(ctx, companyID, pipelineID)
	if err != nil {
		return nil, err
	}
	for _, st := range existing {
		if strings.EqualFold(st.Name, name) {
			return nil, ErrDuplicateStage
		}
	}

	stage := &domain.Stage{
		PipelineID: pipelineID,
		CompanyID:  companyID,
		Name:       name,
		Color:      req.Color,
		Position:   len(existing),
	}
	if err := s.stages.Create(ctx, stage); err != nil {
		return nil, err
	}
	s.boards.Invalidate(companyID, pipelineID)
	return stage, nil
}

func (s *Service) UpdateStage(ctx context.Context, companyID, pipelineID, stageID int64, req UpdateStageRequest) (*domain.Stage, error) {
	stage, err := s.stageInPipeline(ctx, companyID, pipelineID, stageID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		siblings, err := s.stages.ListByPipeline(ctx, companyID, pipelineID)
		if err != nil {
			return nil, err
		}
		for _, st := range siblings {
			if st.ID != stageID && strings.EqualFold(st.Name, name) {
				return nil, ErrDuplicateStage
			}
		}
		stage.Name = name
	}
	if req.Color != "" {
		stage.Color = req.Color
	}

	if err := s.stages.Update(ctx, stage); err != nil {
		return nil, err
	}
	s.boards.Invalidate(companyID, pipelineID)
	return stage, nil
}

// DeleteStage removes a stage and re-homes its leads to the first
// remaining stage. The last stage of a pipeline cannot be deleted.
func (s *Service) DeleteStage(ctx context.Context, companyID, pipelineID, stageID int64) error {
	stage, err := s.stageInPipeline(ctx, companyID, pipelineID, stageID)
	if err != nil {
		return err
	}

	siblings, err := s.stages.ListByPipeline(ctx, companyID, pipelineID)
	if err != nil {
		return err
	}
	if len(siblings) <= 1 {
		return ErrLastStage
	}

	var target *domain.Stage
	for i := range siblings {
		if siblings[i].ID != stage.ID {
			target = &siblings[i]
			break
		}
	}

	if err := s.leads.ReassignStage(ctx, companyID, stage.ID, target.ID); err != nil {
		return err
	}
	if err := s.stages.Delete(ctx, companyID, stage.ID); err != nil {
		return err
	}

	// close the position gap left by the deleted stage
	pos := 0
	for _, st := range siblings {
		if st.ID == stage.ID {
			continue
		}
		if st.Position != pos {
			if err := s.stages.Update(ctx, &domain.Stage{
				ID: st.ID, PipelineID: st.PipelineID, CompanyID: st.CompanyID,
				Name: st.Name, Color: st.Color, Position: pos,
				CreatedAt: st.CreatedAt, UpdatedAt: st.UpdatedAt,
			}); err != nil {
				return err
			}
		}
		pos++
	}

	s.boards.Invalidate(companyID, pipelineID)
	return nil
}

func (s *Service) stageInPipeline(ctx context.Context, companyID, pipelineID, stageID int64) (*domain.Stage, error) {
	stage, err := s.stages.GetByID(ctx, companyID, stageID)
	if err != nil {
		return nil, err
	}
	if stage == nil || stage.PipelineID != pipelineID {
		return nil, ErrStageNotFound
	}
	return stage, nil
}
