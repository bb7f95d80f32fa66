package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crmboard/internal/domain"
)

type StageRepository struct {
	db *gorm.DB
}

func NewStageRepository(db *gorm.DB) *StageRepository {
	return &StageRepository{db: db}
}

func (r *StageRepository) Create(ctx context.Context, s *domain.Stage) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StageRepository) GetByID(ctx context.Context, companyID, id int64) (*domain.Stage, error) {
	var s domain.Stage
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

// ListByPipeline returns stages ordered by position.
func (r *StageRepository) ListByPipeline(ctx context.Context, companyID, pipelineID int64) ([]domain.Stage, error) {
	var out []domain.Stage
	err := r.db.WithContext(ctx).
		Where("pipeline_id = ? AND company_id = ?", pipelineID, companyID).
		Order("position").
		Find(&out).Error
	return out, err
}

func (r *StageRepository) Update(ctx context.Context, s *domain.Stage) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// UpdatePosition writes one stage's position. Reorders issue one call per
// stage whose position changed.
func (r *StageRepository) UpdatePosition(ctx context.Context, companyID, stageID int64, position int) error {
	res := r.db.WithContext(ctx).Model(&domain.Stage{}).
		Where("id = ? AND company_id = ?", stageID, companyID).
		Update("position", position)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StageRepository) Delete(ctx context.Context, companyID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&domain.Stage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByPipeline is used to place a new stage at the end.
func (r *StageRepository) CountByPipeline(ctx context.Context, companyID, pipelineID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Stage{}).
		Where("pipeline_id = ? AND company_id = ?", pipelineID, companyID).
		Count(&n).Error
	return n, err
}
