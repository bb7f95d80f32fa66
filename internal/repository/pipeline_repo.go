package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crmboard/internal/domain"
)

type PipelineRepository struct {
	db *gorm.DB
}

func NewPipelineRepository(db *gorm.DB) *PipelineRepository {
	return &PipelineRepository{db: db}
}

func (r *PipelineRepository) Create(ctx context.Context, p *domain.Pipeline) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetByID is tenant-scoped: a pipeline of another company reads as absent.
func (r *PipelineRepository) GetByID(ctx context.Context, companyID, id int64) (*domain.Pipeline, error) {
	var p domain.Pipeline
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *PipelineRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Pipeline, error) {
	var out []domain.Pipeline
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *PipelineRepository) Rename(ctx context.Context, companyID, id int64, name string) error {
	res := r.db.WithContext(ctx).Model(&domain.Pipeline{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PipelineRepository) Delete(ctx context.Context, companyID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&domain.Pipeline{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
