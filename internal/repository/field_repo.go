package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crmboard/internal/domain"
)

type CustomFieldRepository struct {
	db *gorm.DB
}

func NewCustomFieldRepository(db *gorm.DB) *CustomFieldRepository {
	return &CustomFieldRepository{db: db}
}

func (r *CustomFieldRepository) Create(ctx context.Context, f *domain.CustomField) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *CustomFieldRepository) GetByID(ctx context.Context, companyID, id int64) (*domain.CustomField, error) {
	var f domain.CustomField
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &f, err
}

// ListForPipeline returns fields scoped to the pipeline plus global ones.
func (r *CustomFieldRepository) ListForPipeline(ctx context.Context, companyID, pipelineID int64) ([]domain.CustomField, error) {
	var out []domain.CustomField
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND (pipeline_id = ? OR pipeline_id IS NULL)", companyID, pipelineID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *CustomFieldRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.CustomField, error) {
	var out []domain.CustomField
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *CustomFieldRepository) Update(ctx context.Context, f *domain.CustomField) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *CustomFieldRepository) Delete(ctx context.Context, companyID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&domain.CustomField{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertValue writes one value of one field for one lead, keyed by
// (lead_id, field_id).
func (r *CustomFieldRepository) UpsertValue(ctx context.Context, v *domain.CustomValue) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lead_id"}, {Name: "field_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(v).Error
}

func (r *CustomFieldRepository) ValuesForLead(ctx context.Context, leadID int64) ([]domain.CustomValue, error) {
	var out []domain.CustomValue
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("field_id").
		Find(&out).Error
	return out, err
}
