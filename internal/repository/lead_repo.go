package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"crmboard/internal/domain"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// LeadFilter narrows List results. Zero values mean "no filter".
type LeadFilter struct {
	PipelineID int64
	StageID    int64
	Status     domain.LeadStatus
	Origin     domain.LeadOrigin
	Tag        string
	Search     string
	Limit      int
	Offset     int
}

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeadRepository) GetByID(ctx context.Context, companyID, id int64) (*domain.Lead, error) {
	var l domain.Lead
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &l, err
}

func (r *LeadRepository) List(ctx context.Context, companyID int64, f LeadFilter) ([]domain.Lead, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)

	if f.PipelineID != 0 {
		q = q.Where("pipeline_id = ?", f.PipelineID)
	}
	if f.StageID != 0 {
		q = q.Where("stage_id = ?", f.StageID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Origin != "" {
		q = q.Where("origin = ?", f.Origin)
	}
	if f.Tag != "" {
		// tags are stored as a JSON array string
		q = q.Where("tags LIKE ?", "%\""+f.Tag+"\"%")
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR company_name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like, like)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var out []domain.Lead
	err := q.Order("stage_id, position, id").Find(&out).Error
	return out, err
}

// ListByStage returns the ordered column of one stage.
func (r *LeadRepository) ListByStage(ctx context.Context, companyID, stageID int64) ([]domain.Lead, error) {
	var out []domain.Lead
	err := r.db.WithContext(ctx).
		Where("stage_id = ? AND company_id = ?", stageID, companyID).
		Order("position, id").
		Find(&out).Error
	return out, err
}

func (r *LeadRepository) Update(ctx context.Context, l *domain.Lead) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// LeadPlacement pairs a lead with its board slot: the stage it sits in
// and its position within that stage's column.
type LeadPlacement struct {
	LeadID   int64
	StageID  int64
	Position int
}

// UpdatePlacements writes a set of board placements in one transaction.
// A drag shifts the positions of the moved lead's new and old neighbours
// too; the whole confirmed layout lands together or not at all.
func (r *LeadRepository) UpdatePlacements(ctx context.Context, companyID int64, placements []LeadPlacement) error {
	if len(placements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range placements {
			res := tx.Model(&domain.Lead{}).
				Where("id = ? AND company_id = ?", p.LeadID, companyID).
				Updates(map[string]any{
					"stage_id": p.StageID,
					"position": p.Position,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// ReassignStage moves every lead of one stage to another. Used when a
// stage is deleted and its leads are re-homed.
func (r *LeadRepository) ReassignStage(ctx context.Context, companyID, fromStageID, toStageID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("stage_id = ? AND company_id = ?", fromStageID, companyID).
		Update("stage_id", toStageID).Error
}

func (r *LeadRepository) TouchLastContact(ctx context.Context, companyID, leadID int64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ? AND company_id = ?", leadID, companyID).
		Update("last_contact_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, companyID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&domain.Lead{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
