package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crmboard/internal/domain"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CampaignRepository) GetByID(ctx context.Context, companyID, id int64) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CampaignRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, companyID, id int64, status domain.CampaignStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Campaign{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, companyID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&domain.Campaign{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Greeting messages share the repository: same module, same lifecycle.

func (r *CampaignRepository) CreateGreeting(ctx context.Context, g *domain.GreetingMessage) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *CampaignRepository) GetGreetingByID(ctx context.Context, companyID, id int64) (*domain.GreetingMessage, error) {
	var g domain.GreetingMessage
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &g, err
}

func (r *CampaignRepository) ListGreetings(ctx context.Context, companyID int64) ([]domain.GreetingMessage, error) {
	var out []domain.GreetingMessage
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id").
		Find(&out).Error
	return out, err
}

// ActiveGreetings feeds the inbound-message matcher.
func (r *CampaignRepository) ActiveGreetings(ctx context.Context, companyID int64) ([]domain.GreetingMessage, error) {
	var out []domain.GreetingMessage
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = ?", companyID, true).
		Find(&out).Error
	return out, err
}

func (r *CampaignRepository) UpdateGreeting(ctx context.Context, g *domain.GreetingMessage) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *CampaignRepository) DeleteGreeting(ctx context.Context, companyID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&domain.GreetingMessage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
