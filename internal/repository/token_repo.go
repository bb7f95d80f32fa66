package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"crmboard/internal/domain"
)

type ApiTokenRepository struct {
	db *gorm.DB
}

func NewApiTokenRepository(db *gorm.DB) *ApiTokenRepository {
	return &ApiTokenRepository{db: db}
}

func (r *ApiTokenRepository) Create(ctx context.Context, t *domain.ApiToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ApiTokenRepository) GetByID(ctx context.Context, companyID, id int64) (*domain.ApiToken, error) {
	var t domain.ApiToken
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

// GetActiveBySecret resolves an incoming X-Api-Token header. Inactive
// tokens do not authenticate.
func (r *ApiTokenRepository) GetActiveBySecret(ctx context.Context, secret string) (*domain.ApiToken, error) {
	var t domain.ApiToken
	err := r.db.WithContext(ctx).
		Where("secret = ? AND active = ?", secret, true).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *ApiTokenRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.ApiToken, error) {
	var out []domain.ApiToken
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *ApiTokenRepository) SetActive(ctx context.Context, companyID, id int64, active bool) error {
	res := r.db.WithContext(ctx).Model(&domain.ApiToken{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ApiTokenRepository) TouchLastUsed(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.ApiToken{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now()).Error
}

func (r *ApiTokenRepository) Delete(ctx context.Context, companyID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&domain.ApiToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivateStale flips tokens that have not been used since the cutoff.
// Never-used tokens are judged by creation time instead.
func (r *ApiTokenRepository) DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.ApiToken{}).
		Where("active = ?", true).
		Where("(last_used_at IS NOT NULL AND last_used_at < ?) OR (last_used_at IS NULL AND created_at < ?)", cutoff, cutoff).
		Update("active", false)
	return res.RowsAffected, res.Error
}
