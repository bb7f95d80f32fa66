package token

import (
	"context"

	"crmboard/internal/domain"
)

type TokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.ApiToken) error
	GetByID(ctx context.Context, companyID, id int64) (*domain.ApiToken, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.ApiToken, error)
	SetActive(ctx context.Context, companyID, id int64, active bool) error
	Delete(ctx context.Context, companyID, id int64) error
}
