package auth

import (
	"context"

	"gorm.io/gorm"

	"crmboard/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.User, error)
	SetActive(ctx context.Context, companyID, userID int64, active bool) error
	DB() *gorm.DB // registration creates company + admin in one transaction
}

type CompanyRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}
