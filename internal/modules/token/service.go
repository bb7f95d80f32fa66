package token

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crmboard/internal/domain"
)

// Service manages tenant machine credentials. Secrets are uuid-derived
// and stored as issued; the full value leaves the service only at
// creation time.
type Service struct {
	tokens TokenRepositoryInterface
}

func NewService(tokens TokenRepositoryInterface) *Service {
	return &Service{tokens: tokens}
}

func (s *Service) CreateToken(ctx context.Context, companyID int64, req CreateTokenRequest) (*CreatedToken, error) {
	secret := "crm_" + strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")

	t := &domain.ApiToken{
		CompanyID: companyID,
		Name:      strings.TrimSpace(req.Name),
		Secret:    secret,
		Active:    true,
	}
	if err := s.tokens.Create(ctx, t); err != nil {
		return nil, err
	}
	return &CreatedToken{ID: t.ID, Name: t.Name, Secret: secret}, nil
}

func (s *Service) ListTokens(ctx context.Context, companyID int64) ([]TokenListItem, error) {
	tokens, err := s.tokens.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]TokenListItem, 0, len(tokens))
	for i := range tokens {
		t := &tokens[i]
		out = append(out, TokenListItem{
			ID:           t.ID,
			Name:         t.Name,
			MaskedSecret: t.MaskedSecret(),
			Active:       t.Active,
			LastUsedAt:   t.LastUsedAt,
			CreatedAt:    t.CreatedAt,
		})
	}
	return out, nil
}

func (s *Service) SetActive(ctx context.Context, companyID, id int64, active bool) error {
	err := s.tokens.SetActive(ctx, companyID, id, active)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTokenNotFound
	}
	return err
}

func (s *Service) DeleteToken(ctx context.Context, companyID, id int64) error {
	err := s.tokens.Delete(ctx, companyID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTokenNotFound
	}
	return err
}
