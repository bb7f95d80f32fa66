package token

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crmboard/internal/domain"
)

type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Create(ctx context.Context, t *domain.ApiToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTokenRepo) GetByID(ctx context.Context, companyID, id int64) (*domain.ApiToken, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApiToken), args.Error(1)
}

func (m *mockTokenRepo) ListByCompany(ctx context.Context, companyID int64) ([]domain.ApiToken, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApiToken), args.Error(1)
}

func (m *mockTokenRepo) SetActive(ctx context.Context, companyID, id int64, active bool) error {
	args := m.Called(ctx, companyID, id, active)
	return args.Error(0)
}

func (m *mockTokenRepo) Delete(ctx context.Context, companyID, id int64) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func TestCreateToken_SecretReturnedOnce(t *testing.T) {
	tokens := new(mockTokenRepo)
	svc := NewService(tokens)

	tokens.On("Create", mock.Anything, mock.MatchedBy(func(tok *domain.ApiToken) bool {
		return tok.CompanyID == 1 && tok.Active && strings.HasPrefix(tok.Secret, "crm_")
	})).Return(nil)

	created, err := svc.CreateToken(context.Background(), 1, CreateTokenRequest{Name: "zapier"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.Secret, "crm_"))
	assert.Greater(t, len(created.Secret), 40)
}

func TestListTokens_SecretsMasked(t *testing.T) {
	tokens := new(mockTokenRepo)
	svc := NewService(tokens)

	tokens.On("ListByCompany", mock.Anything, int64(1)).Return([]domain.ApiToken{
		{ID: 1, Name: "zapier", Secret: "crm_0123456789abcdef", Active: true},
	}, nil)

	list, err := svc.ListTokens(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotContains(t, list[0].MaskedSecret, "0123456789")
	assert.Equal(t, "crm_…cdef", list[0].MaskedSecret)
}

func TestSetActive_UnknownToken(t *testing.T) {
	tokens := new(mockTokenRepo)
	svc := NewService(tokens)

	tokens.On("SetActive", mock.Anything, int64(1), int64(9), false).Return(gorm.ErrRecordNotFound)

	err := svc.SetActive(context.Background(), 1, 9, false)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
