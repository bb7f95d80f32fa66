package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"crmboard/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ListByCompany(ctx context.Context, companyID int64) ([]domain.User, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) SetActive(ctx context.Context, companyID, userID int64, active bool) error {
	args := m.Called(ctx, companyID, userID, active)
	return args.Error(0)
}

func (m *mockUserRepo) DB() *gorm.DB {
	return &gorm.DB{}
}

type mockCompanyRepo struct {
	mock.Mock
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID, companyID int64, role string) (string, error) {
	return "test-token", nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockCompanyRepo), stubJWT{})

	users.On("GetByEmail", mock.Anything, "ana@acme.io").Return(&domain.User{
		ID:           7,
		CompanyID:    3,
		Email:        "ana@acme.io",
		PasswordHash: hashOf(t, "secret-pass"),
		Role:         domain.RoleAdmin,
		Active:       true,
	}, nil)

	result, err := svc.Login(context.Background(), LoginRequest{Email: "ana@acme.io", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "test-token", result.Token)
	assert.Equal(t, int64(7), result.User.ID)
	assert.Empty(t, result.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockCompanyRepo), stubJWT{})

	users.On("GetByEmail", mock.Anything, "ana@acme.io").Return(&domain.User{
		ID:           7,
		Email:        "ana@acme.io",
		PasswordHash: hashOf(t, "secret-pass"),
		Active:       true,
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@acme.io", Password: "bad-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockCompanyRepo), stubJWT{})

	users.On("GetByEmail", mock.Anything, "nobody@acme.io").Return(nil, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@acme.io", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockCompanyRepo), stubJWT{})

	users.On("GetByEmail", mock.Anything, "ana@acme.io").Return(&domain.User{
		ID:           7,
		Email:        "ana@acme.io",
		PasswordHash: hashOf(t, "secret-pass"),
		Active:       false,
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@acme.io", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestInviteUser_DefaultsToMemberRole(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockCompanyRepo), stubJWT{})

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.CompanyID == 3 && u.Role == domain.RoleMember && u.Email == "bo@acme.io"
	})).Return(nil)

	user, err := svc.InviteUser(context.Background(), 3, InviteUserRequest{
		Name:     "Bo",
		Email:    "Bo@acme.io",
		Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
}

func TestGetCurrentUser_StripsPasswordHash(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockCompanyRepo), stubJWT{})

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
		ID:           7,
		PasswordHash: "should-not-leak",
	}, nil)

	user, err := svc.GetCurrentUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

func TestGetCompany_WrongTenantReadsAsMissing(t *testing.T) {
	companies := new(mockCompanyRepo)
	svc := NewService(new(mockUserRepo), companies, stubJWT{})

	companies.On("GetByID", mock.Anything, int64(3)).Return(nil, nil)

	_, err := svc.GetCompany(context.Background(), 3)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestSetUserActive_UnknownUser(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockCompanyRepo), stubJWT{})

	users.On("SetActive", mock.Anything, int64(3), int64(99), false).Return(gorm.ErrRecordNotFound)

	err := svc.SetUserActive(context.Background(), 3, 99, false)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
