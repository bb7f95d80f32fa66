package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmboard/internal/domain"
)

type mockPrefRepo struct {
	mock.Mock
}

func (m *mockPrefRepo) Get(ctx context.Context, userID int64, key string) (*domain.UserPreference, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreference), args.Error(1)
}

func (m *mockPrefRepo) ListForUser(ctx context.Context, userID int64) ([]domain.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPreference), args.Error(1)
}

func (m *mockPrefRepo) Set(ctx context.Context, userID int64, key, value string) error {
	args := m.Called(ctx, userID, key, value)
	return args.Error(0)
}

func TestGetAll_FillsDefaults(t *testing.T) {
	repo := new(mockPrefRepo)
	svc := NewService(repo)

	repo.On("ListForUser", mock.Anything, int64(7)).Return([]domain.UserPreference{
		{UserID: 7, Key: domain.PrefStatsPanelCollapsed, Value: "true"},
	}, nil)

	out, err := svc.GetAll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "kanban", out[domain.PrefBoardViewMode])
	assert.Equal(t, "true", out[domain.PrefStatsPanelCollapsed])
}

func TestSet_RejectsUnknownKey(t *testing.T) {
	repo := new(mockPrefRepo)
	svc := NewService(repo)

	err := svc.Set(context.Background(), 7, "theme", "dark")
	assert.ErrorIs(t, err, ErrUnknownKey)
	repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSet_KnownKeyPersists(t *testing.T) {
	repo := new(mockPrefRepo)
	svc := NewService(repo)

	repo.On("Set", mock.Anything, int64(7), domain.PrefBoardViewMode, "list").Return(nil)

	err := svc.Set(context.Background(), 7, domain.PrefBoardViewMode, "list")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
