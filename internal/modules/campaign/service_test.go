package campaign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmboard/internal/domain"
)

type mockCampaignRepo struct {
	mock.Mock
}

func (m *mockCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCampaignRepo) GetByID(ctx context.Context, companyID, id int64) (*domain.Campaign, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) ListByCompany(ctx context.Context, companyID int64) ([]domain.Campaign, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) Update(ctx context.Context, c *domain.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCampaignRepo) UpdateStatus(ctx context.Context, companyID, id int64, status domain.CampaignStatus) error {
	args := m.Called(ctx, companyID, id, status)
	return args.Error(0)
}

func (m *mockCampaignRepo) Delete(ctx context.Context, companyID, id int64) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *mockCampaignRepo) CreateGreeting(ctx context.Context, g *domain.GreetingMessage) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *mockCampaignRepo) GetGreetingByID(ctx context.Context, companyID, id int64) (*domain.GreetingMessage, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GreetingMessage), args.Error(1)
}

func (m *mockCampaignRepo) ListGreetings(ctx context.Context, companyID int64) ([]domain.GreetingMessage, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GreetingMessage), args.Error(1)
}

func (m *mockCampaignRepo) UpdateGreeting(ctx context.Context, g *domain.GreetingMessage) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *mockCampaignRepo) DeleteGreeting(ctx context.Context, companyID, id int64) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

type mockSignaler struct {
	mock.Mock
}

func (m *mockSignaler) SignalCampaign(ctx context.Context, companyID, campaignID int64) error {
	args := m.Called(ctx, companyID, campaignID)
	return args.Error(0)
}

func TestStart_SignalsEngineAfterStatusFlip(t *testing.T) {
	campaigns := new(mockCampaignRepo)
	signaler := new(mockSignaler)
	svc := NewService(campaigns, signaler)

	campaigns.On("GetByID", mock.Anything, int64(1), int64(9)).
		Return(&domain.Campaign{ID: 9, CompanyID: 1, Status: domain.CampaignDraft}, nil)
	campaigns.On("UpdateStatus", mock.Anything, int64(1), int64(9), domain.CampaignRunning).Return(nil)
	signaler.On("SignalCampaign", mock.Anything, int64(1), int64(9)).Return(nil)

	c, err := svc.Start(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignRunning, c.Status)
	signaler.AssertExpectations(t)
}

func TestStart_RevertsStatusWhenSignalRejected(t *testing.T) {
	campaigns := new(mockCampaignRepo)
	signaler := new(mockSignaler)
	svc := NewService(campaigns, signaler)

	campaigns.On("GetByID", mock.Anything, int64(1), int64(9)).
		Return(&domain.Campaign{ID: 9, CompanyID: 1, Status: domain.CampaignPaused}, nil)
	campaigns.On("UpdateStatus", mock.Anything, int64(1), int64(9), domain.CampaignRunning).Return(nil)
	signaler.On("SignalCampaign", mock.Anything, int64(1), int64(9)).Return(assert.AnError)
	// revert to the pre-start status, not to draft
	campaigns.On("UpdateStatus", mock.Anything, int64(1), int64(9), domain.CampaignPaused).Return(nil)

	_, err := svc.Start(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrSignalFailed)
	campaigns.AssertExpectations(t)
}

func TestStart_RunningCampaignRefused(t *testing.T) {
	campaigns := new(mockCampaignRepo)
	signaler := new(mockSignaler)
	svc := NewService(campaigns, signaler)

	campaigns.On("GetByID", mock.Anything, int64(1), int64(9)).
		Return(&domain.Campaign{ID: 9, CompanyID: 1, Status: domain.CampaignRunning}, nil)

	_, err := svc.Start(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrWrongStatus)
	signaler.AssertNotCalled(t, "SignalCampaign", mock.Anything, mock.Anything, mock.Anything)
}

func TestPause_OnlyRunningCampaigns(t *testing.T) {
	campaigns := new(mockCampaignRepo)
	svc := NewService(campaigns, new(mockSignaler))

	campaigns.On("GetByID", mock.Anything, int64(1), int64(9)).
		Return(&domain.Campaign{ID: 9, CompanyID: 1, Status: domain.CampaignDraft}, nil)

	_, err := svc.Pause(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrWrongStatus)
}

func TestUpdateGreeting_CanClearMedia(t *testing.T) {
	campaigns := new(mockCampaignRepo)
	svc := NewService(campaigns, new(mockSignaler))

	url := "https://cdn.example/old.png"
	campaigns.On("GetGreetingByID", mock.Anything, int64(1), int64(3)).
		Return(&domain.GreetingMessage{ID: 3, CompanyID: 1, MediaURL: &url}, nil)
	campaigns.On("UpdateGreeting", mock.Anything, mock.MatchedBy(func(g *domain.GreetingMessage) bool {
		return g.MediaURL == nil
	})).Return(nil)

	empty := ""
	g, err := svc.UpdateGreeting(context.Background(), 1, 3, UpdateGreetingRequest{MediaURL: &empty})
	require.NoError(t, err)
	assert.Nil(t, g.MediaURL)
}
