package campaign

import (
	"context"

	"crmboard/internal/domain"
)

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Campaign) error
	GetByID(ctx context.Context, companyID, id int64) (*domain.Campaign, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Campaign, error)
	Update(ctx context.Context, c *domain.Campaign) error
	UpdateStatus(ctx context.Context, companyID, id int64, status domain.CampaignStatus) error
	Delete(ctx context.Context, companyID, id int64) error

	CreateGreeting(ctx context.Context, g *domain.GreetingMessage) error
	GetGreetingByID(ctx context.Context, companyID, id int64) (*domain.GreetingMessage, error)
	ListGreetings(ctx context.Context, companyID int64) ([]domain.GreetingMessage, error)
	UpdateGreeting(ctx context.Context, g *domain.GreetingMessage) error
	DeleteGreeting(ctx context.Context, companyID, id int64) error
}

// CampaignSignaler tells the external automation engine to start or
// resume dispatching a campaign.
type CampaignSignaler interface {
	SignalCampaign(ctx context.Context, companyID, campaignID int64) error
}
