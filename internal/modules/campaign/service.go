package campaign

import (
	"context"
	"strings"

	"crmboard/internal/domain"
)

// Service tracks campaign records locally and signals the external
// automation engine over a webhook. The engine does the actual sending;
// this side only flips the status field and reverts it when the signal
// is rejected.
type Service struct {
	campaigns CampaignRepositoryInterface
	signaler  CampaignSignaler
}

func NewService(campaigns CampaignRepositoryInterface, signaler CampaignSignaler) *Service {
	return &Service{campaigns: campaigns, signaler: signaler}
}

func (s *Service) CreateCampaign(ctx context.Context, companyID int64, req CreateCampaignRequest) (*domain.Campaign, error) {
	c := &domain.Campaign{
		CompanyID: companyID,
		Name:      strings.TrimSpace(req.Name),
		Status:    domain.CampaignDraft,
		Template:  req.Template,
		TargetTag: req.TargetTag,
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetCampaign(ctx context.Context, companyID, id int64) (*domain.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

func (s *Service) ListCampaigns(ctx context.Context, companyID int64) ([]domain.Campaign, error) {
	return s.campaigns.ListByCompany(ctx, companyID)
}

func (s *Service) UpdateCampaign(ctx context.Context, companyID, id int64, req UpdateCampaignRequest) (*domain.Campaign, error) {
	c, err := s.GetCampaign(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Template != nil {
		c.Template = *req.Template
	}
	if req.TargetTag != nil {
		c.TargetTag = *req.TargetTag
	}

	if err := s.campaigns.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCampaign(ctx context.Context, companyID, id int64) error {
	if _, err := s.GetCampaign(ctx, companyID, id); err != nil {
		return err
	}
	return s.campaigns.Delete(ctx, companyID, id)
}

// Start moves a draft or paused campaign to running and signals the
// automation engine. When the webhook rejects the signal the status
// reverts to what it was and the failure surfaces; there is no retry.
func (s *Service) Start(ctx context.Context, companyID, id int64) (*domain.Campaign, error) {
	c, err := s.GetCampaign(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.CampaignDraft && c.Status != domain.CampaignPaused {
		return nil, ErrWrongStatus
	}

	previous := c.Status
	if err := s.campaigns.UpdateStatus(ctx, companyID, id, domain.CampaignRunning); err != nil {
		return nil, err
	}

	if err := s.signaler.SignalCampaign(ctx, companyID, id); err != nil {
		if revertErr := s.campaigns.UpdateStatus(ctx, companyID, id, previous); revertErr != nil {
			return nil, revertErr
		}
		return nil, ErrSignalFailed
	}

	c.Status = domain.CampaignRunning
	return c, nil
}

func (s *Service) Pause(ctx context.Context, companyID, id int64) (*domain.Campaign, error) {
	c, err := s.GetCampaign(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.CampaignRunning {
		return nil, ErrWrongStatus
	}
	if err := s.campaigns.UpdateStatus(ctx, companyID, id, domain.CampaignPaused); err != nil {
		return nil, err
	}
	c.Status = domain.CampaignPaused
	return c, nil
}

func (s *Service) CreateGreeting(ctx context.Context, companyID int64, req CreateGreetingRequest) (*domain.GreetingMessage, error) {
	g := &domain.GreetingMessage{
		CompanyID: companyID,
		Trigger:   strings.TrimSpace(req.Trigger),
		Body:      req.Body,
		Active:    true,
	}
	if req.MediaURL != "" {
		g.MediaURL = &req.MediaURL
	}
	if err := s.campaigns.CreateGreeting(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) ListGreetings(ctx context.Context, companyID int64) ([]domain.GreetingMessage, error) {
	return s.campaigns.ListGreetings(ctx, companyID)
}

func (s *Service) UpdateGreeting(ctx context.Context, companyID, id int64, req UpdateGreetingRequest) (*domain.GreetingMessage, error) {
	g, err := s.campaigns.GetGreetingByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGreetingNotFound
	}

	if req.Trigger != nil {
		g.Trigger = strings.TrimSpace(*req.Trigger)
	}
	if req.Body != nil {
		g.Body = *req.Body
	}
	if req.MediaURL != nil {
		if *req.MediaURL == "" {
			g.MediaURL = nil
		} else {
			g.MediaURL = req.MediaURL
		}
	}
	if req.Active != nil {
		g.Active = *req.Active
	}

	if err := s.campaigns.UpdateGreeting(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) DeleteGreeting(ctx context.Context, companyID, id int64) error {
	g, err := s.campaigns.GetGreetingByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGreetingNotFound
	}
	return s.campaigns.DeleteGreeting(ctx, companyID, id)
}
