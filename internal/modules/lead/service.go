package lead

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"crmboard/internal/domain"
	"crmboard/internal/pkg/utils"
	"crmboard/internal/repository"
)

// Service owns lead CRUD and lifecycle transitions. Board placement
// (stage, position) is written here only on create and delete; drags go
// through the board module.
type Service struct {
	leads  LeadRepositoryInterface
	stages StageReader
	fields FieldRepositoryInterface
	boards BoardInvalidator
}

func NewService(leads LeadRepositoryInterface, stages StageReader, fields FieldRepositoryInterface, boards BoardInvalidator) *Service {
	return &Service{leads: leads, stages: stages, fields: fields, boards: boards}
}

// CreateLead places the new lead at the end of its stage column.
func (s *Service) CreateLead(ctx context.Context, companyID int64, req CreateLeadRequest) (*domain.Lead, error) {
	stage, err := s.stages.GetByID(ctx, companyID, req.StageID)
	if err != nil {
		return nil, err
	}
	if stage == nil || stage.PipelineID != req.PipelineID {
		return nil, ErrStageNotFound
	}

	column, err := s.leads.ListByStage(ctx, companyID, req.StageID)
	if err != nil {
		return nil, err
	}

	l := &domain.Lead{
		CompanyID:   companyID,
		PipelineID:  req.PipelineID,
		StageID:     req.StageID,
		Position:    len(column),
		Name:        strings.TrimSpace(req.Name),
		CompanyName: req.CompanyName,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		Value:       req.Value,
		Status:      domain.LeadStatus(req.Status),
		Origin:      domain.LeadOrigin(req.Origin),
		Notes:       req.Notes,
		Tags:        utils.TagsToString(req.Tags),
	}
	if err := s.leads.Create(ctx, l); err != nil {
		return nil, err
	}
	s.boards.Invalidate(companyID, req.PipelineID)
	return l, nil
}

func (s *Service) GetLead(ctx context.Context, companyID, id int64) (*domain.Lead, error) {
	l, err := s.leads.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLeadNotFound
	}
	values, err := s.fields.ValuesForLead(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.CustomValues = values
	return l, nil
}

func (s *Service) ListLeads(ctx context.Context, companyID int64, q ListLeadsQuery) ([]domain.Lead, error) {
	return s.leads.List(ctx, companyID, repository.LeadFilter{
		PipelineID: q.PipelineID,
		StageID:    q.StageID,
		Status:     domain.LeadStatus(q.Status),
		Origin:     domain.LeadOrigin(q.Origin),
		Tag:        q.Tag,
		Search:     q.Search,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
}

func (s *Service) UpdateLead(ctx context.Context, companyID, id int64, req UpdateLeadRequest) (*domain.Lead, error) {
	l, err := s.leads.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLeadNotFound
	}

	if req.Name != nil {
		l.Name = strings.TrimSpace(*req.Name)
	}
	if req.CompanyName != nil {
		l.CompanyName = *req.CompanyName
	}
	if req.Email != nil {
		l.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		l.Phone = *req.Phone
	}
	if req.Value != nil {
		l.Value = *req.Value
	}
	if req.Status != nil {
		l.Status = domain.LeadStatus(*req.Status)
	}
	if req.Origin != nil {
		l.Origin = domain.LeadOrigin(*req.Origin)
	}
	if req.Notes != nil {
		l.Notes = *req.Notes
	}
	if req.Tags != nil {
		l.Tags = utils.TagsToString(*req.Tags)
	}

	if err := s.leads.Update(ctx, l); err != nil {
		return nil, err
	}
	s.boards.Invalidate(companyID, l.PipelineID)
	return l, nil
}

// MarkLost closes a lead with a loss category. A lead already sold or
// lost stays as it is.
func (s *Service) MarkLost(ctx context.Context, companyID, id int64, req MarkLostRequest) (*domain.Lead, error) {
	l, err := s.leads.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLeadNotFound
	}
	if l.IsLost() || l.IsSold() {
		return nil, ErrAlreadyClosed
	}

	l.LossCategory = strings.TrimSpace(req.Category)
	l.LossNotes = req.Notes
	if err := s.leads.Update(ctx, l); err != nil {
		return nil, err
	}
	s.boards.Invalidate(companyID, l.PipelineID)
	return l, nil
}

func (s *Service) MarkSold(ctx context.Context, companyID, id int64) (*domain.Lead, error) {
	l, err := s.leads.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLeadNotFound
	}
	if l.IsLost() || l.IsSold() {
		return nil, ErrAlreadyClosed
	}

	now := time.Now()
	l.SoldAt = &now
	if err := s.leads.Update(ctx, l); err != nil {
		return nil, err
	}
	s.boards.Invalidate(companyID, l.PipelineID)
	return l, nil
}

func (s *Service) TouchLastContact(ctx context.Context, companyID, id int64) error {
	err := s.leads.TouchLastContact(ctx, companyID, id, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLeadNotFound
	}
	return err
}

// SetCustomValue validates the raw value against the field definition
// before upserting it.
func (s *Service) SetCustomValue(ctx context.Context, companyID, leadID int64, req SetValueRequest) (*domain.CustomValue, error) {
	l, err := s.leads.GetByID(ctx, companyID, leadID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLeadNotFound
	}

	field, err := s.fields.GetByID(ctx, companyID, req.FieldID)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, ErrFieldNotFound
	}
	if field.PipelineID != nil && *field.PipelineID != l.PipelineID {
		return nil, ErrFieldNotFound
	}

	value := strings.TrimSpace(req.Value)
	if value == "" {
		if field.Required {
			return nil, ErrValueRequired
		}
	} else if err := validateValue(field, value); err != nil {
		return nil, err
	}

	v := &domain.CustomValue{
		LeadID:  l.ID,
		FieldID: field.ID,
		Value:   value,
	}
	if err := s.fields.UpsertValue(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) DeleteLead(ctx context.Context, companyID, id int64) error {
	l, err := s.leads.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if l == nil {
		return ErrLeadNotFound
	}
	if err := s.leads.Delete(ctx, companyID, id); err != nil {
		return err
	}
	s.boards.Invalidate(companyID, l.PipelineID)
	return nil
}

func validateValue(field *domain.CustomField, value string) error {
	switch field.Type {
	case domain.FieldNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return ErrValueWrongType
		}
	case domain.FieldDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return ErrValueWrongType
		}
	case domain.FieldSelect:
		if !optionAllowed(field.Options, value) {
			return ErrOptionNotAllowed
		}
	case domain.FieldMultiSelect:
		var picked []string
		if err := json.Unmarshal([]byte(value), &picked); err != nil {
			return ErrValueWrongType
		}
		for _, p := range picked {
			if !optionAllowed(field.Options, p) {
				return ErrOptionNotAllowed
			}
		}
	}
	return nil
}

func optionAllowed(optionsJSON, value string) bool {
	for _, opt := range utils.StringToTags(optionsJSON) {
		if opt == value {
			return true
		}
	}
	return false
}
