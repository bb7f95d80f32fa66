package field

import (
	"context"
	"strings"

	"crmboard/internal/domain"
	"crmboard/internal/pkg/utils"
)

// Service owns custom-field definitions. Select and multiselect fields
// must carry an options list; every other type must not.
type Service struct {
	fields    FieldRepositoryInterface
	pipelines PipelineReader
}

func NewService(fields FieldRepositoryInterface, pipelines PipelineReader) *Service {
	return &Service{fields: fields, pipelines: pipelines}
}

func (s *Service) CreateField(ctx context.Context, companyID int64, req CreateFieldRequest) (*domain.CustomField, error) {
	fieldType := domain.FieldType(req.Type)
	if err := checkOptions(fieldType, req.Options); err != nil {
		return nil, err
	}

	if req.PipelineID != nil {
		p, err := s.pipelines.GetByID(ctx, companyID, *req.PipelineID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrPipelineNotFound
		}
	}

	f := &domain.CustomField{
		CompanyID:  companyID,
		PipelineID: req.PipelineID,
		Name:       strings.TrimSpace(req.Name),
		Type:       fieldType,
		Required:   req.Required,
	}
	if fieldType.HasOptions() {
		f.Options = utils.TagsToString(req.Options)
	}

	if err := s.fields.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// ListFields returns the company's fields; with a pipeline filter it
// returns that pipeline's fields plus the global ones.
func (s *Service) ListFields(ctx context.Context, companyID int64, q ListFieldsQuery) ([]domain.CustomField, error) {
	if q.PipelineID != 0 {
		return s.fields.ListForPipeline(ctx, companyID, q.PipelineID)
	}
	return s.fields.ListByCompany(ctx, companyID)
}

func (s *Service) UpdateField(ctx context.Context, companyID, id int64, req UpdateFieldRequest) (*domain.CustomField, error) {
	f, err := s.fields.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFieldNotFound
	}

	if req.Name != nil {
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.Required != nil {
		f.Required = *req.Required
	}
	if req.Options != nil {
		if err := checkOptions(f.Type, *req.Options); err != nil {
			return nil, err
		}
		if f.Type.HasOptions() {
			f.Options = utils.TagsToString(*req.Options)
		}
	}

	if err := s.fields.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) DeleteField(ctx context.Context, companyID, id int64) error {
	f, err := s.fields.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if f == nil {
		return ErrFieldNotFound
	}
	return s.fields.Delete(ctx, companyID, id)
}

func checkOptions(t domain.FieldType, options []string) error {
	switch {
	case t.HasOptions() && len(options) == 0:
		return ErrOptionsRequired
	case !t.HasOptions() && len(options) > 0:
		return ErrOptionsNotAllowed
	}
	return nil
}
