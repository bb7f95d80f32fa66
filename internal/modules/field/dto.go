package field

type CreateFieldRequest struct {
	Name       string   `json:"name" binding:"required,min=1"`
	Type       string   `json:"type" binding:"required,oneof=text number date select multiselect link vehicle"`
	Options    []string `json:"options"`
	Required   bool     `json:"required"`
	PipelineID *int64   `json:"pipeline_id"`
}

type UpdateFieldRequest struct {
	Name     *string   `json:"name" binding:"omitempty,min=1"`
	Options  *[]string `json:"options"`
	Required *bool     `json:"required"`
}

type ListFieldsQuery struct {
	PipelineID int64 `form:"pipeline_id"`
}
