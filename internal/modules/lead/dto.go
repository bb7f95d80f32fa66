package lead

type CreateLeadRequest struct {
	PipelineID  int64    `json:"pipeline_id" binding:"required"`
	StageID     int64    `json:"stage_id" binding:"required"`
	Name        string   `json:"name" binding:"required,min=1"`
	CompanyName string   `json:"company_name"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Phone       string   `json:"phone"`
	Value       float64  `json:"value" binding:"omitempty,gte=0"`
	Status      string   `json:"status" binding:"omitempty,oneof=hot warm cold"`
	Origin      string   `json:"origin" binding:"omitempty,oneof=whatsapp instagram website referral other"`
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`
}

type UpdateLeadRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1"`
	CompanyName *string   `json:"company_name"`
	Email       *string   `json:"email" binding:"omitempty,email"`
	Phone       *string   `json:"phone"`
	Value       *float64  `json:"value" binding:"omitempty,gte=0"`
	Status      *string   `json:"status" binding:"omitempty,oneof=hot warm cold"`
	Origin      *string   `json:"origin" binding:"omitempty,oneof=whatsapp instagram website referral other"`
	Notes       *string   `json:"notes"`
	Tags        *[]string `json:"tags"`
}

type MarkLostRequest struct {
	Category string `json:"category" binding:"required,min=1"`
	Notes    string `json:"notes"`
}

type SetValueRequest struct {
	FieldID int64  `json:"field_id" binding:"required"`
	Value   string `json:"value"`
}

type ListLeadsQuery struct {
	PipelineID int64  `form:"pipeline_id"`
	StageID    int64  `form:"stage_id"`
	Status     string `form:"status" binding:"omitempty,oneof=hot warm cold"`
	Origin     string `form:"origin" binding:"omitempty,oneof=whatsapp instagram website referral other"`
	Tag        string `form:"tag"`
	Search     string `form:"q"`
	Limit      int    `form:"limit,default=50" binding:"omitempty,max=200"`
	Offset     int    `form:"offset" binding:"omitempty,gte=0"`
}
