package campaign

type CreateCampaignRequest struct {
	Name      string `json:"name" binding:"required,min=2"`
	Template  string `json:"template" binding:"required,min=1"`
	TargetTag string `json:"target_tag"`
}

type UpdateCampaignRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2"`
	Template  *string `json:"template" binding:"omitempty,min=1"`
	TargetTag *string `json:"target_tag"`
}

type CreateGreetingRequest struct {
	Trigger  string `json:"trigger" binding:"required,min=1"`
	Body     string `json:"body" binding:"required,min=1"`
	MediaURL string `json:"media_url" binding:"omitempty,url"`
}

type UpdateGreetingRequest struct {
	Trigger  *string `json:"trigger" binding:"omitempty,min=1"`
	Body     *string `json:"body" binding:"omitempty,min=1"`
	MediaURL *string `json:"media_url" binding:"omitempty,url"`
	Active   *bool   `json:"active"`
}
