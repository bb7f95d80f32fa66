package chat

type SendMessageRequest struct {
	Body string `json:"body"`
	Type string `json:"type" binding:"omitempty,oneof=text image audio document"`
}

// InboundMessageRequest is the payload machine clients post with an
// API token when a lead writes in. Validated separately so connector
// authors get a field-by-field error map instead of a bare 400.
type InboundMessageRequest struct {
	LeadID    int64  `json:"lead_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
	Body      string `json:"body" validate:"required"`
	Type      string `json:"type" validate:"omitempty,oneof=text image audio document"`
	MediaURL  string `json:"media_url" validate:"omitempty,url"`
}

type ListQuery struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,max=200"`
	Offset int `form:"offset" binding:"omitempty,gte=0"`
}
