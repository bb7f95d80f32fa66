package domain

import "time"

type CampaignStatus string

const (
	CampaignDraft   CampaignStatus = "draft"
	CampaignRunning CampaignStatus = "running"
	CampaignPaused  CampaignStatus = "paused"
	CampaignDone    CampaignStatus = "done"
	CampaignFailed  CampaignStatus = "failed"
)

// Campaign is a WhatsApp bulk send. Actual dispatch happens in an external
// automation engine; this service only signals start/resume over a webhook
// and tracks the status field.
type Campaign struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	CompanyID int64          `json:"company_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	Status    CampaignStatus `json:"status" gorm:"default:'draft'"`
	Template  string         `json:"template" gorm:"type:text"`
	TargetTag string         `json:"target_tag"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// GreetingMessage is an automated reply sent when an inbound message
// matches the trigger keyword.
type GreetingMessage struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CompanyID int64     `json:"company_id" gorm:"not null;index"`
	Trigger   string    `json:"trigger" gorm:"not null"`
	Body      string    `json:"body" gorm:"type:text"`
	MediaURL  *string   `json:"media_url,omitempty"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GreetingMessage) TableName() string {
	return "greeting_messages"
}
