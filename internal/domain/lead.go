package domain

import "time"

type LeadStatus string

const (
	LeadStatusHot  LeadStatus = "hot"
	LeadStatusWarm LeadStatus = "warm"
	LeadStatusCold LeadStatus = "cold"
)

// LeadOrigin is the acquisition channel a lead came from.
type LeadOrigin string

const (
	OriginWhatsApp  LeadOrigin = "whatsapp"
	OriginInstagram LeadOrigin = "instagram"
	OriginWebsite   LeadOrigin = "website"
	OriginReferral  LeadOrigin = "referral"
	OriginOther     LeadOrigin = "other"
)

// Lead belongs to exactly one stage at a time. Moving it between stages
// is a single reassignment of StageID (plus Position within the new stage).
type Lead struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	CompanyID  int64 `json:"company_id" gorm:"not null;index"`
	PipelineID int64 `json:"pipeline_id" gorm:"not null;index"`
	StageID    int64 `json:"stage_id" gorm:"not null;index"`

	// Order within the stage column on the board.
	Position int `json:"position" gorm:"not null;default:0"`

	Name        string     `json:"name" gorm:"not null"`
	CompanyName string     `json:"company_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Value       float64    `json:"value"`
	Status      LeadStatus `json:"status,omitempty"`
	Origin      LeadOrigin `json:"origin,omitempty"`
	Notes       string     `json:"notes" gorm:"type:text"`
	Tags        string     `json:"tags" gorm:"type:text"` // JSON-encoded []string

	LossCategory string     `json:"loss_category,omitempty"`
	LossNotes    string     `json:"loss_notes,omitempty"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`

	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Filled by the service, not stored.
	CustomValues []CustomValue `json:"custom_values,omitempty" gorm:"-"`
}

func (Lead) TableName() string {
	return "leads"
}

func (l *Lead) IsLost() bool {
	return l.LossCategory != ""
}

func (l *Lead) IsSold() bool {
	return l.SoldAt != nil
}
