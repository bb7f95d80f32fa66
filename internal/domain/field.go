package domain

import "time"

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldNumber      FieldType = "number"
	FieldDate        FieldType = "date"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multiselect"
	FieldLink        FieldType = "link"
	FieldVehicle     FieldType = "vehicle"
)

// HasOptions reports whether the type carries an options list.
func (t FieldType) HasOptions() bool {
	return t == FieldSelect || t == FieldMultiSelect
}

// CustomField is a tenant-defined field definition. PipelineID == nil
// means the field applies to every pipeline of the company.
type CustomField struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	CompanyID  int64     `json:"company_id" gorm:"not null;index"`
	PipelineID *int64    `json:"pipeline_id,omitempty" gorm:"index"`
	Name       string    `json:"name" gorm:"not null"`
	Type       FieldType `json:"type" gorm:"not null"`
	Options    string    `json:"options,omitempty" gorm:"type:text"` // JSON-encoded []string
	Required   bool      `json:"required" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (CustomField) TableName() string {
	return "custom_fields"
}

// CustomValue holds one field value for one lead, unique per (lead, field).
type CustomValue struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	LeadID    int64     `json:"lead_id" gorm:"not null;uniqueIndex:idx_lead_field"`
	FieldID   int64     `json:"field_id" gorm:"not null;uniqueIndex:idx_lead_field"`
	Value     string    `json:"value" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CustomValue) TableName() string {
	return "custom_values"
}
