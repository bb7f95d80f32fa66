package domain

import "time"

// Company is the tenant that owns every other record.
// All repository queries are scoped by CompanyID.
type Company struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

func (Company) TableName() string {
	return "companies"
}
