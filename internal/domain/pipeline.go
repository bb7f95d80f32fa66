package domain

import "time"

// Pipeline is one sales funnel of a company.
// Only admins may create, rename or delete pipelines.
type Pipeline struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CompanyID int64     `json:"company_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by the service when listing a full board, not stored.
	Stages []Stage `json:"stages,omitempty" gorm:"-"`
}

func (Pipeline) TableName() string {
	return "pipelines"
}

// Stage is one ordered step of a pipeline. Positions are kept dense
// (0..N-1 within the pipeline): every successful reorder rewrites the
// position of each stage that moved.
type Stage struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	PipelineID int64     `json:"pipeline_id" gorm:"not null;index"`
	CompanyID  int64     `json:"company_id" gorm:"not null;index"`
	Name       string    `json:"name" gorm:"not null"`
	Color      string    `json:"color"`
	Position   int       `json:"position" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Stage) TableName() string {
	return "stages"
}
