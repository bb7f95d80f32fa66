package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// StageLeadCount is a badge value: leads per stage, no row bodies.
type StageLeadCount struct {
	StageID int64 `db:"stage_id" json:"stage_id"`
	Count   int64 `db:"cnt" json:"count"`
}

// PipelineTotals backs the board's collapsible stats panel.
type PipelineTotals struct {
	Leads      int64   `db:"leads" json:"leads"`
	TotalValue float64 `db:"total_value" json:"total_value"`
	Won        int64   `db:"won" json:"won"`
	Lost       int64   `db:"lost" json:"lost"`
}

// StatsRepository runs the raw count/aggregate queries over sqlx. It
// wraps the same connection gorm uses; Rebind keeps the placeholders
// portable between Postgres and SQLite.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) LeadCountsByStage(ctx context.Context, companyID, pipelineID int64) ([]StageLeadCount, error) {
	query := r.db.Rebind(`
		SELECT stage_id, COUNT(*) AS cnt
		FROM leads
		WHERE company_id = ? AND pipeline_id = ?
		GROUP BY stage_id
	`)

	var out []StageLeadCount
	err := r.db.SelectContext(ctx, &out, query, companyID, pipelineID)
	return out, err
}

func (r *StatsRepository) PipelineTotals(ctx context.Context, companyID, pipelineID int64) (*PipelineTotals, error) {
	query := r.db.Rebind(`
		SELECT
			COUNT(*) AS leads,
			COALESCE(SUM(value), 0) AS total_value,
			COALESCE(SUM(CASE WHEN sold_at IS NOT NULL THEN 1 ELSE 0 END), 0) AS won,
			COALESCE(SUM(CASE WHEN loss_category <> '' THEN 1 ELSE 0 END), 0) AS lost
		FROM leads
		WHERE company_id = ? AND pipeline_id = ?
	`)

	var out PipelineTotals
	err := r.db.GetContext(ctx, &out, query, companyID, pipelineID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
