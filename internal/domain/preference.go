package domain

import "time"

// Known preference keys.
const (
	PrefBoardViewMode       = "board_view_mode"
	PrefStatsPanelCollapsed = "stats_panel_collapsed"
)

// UserPreference stores small per-user UI state (view mode, collapsed
// panels) server-side so it survives reloads and devices.
type UserPreference struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_pref"`
	Key       string    `json:"key" gorm:"not null;uniqueIndex:idx_user_pref"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
