package domain

import "time"

// ApiToken is a tenant-scoped machine credential. The full secret is
// returned exactly once at creation; list responses carry the masked form.
type ApiToken struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	CompanyID  int64      `json:"company_id" gorm:"not null;index"`
	Name       string     `json:"name" gorm:"not null"`
	Secret     string     `json:"-" gorm:"uniqueIndex"`
	Active     bool       `json:"active" gorm:"default:true"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (ApiToken) TableName() string {
	return "api_tokens"
}

// MaskedSecret keeps the first and last four characters visible.
func (t *ApiToken) MaskedSecret() string {
	if len(t.Secret) <= 8 {
		return "********"
	}
	return t.Secret[:4] + "…" + t.Secret[len(t.Secret)-4:]
}
