package token

import "time"

type CreateTokenRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

// CreatedToken carries the full secret. It is returned exactly once.
type CreatedToken struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type TokenListItem struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	MaskedSecret string     `json:"masked_secret"`
	Active       bool       `json:"active"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
