package models

import (
	"time"
)

// AccessToken stores a SHA-256 hash of each issued JWT so logout can revoke
// a token before its expiry. The raw token is never persisted.
type AccessToken struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	TokenHash  string     `gorm:"uniqueIndex;not null" json:"-"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
