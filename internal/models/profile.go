package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile mirrors an externally authenticated identity. Exactly one
// profile exists per external identity; the very first profile ever created
// becomes the administrator and there is no later promotion path.
type UserProfile struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ExternalID string         `gorm:"size:64;not null;uniqueIndex" json:"external_id"`
	Username   string         `gorm:"size:30;index" json:"username"`
	Bio        string         `gorm:"size:500" json:"bio"`
	AvatarURL  string         `json:"avatar_url"`
	IsAdmin    bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
