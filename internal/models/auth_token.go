package models

import (
	"time"
)

// AuthToken is a server-side bearer token issued at login. Requests carry it in
// the Authorization header; validation is a lookup plus an expiry check.
type AuthToken struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"column:user_id;size:64;not null;index" json:"user_id"`
	Token        string    `gorm:"column:token;size:128;not null;uniqueIndex" json:"token"`
	RefreshToken string    `gorm:"column:refresh_token;size:128;not null;index" json:"refresh_token"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
