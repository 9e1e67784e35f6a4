package models

import (
	"time"
)

type User struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Username       string    `gorm:"column:username;size:255;not null;uniqueIndex" json:"username"`
	PasswordHash   string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	FullName       string    `gorm:"column:full_name;size:255;not null" json:"full_name"`
	PhoneNumber    string    `gorm:"column:phone_number;size:50" json:"phone_number"`
	Address        string    `gorm:"column:address;size:255" json:"address"`
	ShopName       string    `gorm:"column:shop_name;size:255" json:"shop_name"`
	IsAdmin        bool      `gorm:"column:is_admin;default:false" json:"is_admin"`
	IsActive       bool      `gorm:"column:is_active;default:true" json:"is_active"`
	SoundSpeed     *int      `gorm:"column:sound_speed" json:"sound_speed"`
	VoiceType      *string   `gorm:"column:voice_type;size:50" json:"voice_type"`
	GameRule       *string   `gorm:"column:game_rule;size:255" json:"game_rule"`
	CheckRows      *bool     `gorm:"column:check_rows" json:"check_rows"`
	CheckColumns   *bool     `gorm:"column:check_columns" json:"check_columns"`
	CheckDiagonals *bool     `gorm:"column:check_diagonals" json:"check_diagonals"`
	CheckCorners   *bool     `gorm:"column:check_corners" json:"check_corners"`
	CheckMiddle    *bool     `gorm:"column:check_middle" json:"check_middle"`
	Firework       *bool     `gorm:"column:firework" json:"firework"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
