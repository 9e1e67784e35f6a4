package models

import (
	"time"
)

// DailySummary is a per-user per-day rollup of settled games, written by the
// nightly summary job. It is a read-optimized snapshot for dashboards only;
// the ledger remains the source of truth and live reports still aggregate it.
type DailySummary struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string    `gorm:"column:user_id;size:64;not null;index:idx_summary_user_day,unique" json:"user_id"`
	Day             time.Time `gorm:"column:day;type:date;not null;index:idx_summary_user_day,unique" json:"day"`
	Games           int       `gorm:"column:games;not null" json:"games"`
	TotalCommission float64   `gorm:"column:total_commission;type:decimal(20,2);not null" json:"total_commission"`
	TotalWinnings   float64   `gorm:"column:total_winnings;type:decimal(20,2);not null" json:"total_winnings"`
	TotalCollected  float64   `gorm:"column:total_collected;type:decimal(20,2);not null" json:"total_collected"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DailySummary) TableName() string {
	return "daily_summaries"
}
