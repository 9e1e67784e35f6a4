package models

import (
	"time"
)

// ArchivedBonusTransaction holds bonus ledger rows moved out of the live table
// by the nightly archive job. Only rows dated at or before the user's latest
// Withdraw are eligible: everything after it still feeds the effective bonus
// total. The main balance ledger is never archived, since every row of it
// participates in balance derivation forever.
type ArchivedBonusTransaction struct {
	ID              int       `gorm:"primaryKey"`
	SourceID        int       `gorm:"column:source_id;uniqueIndex"`
	UserID          string    `gorm:"column:user_id;size:64;index"`
	ShopName        string    `gorm:"column:shop_name;size:255"`
	Amount          float64   `gorm:"column:amount;type:decimal(20,2)"`
	TransactionType string    `gorm:"column:transaction_type;size:20"`
	Date            time.Time `gorm:"column:date;index"`
	ArchivedAt      time.Time `gorm:"column:archived_at;autoCreateTime"`
}

func (ArchivedBonusTransaction) TableName() string {
	return "archived_bonus_transactions"
}
