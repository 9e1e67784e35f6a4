package models

import (
	"time"
)

const (
	BonusDeposit  = "Deposit"
	BonusWithdraw = "Withdraw"
)

// BonusTransaction is the bonus sub-account ledger. Deposits store the amount
// as-is; a Withdraw row stores the negated accrued total at withdrawal time,
// which zeroes the effective balance going forward.
type BonusTransaction struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string    `gorm:"column:user_id;size:64;not null;index" json:"user_id"`
	ShopName        string    `gorm:"column:shop_name;size:255" json:"shop_name"`
	Amount          float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	TransactionType string    `gorm:"column:transaction_type;size:20;not null" json:"transaction_type"`
	Date            time.Time `gorm:"column:date;not null;index" json:"date"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BonusTransaction) TableName() string {
	return "bonus_transactions"
}
