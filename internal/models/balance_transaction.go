package models

import (
	"time"
)

// BalanceTransaction is one row of the prepaid ledger. Amount is always stored
// positive; IsTopUp discriminates credits from game deductions. A user's balance
// is never stored anywhere: it is re-derived as sum(top-ups) - sum(deductions).
type BalanceTransaction struct {
	ID            int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string     `gorm:"column:user_id;size:64;not null;index" json:"user_id"`
	Amount        float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	IsTopUp       bool       `gorm:"column:is_top_up;not null" json:"is_top_up"`
	Date          time.Time  `gorm:"column:date;not null;index" json:"date"`
	StartedTime   *time.Time `gorm:"column:started_time" json:"started_time"`
	EndedTime     *time.Time `gorm:"column:ended_time" json:"ended_time"`
	ShopName      *string    `gorm:"column:shop_name;size:255" json:"shop_name"`
	OnCall        *int       `gorm:"column:on_call" json:"on_call"`
	NoCards       *int       `gorm:"column:no_cards" json:"no_cards"`
	Price         *float64   `gorm:"column:price;type:decimal(20,2)" json:"price"`
	Collected     *float64   `gorm:"column:collected;type:decimal(20,2)" json:"collected"`
	Commission    *float64   `gorm:"column:commission;type:decimal(20,2)" json:"commission"`
	WinningAmount *float64   `gorm:"column:winning_amount;type:decimal(20,2)" json:"winning_amount"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BalanceTransaction) TableName() string {
	return "balance_transactions"
}
