package models

// CommissionTier maps an inclusive cartela-count range to the fraction of the
// stake retained as commission. IndexValue is an opaque tiebreak carried over
// from the legacy schema; it has no business meaning.
type CommissionTier struct {
	ID         int     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string  `gorm:"column:user_id;size:64;not null;index" json:"user_id"`
	MinCount   int     `gorm:"column:min_count;not null" json:"min_count"`
	MaxCount   int     `gorm:"column:max_count;not null" json:"max_count"`
	Multiplier float64 `gorm:"column:multiplier;type:decimal(5,2);not null" json:"multiplier"`
	IndexValue *int    `gorm:"column:index_value" json:"index_value"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CommissionTier) TableName() string {
	return "commission_tiers"
}
