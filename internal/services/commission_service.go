package services

import (
	"fmt"
	"hash/fnv"
	"log"

	"bingo-admin-service/internal/models"

	"gorm.io/gorm"
)

// standardRanges are the 8 canonical cartela-count buckets. Every user's tier
// table contains exactly these (min,max) pairs after a save; only the
// multiplier is ever configurable.
var standardRanges = [8]struct {
	Min, Max   int
	Multiplier float64
}{
	{3, 5, 0},
	{6, 10, 0.10},
	{11, 20, 0.20},
	{21, 30, 0.25},
	{31, 40, 0.28},
	{41, 50, 0.35},
	{51, 60, 0.38},
	{61, 150, 0.40}, // >60
}

// DefaultCommissionTiers returns the system-wide tier set used for users with
// no stored configuration.
func DefaultCommissionTiers(userID string) []models.CommissionTier {
	tiers := make([]models.CommissionTier, 0, len(standardRanges))
	for _, r := range standardRanges {
		tiers = append(tiers, models.CommissionTier{
			UserID:     userID,
			MinCount:   r.Min,
			MaxCount:   r.Max,
			Multiplier: r.Multiplier,
		})
	}
	return tiers
}

// CommissionService manages per-user tier configuration.
type CommissionService struct {
	DB *gorm.DB
}

func NewCommissionService(db *gorm.DB) *CommissionService {
	return &CommissionService{DB: db}
}

// TierUpdate is one caller-supplied multiplier change, addressed by its exact
// (min,max) range.
type TierUpdate struct {
	MinCount   int     `json:"min_count" binding:"required"`
	MaxCount   int     `json:"max_count" binding:"required"`
	Multiplier float64 `json:"multiplier"`
}

// GetTiers returns the user's stored tiers in row order, or the default set
// when none are stored. Never mutates.
func (s *CommissionService) GetTiers(userID string) ([]models.CommissionTier, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}

	var tiers []models.CommissionTier
	if err := s.DB.Where("user_id = ?", userID).Order("id").Find(&tiers).Error; err != nil {
		return nil, err
	}
	if len(tiers) == 0 {
		return DefaultCommissionTiers(userID), nil
	}
	return tiers, nil
}

// SaveTiers first guarantees all 8 standard rows exist (creating missing ones
// with multiplier 0), then overwrites multipliers for updates whose (min,max)
// matches an existing row exactly. Non-standard ranges are skipped and logged,
// never created. Returns true when at least one row changed; a no-op save is a
// valid outcome, not an error.
func (s *CommissionService) SaveTiers(userID string, updates []TierUpdate) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}

	modified := 0

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.CommissionTier
		if err := tx.Where("user_id = ?", userID).Order("id").Find(&existing).Error; err != nil {
			return err
		}

		for _, r := range standardRanges {
			if tierIndex(existing, r.Min, r.Max) >= 0 {
				continue
			}
			idx := rangeIndexValue(userID, r.Min, r.Max)
			row := models.CommissionTier{
				UserID:     userID,
				MinCount:   r.Min,
				MaxCount:   r.Max,
				Multiplier: 0,
				IndexValue: &idx,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			existing = append(existing, row)
			modified++
		}

		for _, u := range updates {
			i := tierIndex(existing, u.MinCount, u.MaxCount)
			if i < 0 {
				log.Printf("Skipping non-standard commission range %d-%d for user %s",
					u.MinCount, u.MaxCount, userID)
				continue
			}
			if existing[i].Multiplier == u.Multiplier {
				continue
			}
			if err := tx.Model(&models.CommissionTier{}).
				Where("id = ?", existing[i].ID).
				Update("multiplier", u.Multiplier).Error; err != nil {
				return err
			}
			existing[i].Multiplier = u.Multiplier
			modified++
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return modified > 0, nil
}

func tierIndex(tiers []models.CommissionTier, minCount, maxCount int) int {
	for i, t := range tiers {
		if t.MinCount == minCount && t.MaxCount == maxCount {
			return i
		}
	}
	return -1
}

// rangeIndexValue reproduces the legacy opaque index column: a hash of
// "userId-min-max". Nothing reads it back.
func rangeIndexValue(userID string, minCount, maxCount int) int {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s-%d-%d", userID, minCount, maxCount)
	return int(int32(h.Sum32()))
}
