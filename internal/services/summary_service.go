package services

import (
	"log"
	"time"

	"bingo-admin-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryService folds settled games into per-user daily rollup rows. The
// rollups are dashboard snapshots only; live reports still aggregate the
// ledger directly.
type SummaryService struct {
	DB *gorm.DB
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{DB: db}
}

// SnapshotDay recomputes and upserts every operator's rollup for the given
// day. Safe to run repeatedly.
func (s *SummaryService) SnapshotDay(day time.Time) (int, error) {
	dayStr := day.Format("2006-01-02")

	type aggregate struct {
		UserID          string
		Games           int
		TotalCommission float64
		TotalWinnings   float64
		TotalCollected  float64
	}

	var aggs []aggregate
	err := s.DB.Model(&models.BalanceTransaction{}).
		Select(`user_id,
			COUNT(*) AS games,
			SUM(amount) AS total_commission,
			COALESCE(SUM(winning_amount), 0) AS total_winnings,
			COALESCE(SUM(collected), 0) AS total_collected`).
		Where("is_top_up = ? AND DATE(date) = ?", false, dayStr).
		Group("user_id").
		Scan(&aggs).Error
	if err != nil {
		return 0, err
	}

	dayDate, err := time.Parse("2006-01-02", dayStr)
	if err != nil {
		return 0, err
	}

	for _, a := range aggs {
		row := models.DailySummary{
			UserID:          a.UserID,
			Day:             dayDate,
			Games:           a.Games,
			TotalCommission: a.TotalCommission,
			TotalWinnings:   a.TotalWinnings,
			TotalCollected:  a.TotalCollected,
		}
		err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"games", "total_commission", "total_winnings", "total_collected",
			}),
		}).Create(&row).Error
		if err != nil {
			return 0, err
		}
	}

	log.Printf("Daily summary snapshot for %s: %d operators", dayStr, len(aggs))
	return len(aggs), nil
}

// History returns a user's stored rollups between two days, newest first.
func (s *SummaryService) History(userID string, start, end time.Time) ([]models.DailySummary, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	var rows []models.DailySummary
	err := s.DB.Where("user_id = ? AND DATE(day) >= ? AND DATE(day) <= ?",
		userID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("day DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
