package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"bingo-admin-service/internal/models"
	"bingo-admin-service/pkg/clock"

	"gorm.io/gorm"
)

// bonusRetention is how long bonus rows stay in the live table after they stop
// contributing to the effective total.
const bonusRetention = 4 * 30 * 24 * time.Hour

// ArchiveService moves dead bonus ledger rows into an archive table. Only rows
// dated at or before a user's latest Withdraw are eligible; rows after it still
// feed the effective bonus total. The main balance ledger is never touched:
// every row of it participates in balance derivation forever.
type ArchiveService struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewArchiveService(db *gorm.DB, clk clock.Clock) *ArchiveService {
	return &ArchiveService{DB: db, Clock: clk}
}

// ArchiveBonusLedger archives bonus rows older than the retention window whose
// user has withdrawn since. Returns the number of rows moved.
func (s *ArchiveService) ArchiveBonusLedger() (int, error) {
	cutoff := s.Clock.Now().Add(-bonusRetention)

	// Latest withdraw per user; rows at or before it are settled history.
	lastWithdraws := s.DB.Model(&models.BonusTransaction{}).
		Select("user_id, MAX(date) AS last_withdraw").
		Where("transaction_type = ?", models.BonusWithdraw).
		Group("user_id")

	var eligible []models.BonusTransaction
	err := s.DB.Model(&models.BonusTransaction{}).
		Joins("JOIN (?) lw ON lw.user_id = bonus_transactions.user_id", lastWithdraws).
		Where("bonus_transactions.date <= lw.last_withdraw").
		Where("bonus_transactions.date < ?", cutoff).
		Find(&eligible).Error
	if err != nil {
		return 0, err
	}

	if len(eligible) == 0 {
		log.Println("No bonus transactions to archive")
		return 0, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range eligible {
			archived := models.ArchivedBonusTransaction{
				SourceID:        row.ID,
				UserID:          row.UserID,
				ShopName:        row.ShopName,
				Amount:          row.Amount,
				TransactionType: row.TransactionType,
				Date:            row.Date,
			}
			if err := tx.Create(&archived).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.BonusTransaction{}, row.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("Archived %d bonus transactions", len(eligible))
	return len(eligible), nil
}

// StartScheduler runs the archive nightly at 01:00.
func (s *ArchiveService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 1 * * *", func() {
		log.Println("Running scheduled bonus archive task...")
		if _, err := s.ArchiveBonusLedger(); err != nil {
			log.Printf("Error archiving bonus ledger: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling bonus archive task: %v", err)
		return
	}
	c.Start()
	log.Println("Bonus Archive Scheduler started (Daily at 01:00)")
}
