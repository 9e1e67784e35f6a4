package services

import (
	"fmt"
	"log"

	"bingo-admin-service/internal/models"
	"bingo-admin-service/pkg/clock"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceService owns the prepaid ledger: top-ups, game settlements, the bonus
// sub-account and balance derivation. Balances are never stored; every read
// re-sums the ledger so concurrent writes cannot leave a stale counter behind.
type BalanceService struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewBalanceService(db *gorm.DB, clk clock.Clock) *BalanceService {
	return &BalanceService{DB: db, Clock: clk}
}

// DeriveBalance recomputes the user's spendable balance from the full ledger:
// sum of top-ups minus sum of deductions.
func (s *BalanceService) DeriveBalance(userID string) (float64, error) {
	return s.deriveBalance(s.DB, userID)
}

func (s *BalanceService) deriveBalance(tx *gorm.DB, userID string) (float64, error) {
	if userID == "" {
		return 0, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrUserNotFound
	}

	var topUps float64
	if err := tx.Model(&models.BalanceTransaction{}).
		Where("user_id = ? AND is_top_up = ?", userID, true).
		Select("COALESCE(SUM(amount), 0)").Scan(&topUps).Error; err != nil {
		return 0, err
	}

	var deductions float64
	if err := tx.Model(&models.BalanceTransaction{}).
		Where("user_id = ? AND is_top_up = ?", userID, false).
		Select("COALESCE(SUM(amount), 0)").Scan(&deductions).Error; err != nil {
		return 0, err
	}

	return topUps - deductions, nil
}

// RecordTopUp appends a credit row to the ledger.
func (s *BalanceService) RecordTopUp(userID string, amount float64) (*models.BalanceTransaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("top-up amount must be greater than zero: %w", ErrInvalidInput)
	}

	row := models.BalanceTransaction{
		UserID:  userID,
		Amount:  amount,
		IsTopUp: true,
		Date:    s.Clock.Now(),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// selectTier picks the "smallest sufficient bucket": among tiers whose MaxCount
// covers the cartela count, the one with the lowest MaxCount, ties broken by
// slice order. MinCount deliberately plays no part in the lookup.
func selectTier(tiers []models.CommissionTier, cartelaCount int) (models.CommissionTier, bool) {
	var best models.CommissionTier
	found := false
	for _, t := range tiers {
		if t.MaxCount < cartelaCount {
			continue
		}
		if !found || t.MaxCount < best.MaxCount {
			best = t
			found = true
		}
	}
	return best, found
}

// LookupCommissionTier resolves the tier applicable to cartelaCount for the
// user. A user with no stored rows falls back to the standard default set.
func (s *BalanceService) LookupCommissionTier(userID string, cartelaCount int) (models.CommissionTier, error) {
	return s.lookupCommissionTier(s.DB, userID, cartelaCount)
}

func (s *BalanceService) lookupCommissionTier(tx *gorm.DB, userID string, cartelaCount int) (models.CommissionTier, error) {
	if userID == "" {
		return models.CommissionTier{}, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	if cartelaCount <= 0 {
		return models.CommissionTier{}, fmt.Errorf("cartela count must be greater than zero: %w", ErrInvalidInput)
	}

	var tiers []models.CommissionTier
	if err := tx.Where("user_id = ?", userID).Order("id").Find(&tiers).Error; err != nil {
		return models.CommissionTier{}, err
	}
	if len(tiers) == 0 {
		tiers = DefaultCommissionTiers(userID)
	}

	tier, ok := selectTier(tiers, cartelaCount)
	if !ok {
		return models.CommissionTier{}, ErrNoTierConfigured
	}
	return tier, nil
}

// CheckSufficiency reports whether the derived balance covers the commission a
// game with the given cartela count and stake would charge.
func (s *BalanceService) CheckSufficiency(userID string, cartelaCount int, stakePerCard float64) (bool, error) {
	if stakePerCard <= 0 {
		return false, fmt.Errorf("stake per card must be greater than zero: %w", ErrInvalidInput)
	}

	tier, err := s.LookupCommissionTier(userID, cartelaCount)
	if err != nil {
		return false, err
	}

	balance, err := s.DeriveBalance(userID)
	if err != nil {
		return false, err
	}

	commission := tier.Multiplier * float64(cartelaCount) * stakePerCard
	return balance >= commission, nil
}

// SettleGame charges the commission for one game and records the deduction.
// The sufficiency check and the insert run in a single transaction holding a
// row lock on the user, so two settlements for one shop cannot both pass the
// check against a stale balance. An insufficient balance writes nothing.
func (s *BalanceService) SettleGame(userID string, cartelaCount int, stakePerCard float64) (*models.BalanceTransaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	if cartelaCount <= 0 {
		return nil, fmt.Errorf("cartela count must be greater than zero: %w", ErrInvalidInput)
	}
	if stakePerCard <= 0 {
		return nil, fmt.Errorf("stake per card must be greater than zero: %w", ErrInvalidInput)
	}

	var row models.BalanceTransaction

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		userQuery := tx.Where("id = ?", userID)
		if tx.Dialector.Name() == "mysql" {
			// sqlite has no row locks; its database lock covers writers.
			userQuery = userQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := userQuery.First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrUserNotFound
			}
			return err
		}

		tier, err := s.lookupCommissionTier(tx, userID, cartelaCount)
		if err != nil {
			return err
		}

		balance, err := s.deriveBalance(tx, userID)
		if err != nil {
			return err
		}

		// The sufficiency check always uses the tier rate, even for games the
		// house rule below makes free.
		if balance < tier.Multiplier*float64(cartelaCount)*stakePerCard {
			return ErrInsufficientBalance
		}

		// House rule: games of one or two cartelas are never charged.
		var commission float64
		if cartelaCount > 2 {
			commission = tier.Multiplier * float64(cartelaCount) * stakePerCard
		}

		collected := float64(cartelaCount) * stakePerCard
		winning := collected - commission

		now := s.Clock.Now()
		shopName := user.ShopName
		if shopName == "" {
			shopName = "Unknown Shop"
		}
		noCards := cartelaCount
		price := stakePerCard

		row = models.BalanceTransaction{
			UserID:        userID,
			Amount:        commission,
			IsTopUp:       false,
			Date:          now,
			StartedTime:   &now,
			ShopName:      &shopName,
			NoCards:       &noCards,
			Price:         &price,
			Collected:     &collected,
			Commission:    &commission,
			WinningAmount: &winning,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// CloseGame stamps the end time and on-call count on a settled game. Closing an
// already closed game simply overwrites the end time; the permissive behavior
// is intentional and covered by tests.
func (s *BalanceService) CloseGame(transactionID int, onCallCount int) (*models.BalanceTransaction, error) {
	var row models.BalanceTransaction
	if err := s.DB.First(&row, transactionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	now := s.Clock.Now()
	row.EndedTime = &now
	row.OnCall = &onCallCount
	if err := s.DB.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// LedgerHistory returns one page of a user's balance ledger, newest first,
// with the total row count for pagination.
func (s *BalanceService) LedgerHistory(userID string, page, limit int) ([]models.BalanceTransaction, int64, error) {
	if userID == "" {
		return nil, 0, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := s.DB.Model(&models.BalanceTransaction{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.BalanceTransaction
	if err := query.Order("date DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// EffectiveBonusTotal sums Deposit rows dated strictly after the user's latest
// Withdraw, or all deposits when no withdrawal exists.
func (s *BalanceService) EffectiveBonusTotal(userID string) (float64, error) {
	return s.effectiveBonusTotal(s.DB, userID)
}

func (s *BalanceService) effectiveBonusTotal(tx *gorm.DB, userID string) (float64, error) {
	var lastWithdraw models.BonusTransaction
	err := tx.Where("user_id = ? AND transaction_type = ?", userID, models.BonusWithdraw).
		Order("date DESC").First(&lastWithdraw).Error

	query := tx.Model(&models.BonusTransaction{}).
		Where("user_id = ? AND transaction_type = ?", userID, models.BonusDeposit)
	switch err {
	case nil:
		query = query.Where("date > ?", lastWithdraw.Date)
	case gorm.ErrRecordNotFound:
		// no withdrawal yet, all deposits count
	default:
		return 0, err
	}

	var total float64
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// RecordBonus appends a row to the bonus sub-account. A Withdraw row stores the
// negated accrued total, zeroing the effective balance going forward.
func (s *BalanceService) RecordBonus(userID string, transactionType string, amount float64) (*models.BonusTransaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	if amount < 0 {
		return nil, fmt.Errorf("bonus amount must not be negative: %w", ErrInvalidInput)
	}
	if transactionType != models.BonusDeposit && transactionType != models.BonusWithdraw {
		return nil, fmt.Errorf("transaction type must be %q or %q: %w",
			models.BonusDeposit, models.BonusWithdraw, ErrInvalidInput)
	}

	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var row models.BonusTransaction

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		amountToSave := amount
		if transactionType == models.BonusWithdraw {
			total, err := s.effectiveBonusTotal(tx, userID)
			if err != nil {
				return err
			}
			amountToSave = -total
			log.Printf("Bonus withdrawal for user %s: accrued total %.2f reset", userID, total)
		}

		row = models.BonusTransaction{
			UserID:          userID,
			ShopName:        user.ShopName,
			Amount:          amountToSave,
			TransactionType: transactionType,
			Date:            s.Clock.Now(),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}

	return &row, nil
}
